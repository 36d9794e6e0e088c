package display

import (
	"errors"
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/oled/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("display: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("display: data/command (DC) GPIO pin is invalid")
	ErrSPISpeed = errors.New("display: invalid SPI speed")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection and release the bus and pins.
	Close() error

	// Reset pulses the reset pin, it does nothing if there is no reset pin.
	Reset() error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// Reset pulse timing.
var (
	resetLowTime    = time.Millisecond
	resetSettleTime = 10 * time.Millisecond
)

func resetPulse(pin gpio.PinOut) (err error) {
	if pin == nil {
		return nil
	}
	if err = pin.Out(gpio.High); err != nil {
		return
	}
	time.Sleep(resetLowTime)
	if err = pin.Out(gpio.Low); err != nil {
		return
	}
	time.Sleep(resetSettleTime)
	return pin.Out(gpio.High)
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint8

	// Reset pin, optional.
	Reset gpio.PinOut
}

var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

// I²C control bytes, Co=0 and D/C# in bit 6.
const (
	i2cControlCommand = 0x00
	i2cControlData    = 0x40
)

type i2cConn struct {
	bus   io.WriteCloser
	name  string
	reset gpio.PinOut
}

// OpenI2C opens the I²C bus, a nil config uses DefaultI2CConfig.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}

	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}

	return &i2cConn{
		bus:   c,
		name:  c.String(),
		reset: config.Reset,
	}, nil
}

// NewI2C uses an already opened I²C bus. Closing the connection does not close the bus.
func NewI2C(bus i2c.Bus, addr uint8, reset gpio.PinOut) Conn {
	c := conn.NewI2C(bus, addr)
	return &i2cConn{
		bus:   c,
		name:  c.String(),
		reset: reset,
	}
}

func (c *i2cConn) String() string {
	return c.name
}

func (c *i2cConn) Close() error {
	return c.bus.Close()
}

func (c *i2cConn) Command(cmnd byte, args ...byte) (err error) {
	_, err = c.bus.Write(append([]byte{i2cControlCommand, cmnd}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.bus.Write(append([]byte{i2cControlData}, data...))
	return
}

func (c *i2cConn) Reset() error {
	return resetPulse(c.reset)
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      conn.SPIMode
	Speed     physic.Frequency
	DataLow   bool // DataLow drives DC low for data and high for commands
	BatchSize int  // BatchSize is the largest single write, larger transfers are chunked
	Reset     gpio.PinOut
	DC        gpio.PinOut
	CS        gpio.PinOut
}

// Default SPI pin names.
const (
	DefaultResetPin = "GPIO25"
	DefaultDCPin    = "GPIO24"
)

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      conn.SPIMode0,
	Speed:     8 * physic.MegaHertz,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []physic.Frequency{
	500 * physic.KiloHertz,
	1 * physic.MegaHertz,
	2 * physic.MegaHertz,
	4 * physic.MegaHertz,
	8 * physic.MegaHertz,
	16 * physic.MegaHertz,
	20 * physic.MegaHertz,
	24 * physic.MegaHertz,
	28 * physic.MegaHertz,
	32 * physic.MegaHertz,
	36 * physic.MegaHertz,
	40 * physic.MegaHertz,
	48 * physic.MegaHertz,
	50 * physic.MegaHertz,
	52 * physic.MegaHertz,
}

type spiConn struct {
	bus       io.WriteCloser
	name      string
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcValid   bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize int
}

// OpenSPI opens the SPI bus, a nil config uses DefaultSPIConfig. A missing DC pin is looked
// up by DefaultDCPin. The reset pin is optional; pass the result of conn.Pin(DefaultResetPin)
// to use the default reset line.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if err := defaultSPIPins(config); err != nil {
		return nil, err
	}
	if err := checkSPIConfig(config); err != nil {
		return nil, err
	}

	c, err := conn.OpenSPI(config.Bus, config.Device, config.Speed, config.Mode)
	if err != nil {
		return nil, err
	}
	return newSPIConn(c, config), nil
}

func defaultSPIPins(config *SPIConfig) (err error) {
	if config.DC == nil {
		if config.DC, err = conn.Pin(DefaultDCPin); err != nil {
			return fmt.Errorf("%w: %w", ErrDCPin, err)
		}
	}
	return nil
}

// NewSPI connects to an already opened SPI port. Closing the connection does not close the port.
func NewSPI(port spi.Port, config *SPIConfig) (Conn, error) {
	if config == nil {
		return nil, ErrDCPin
	}
	if err := checkSPIConfig(config); err != nil {
		return nil, err
	}

	c, err := conn.NewSPI(port, config.Speed, config.Mode)
	if err != nil {
		return nil, err
	}
	return newSPIConn(c, config), nil
}

func checkSPIConfig(config *SPIConfig) error {
	if config.DC == nil || config.DC == gpio.INVALID {
		return ErrDCPin
	}
	if config.Reset == gpio.INVALID {
		return ErrResetPin
	}
	if config.Speed == 0 {
		config.Speed = DefaultSPIConfig.Speed
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	for _, speed := range ValidSPISpeeds {
		if speed == config.Speed {
			return nil
		}
	}
	return fmt.Errorf("%w %s", ErrSPISpeed, config.Speed)
}

func newSPIConn(c *conn.SPI, config *SPIConfig) *spiConn {
	batchSize := config.BatchSize
	if limit := c.MaxTxSize(); limit > 0 && limit < batchSize {
		batchSize = limit
	}
	return &spiConn{
		bus:       c,
		name:      c.String(),
		batchSize: batchSize,
		dataLow:   config.DataLow,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CS,
	}
}

func (c *spiConn) String() string {
	return c.name
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset() error {
	return resetPulse(c.reset)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcValid || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel, c.dcValid = level, true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	// arguments are part of the command, DC stays at the command level
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if err = c.writeChunked(append([]byte{cmnd}, data...)); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		_, err = c.bus.Write(data)
		return
	}

	Logger.Debug().
		Int("size", len(data)).
		Int("chunks", (len(data)+c.batchSize-1)/c.batchSize).
		Msg("display: chunked SPI write")
	for buffer := data; len(buffer) > 0; {
		n := min(len(buffer), c.batchSize)
		if _, err = c.bus.Write(buffer[:n]); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}
