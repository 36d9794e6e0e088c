package conn

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPIMode is the SPI clock polarity and phase.
type SPIMode = spi.Mode

const (
	SPIMode0 = spi.Mode0
	SPIMode1 = spi.Mode1
	SPIMode2 = spi.Mode2
	SPIMode3 = spi.Mode3
)

// SPI is a connected SPI port.
type SPI struct {
	port   spi.Port
	closer io.Closer
	conn   spi.Conn
	speed  physic.Frequency
	mode   SPIMode
}

// OpenSPI opens the numbered spi bus with the numbered device. The device often corresponds to the CS pin for that bus.
func OpenSPI(bus, device int, speed physic.Frequency, mode SPIMode) (*SPI, error) {
	name := fmt.Sprintf("/dev/spidev%d.%d", bus, device)
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("conn: SPI open %s: %w", name, err)
	}

	c, err := NewSPI(port, speed, mode)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	c.closer = port
	return c, nil
}

// NewSPI connects to an already opened port, Close will not close the port.
func NewSPI(port spi.Port, speed physic.Frequency, mode SPIMode) (*SPI, error) {
	conn, err := port.Connect(speed, mode, 8)
	if err != nil {
		return nil, fmt.Errorf("conn: SPI connect at %s mode %d: %w", speed, mode, err)
	}
	return &SPI{
		port:  port,
		conn:  conn,
		speed: speed,
		mode:  mode,
	}, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s mode=%d max speed=%s", c.port, c.mode, c.speed)
}

func (c *SPI) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

func (c *SPI) MaxSpeed() physic.Frequency {
	return c.speed
}

// MaxTxSize is the largest transfer the port accepts, 0 if there is no limit.
func (c *SPI) MaxTxSize() int {
	if l, ok := c.conn.(interface{ MaxTxSize() int }); ok {
		return l.MaxTxSize()
	}
	return 0
}

func (c *SPI) Write(b []byte) (int, error) {
	if err := c.conn.Tx(b, nil); err != nil {
		return 0, err
	}
	return len(b), nil
}
