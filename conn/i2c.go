package conn

import (
	"fmt"
	"io"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a device on an I²C bus.
type I2C struct {
	bus    i2c.Bus
	closer io.Closer
	dev    *i2c.Dev
}

// OpenI2C opens the numbered I²C bus, use -1 to open the first available bus.
func OpenI2C(device int, addr uint8) (*I2C, error) {
	var (
		bus i2c.BusCloser
		err error
	)
	if device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.FormatInt(int64(device), 10))
	}
	if err != nil {
		return nil, fmt.Errorf("conn: I²C open bus %d: %w", device, err)
	}

	c := NewI2C(bus, addr)
	c.closer = bus
	return c, nil
}

// NewI2C uses an already opened bus, Close will not close the bus.
func NewI2C(bus i2c.Bus, addr uint8) *I2C {
	return &I2C{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: uint16(addr)},
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s address %#02x", c.bus, c.dev.Addr)
}

func (c *I2C) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *I2C) Write(p []byte) (int, error) {
	if err := c.dev.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
