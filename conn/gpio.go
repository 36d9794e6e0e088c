package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// ErrPin is returned for GPIO pins that are not registered.
var ErrPin = errors.New("conn: invalid GPIO pin")

// Pin looks up a GPIO output pin by name, such as "GPIO25". An empty name returns a nil
// pin without error, meaning the line is not wired.
func Pin(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil || p == gpio.INVALID {
		return nil, fmt.Errorf("%w: %q", ErrPin, name)
	}
	return p, nil
}
