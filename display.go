// Package display contains drivers for SSD1306 and SSD1327 OLED displays.
//
// A Device owns an in-memory frame buffer in the controller's native layout. Drawing only
// modifies the buffer; Display transfers it to the hardware.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/rs/zerolog"

	"github.com/BeatGlow/oled/pixel"
)

// Errors
var (
	ErrNoConn       = errors.New("display: no connection")
	ErrSize         = errors.New("display: unsupported size")
	ErrBufferSize   = errors.New("display: buffer size mismatch")
	ErrNotSupported = errors.New("display: not supported")
)

// IOError is a failed transport operation.
type IOError struct {
	// Op is the transport operation: "command", "data", "reset" or "close".
	Op string

	// Opcode is the command byte, only for "command".
	Opcode byte

	Err error
}

func (e *IOError) Error() string {
	if e.Op == "command" {
		return fmt.Sprintf("display: command %#02x: %v", e.Opcode, e.Err)
	}
	return fmt.Sprintf("display: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Display is an OLED display.
type Display interface {
	draw.Image

	String() string

	// Width of the display in pixels.
	Width() int

	// Height of the display in pixels.
	Height() int

	// BitsPerPixel is the color depth of the frame buffer.
	BitsPerPixel() int

	// Pixel reports if the pixel at (x, y) is lit.
	Pixel(x, y int) bool

	// SetPixel turns a pixel on or off, it returns false if (x, y) is out of bounds.
	SetPixel(x, y int, on bool) bool

	// SetGray sets a 4-bit gray level, it returns false if (x, y) is out of bounds.
	SetGray(x, y int, level uint8) bool

	// Clear the display buffer.
	Clear()

	// Fill overwrites every byte of the display buffer with pattern.
	Fill(pattern byte)

	// Buffer is the display buffer in the controller's memory layout.
	Buffer() []byte

	// SetBuffer replaces the contents of the display buffer.
	SetBuffer([]byte) error

	// Startup resets and initializes the controller, then turns the display on.
	Startup(externalVCC bool) error

	// Shutdown blanks and turns off the display, and closes the connection.
	Shutdown() error

	// Display transfers the display buffer to the controller.
	Display() error

	// Reset pulses the hardware reset line.
	Reset() error

	// NoOp sends the no operation command.
	NoOp() error

	IsInitialized() bool

	SetDisplayOn(bool) error
	IsDisplayOn() bool

	SetInverted(bool) error
	IsInverted() bool

	SetHFlipped(bool) error
	IsHFlipped() bool

	SetVFlipped(bool) error
	IsVFlipped() bool

	// SetContrast adjusts the contrast level, clamped to 0-255.
	SetContrast(level int) error
	Contrast() int

	// SetOffset sets the display offset in rows, clamped to 0-(height-1).
	SetOffset(rows int) error
	Offset() int

	StartScroll() error
	StopScroll() error
	IsScrolling() bool

	// ScrollHorizontally sets up horizontal scrolling of the pages (SSD1306) or rows
	// (SSD1327) from start to end. Scrolling starts with StartScroll.
	ScrollHorizontally(left bool, start, end int, speed ScrollSpeed) error

	// ScrollDiagonally sets up vertical and horizontal scrolling. The rows outside of
	// [offset, offset+rows) are fixed, step is the vertical offset per scroll step.
	ScrollDiagonally(left bool, start, end, offset, rows int, speed ScrollSpeed, step int) error
}

// Profile selects the reference values used in the initialization sequence.
type Profile uint8

const (
	// ProfileI2C uses the values of the reference I²C initialization sequence.
	ProfileI2C Profile = iota

	// ProfileSPI uses the values of the reference SPI initialization sequence.
	ProfileSPI

	// ProfilePanel derives the values from the panel size, and maps 64 pixel wide panels
	// to the center columns of the controller.
	ProfilePanel
)

func (p Profile) String() string {
	switch p {
	case ProfileI2C:
		return "i2c"
	case ProfileSPI:
		return "spi"
	case ProfilePanel:
		return "panel"
	default:
		return fmt.Sprintf("Profile(%d)", p)
	}
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Profile for the initialization sequence (SSD1306).
	Profile Profile

	// MaxTransfer is the maximum number of bytes per data transfer (SSD1327).
	MaxTransfer int

	// SwapCOMSplit inverts the odd/even COM split bit (SSD1327), some panels need this.
	SwapCOMSplit bool

	// Logger to use, defaults to the package Logger.
	Logger *zerolog.Logger
}

// controller is the family specific part of a Device.
type controller interface {
	String() string

	// commands is the opcode table for the common commands.
	commands() commandSet

	// configure sends the family specific part of the initialization sequence.
	configure(d *Device, externalVCC bool) error

	// flush sets the address window and sends the frame buffer.
	flush(d *Device) error

	// hFlip and vFlip send the remap commands.
	hFlip(d *Device, flip bool) error
	vFlip(d *Device, flip bool) error

	scrollHorizontally(d *Device, left bool, start, end int, speed ScrollSpeed) error
	scrollDiagonally(d *Device, left bool, start, end, offset, rows int, speed ScrollSpeed, step int) error
}

// Device is a display controller with its frame buffer.
type Device struct {
	c    Conn
	ctrl controller
	cmds commandSet
	img  pixel.Image
	log  zerolog.Logger

	// mu serializes Display
	mu sync.Mutex

	initialized bool
	closed      bool
	displayOn   bool
	inverted    bool
	hFlipped    bool
	vFlipped    bool
	scrolling   bool
	contrast    int
	offset      int
}

func newDevice(c Conn, ctrl controller, config *Config, img pixel.Image) *Device {
	base := &Logger
	if config.Logger != nil {
		base = config.Logger
	}
	size := img.Bounds().Size()
	return &Device{
		c:    c,
		ctrl: ctrl,
		cmds: ctrl.commands(),
		img:  img,
		log: base.With().
			Str("driver", ctrl.String()).
			Str("size", fmt.Sprintf("%dx%d", size.X, size.Y)).
			Logger(),
	}
}

func (d *Device) String() string {
	return fmt.Sprintf("%s OLED %dx%d", d.ctrl, d.Width(), d.Height())
}

func (d *Device) Width() int {
	return d.img.Bounds().Dx()
}

func (d *Device) Height() int {
	return d.img.Bounds().Dy()
}

func (d *Device) BitsPerPixel() int {
	return d.img.BitsPerPixel()
}

func (d *Device) Bounds() image.Rectangle {
	return d.img.Bounds()
}

func (d *Device) ColorModel() color.Model {
	return d.img.ColorModel()
}

func (d *Device) At(x, y int) color.Color {
	return d.img.At(x, y)
}

func (d *Device) Set(x, y int, c color.Color) {
	d.img.Set(x, y, c)
}

func (d *Device) Pixel(x, y int) bool {
	return d.img.Pixel(x, y)
}

func (d *Device) SetPixel(x, y int, on bool) bool {
	return d.img.SetPixel(x, y, on)
}

func (d *Device) SetGray(x, y int, level uint8) bool {
	return d.img.SetGray(x, y, level)
}

func (d *Device) Clear() {
	d.img.Clear()
}

func (d *Device) Fill(pattern byte) {
	d.img.FillPattern(pattern)
}

// Buffer returns the frame buffer, changes to it are visible after the next Display.
func (d *Device) Buffer() []byte {
	return d.img.Bytes()
}

// SetBuffer copies b into the frame buffer, b must have the exact size of the frame buffer.
func (d *Device) SetBuffer(b []byte) error {
	if v := len(d.img.Bytes()); len(b) != v {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrBufferSize, len(b), v)
	}
	copy(d.img.Bytes(), b)
	return nil
}

// Image is the frame buffer.
func (d *Device) Image() pixel.Image {
	return d.img
}

func (d *Device) command(cmnd byte, args ...byte) error {
	d.log.Debug().Hex("command", []byte{cmnd}).Hex("args", args).Msg("send command")
	if err := d.c.Command(cmnd, args...); err != nil {
		return &IOError{Op: "command", Opcode: cmnd, Err: err}
	}
	return nil
}

func (d *Device) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *Device) data(data ...byte) error {
	d.log.Debug().Int("size", len(data)).Msg("send data")
	if err := d.c.Data(data...); err != nil {
		return &IOError{Op: "data", Err: err}
	}
	return nil
}

func (d *Device) IsInitialized() bool {
	return d.initialized
}

// Startup resets the controller and sends the initialization sequence. The display is
// cleared and turned on. Calling Startup again repeats the sequence.
func (d *Device) Startup(externalVCC bool) (err error) {
	d.log.Debug().Bool("external_vcc", externalVCC).Msg("startup")
	if err = d.Reset(); err != nil {
		return
	}
	if err = d.SetDisplayOn(false); err != nil {
		return
	}
	if err = d.ctrl.configure(d, externalVCC); err != nil {
		return
	}
	if err = d.SetInverted(false); err != nil {
		return
	}
	d.Clear()
	if err = d.Display(); err != nil {
		return
	}
	if err = d.SetDisplayOn(true); err != nil {
		return
	}
	d.initialized = true
	return
}

// Shutdown clears the display, restores the defaults and turns the display off, then closes
// the connection. The connection is closed even if one of the commands fails. Calling
// Shutdown again does nothing.
//
// The frame buffer remains usable after shutdown; Display will attempt the transfer over
// the closed connection and report its result.
func (d *Device) Shutdown() error {
	if d.closed {
		return nil
	}
	d.log.Debug().Msg("shutdown")

	err := d.shutdown()
	d.initialized = false
	d.closed = true
	if cerr := d.c.Close(); cerr != nil && err == nil {
		err = &IOError{Op: "close", Err: cerr}
	}
	return err
}

func (d *Device) shutdown() (err error) {
	d.Clear()
	if err = d.Display(); err != nil {
		return
	}
	if err = d.Reset(); err != nil {
		return
	}
	if err = d.SetInverted(false); err != nil {
		return
	}
	if err = d.SetHFlipped(false); err != nil {
		return
	}
	if err = d.SetVFlipped(false); err != nil {
		return
	}
	if err = d.SetOffset(0); err != nil {
		return
	}
	return d.SetDisplayOn(false)
}

// Reset pulses the hardware reset line. The controller stops scrolling after a reset.
func (d *Device) Reset() error {
	if err := d.c.Reset(); err != nil {
		return &IOError{Op: "reset", Err: err}
	}
	d.scrolling = false
	return nil
}

// Display transfers the frame buffer to the controller. If the display is scrolling, a
// no operation command follows the transfer to resume scrolling with the new contents.
func (d *Device) Display() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ctrl.flush(d); err != nil {
		return err
	}
	if d.scrolling {
		if err := d.NoOp(); err != nil {
			d.log.Warn().Err(err).Msg("resume scrolling failed")
		}
	}
	return nil
}

func (d *Device) NoOp() error {
	return d.command(d.cmds.noOp)
}

func (d *Device) IsDisplayOn() bool {
	return d.displayOn
}

func (d *Device) SetDisplayOn(on bool) error {
	cmnd := d.cmds.displayOff
	if on {
		cmnd = d.cmds.displayOn
	}
	if err := d.command(cmnd); err != nil {
		return err
	}
	d.displayOn = on
	return nil
}

func (d *Device) IsInverted() bool {
	return d.inverted
}

func (d *Device) SetInverted(inverted bool) error {
	cmnd := d.cmds.normal
	if inverted {
		cmnd = d.cmds.inverse
	}
	if err := d.command(cmnd); err != nil {
		return err
	}
	d.inverted = inverted
	return nil
}

func (d *Device) IsHFlipped() bool {
	return d.hFlipped
}

// SetHFlipped mirrors the display horizontally. The controller applies the segment remap
// to data written after the command, so the frame buffer is transferred again.
func (d *Device) SetHFlipped(flip bool) error {
	if err := d.ctrl.hFlip(d, flip); err != nil {
		return err
	}
	d.hFlipped = flip
	return d.Display()
}

func (d *Device) IsVFlipped() bool {
	return d.vFlipped
}

// SetVFlipped mirrors the display vertically.
func (d *Device) SetVFlipped(flip bool) error {
	if err := d.ctrl.vFlip(d, flip); err != nil {
		return err
	}
	d.vFlipped = flip
	return nil
}

func (d *Device) Contrast() int {
	return d.contrast
}

func (d *Device) SetContrast(level int) error {
	level = clamp(level, 0, ssd1xxxMaxContrast)
	if err := d.command(d.cmds.contrast, byte(level)); err != nil {
		return err
	}
	d.contrast = level
	return nil
}

func (d *Device) Offset() int {
	return d.offset
}

func (d *Device) SetOffset(rows int) error {
	rows = clamp(rows, 0, d.Height()-1)
	if err := d.command(d.cmds.offset, byte(rows)); err != nil {
		return err
	}
	d.offset = rows
	return nil
}

func (d *Device) IsScrolling() bool {
	return d.scrolling
}

func (d *Device) StartScroll() error {
	if err := d.command(d.cmds.startScroll); err != nil {
		return err
	}
	d.scrolling = true
	return nil
}

func (d *Device) StopScroll() error {
	if err := d.command(d.cmds.stopScroll); err != nil {
		return err
	}
	d.scrolling = false
	return nil
}

func (d *Device) ScrollHorizontally(left bool, start, end int, speed ScrollSpeed) error {
	return d.ctrl.scrollHorizontally(d, left, start, end, speed)
}

func (d *Device) ScrollDiagonally(left bool, start, end, offset, rows int, speed ScrollSpeed, step int) error {
	return d.ctrl.scrollDiagonally(d, left, start, end, offset, rows, speed, step)
}

// Interface checks.
var _ Display = (*Device)(nil)
