package display

import (
	"fmt"

	"github.com/BeatGlow/oled/pixel"
)

const (
	ssd1327DefaultWidth  = 128
	ssd1327DefaultHeight = 128
	ssd1327MaxWidth      = 128
	ssd1327MaxHeight     = 128
)

// SSD1327 opcodes.
const (
	ssd1327SetColumnAddress    = 0x15
	ssd1327SetRowAddress       = 0x75
	ssd1327SetDisplayStartLine = 0xA1
	ssd1327SetDisplayOffset    = 0xA2
	ssd1327SetDisplayNormal    = 0xA4
	ssd1327SetFunctionA        = 0xAB
	ssd1327SetPhaseLength      = 0xB1
	ssd1327SetFrontClockDiv    = 0xB3
	ssd1327SetSecondPrecharge  = 0xB6
	ssd1327SetPrechargeVoltage = 0xBC
	ssd1327SetVCOMHVoltage     = 0xBE
	ssd1327SetFunctionB        = 0xD5
	ssd1327SetCommandLock      = 0xFD
	ssd1327CommandUnlock       = 0x12
	ssd1327RegulatorExternal   = 0x00
	ssd1327RegulatorInternal   = 0x01
)

// SSD1327 remap bits.
const (
	ssd1327RemapColumn          = 0x01
	ssd1327RemapNibble          = 0x02
	ssd1327RemapVerticalInc     = 0x04
	ssd1327RemapCOM             = 0x10
	ssd1327RemapCOMSplitOddEven = 0x40
)

// SSD1327 is a 4-bit grayscale OLED display controller, each byte holds two horizontally
// adjacent pixels. The default size is 128x128; the width must be even.
func SSD1327(conn Conn, config *Config) (*Device, error) {
	if conn == nil {
		return nil, ErrNoConn
	}

	c := Config{}
	if config != nil {
		c = *config
	}
	if c.Width == 0 {
		c.Width = ssd1327DefaultWidth
	}
	if c.Height == 0 {
		c.Height = ssd1327DefaultHeight
	}
	if c.MaxTransfer <= 0 {
		c.MaxTransfer = ssd1xxxDefaultMaxTransfer
	}
	if c.Width < 2 || c.Width > ssd1327MaxWidth || c.Width%2 != 0 ||
		c.Height < 1 || c.Height > ssd1327MaxHeight {
		return nil, fmt.Errorf("%w: SSD1327 %dx%d", ErrSize, c.Width, c.Height)
	}

	img, err := pixel.New(c.Width, c.Height, 4)
	if err != nil {
		return nil, err
	}

	return newDevice(conn, &ssd1327{
		maxTransfer:  c.MaxTransfer,
		swapCOMSplit: c.SwapCOMSplit,
	}, &c, img), nil
}

type ssd1327 struct {
	maxTransfer  int
	swapCOMSplit bool
}

func (ssd1327) String() string {
	return "SSD1327"
}

func (ssd1327) commands() commandSet {
	return commandSet{
		displayOn:   ssd1xxxSetDisplayOn,
		displayOff:  ssd1xxxSetDisplayOff,
		normal:      ssd1327SetDisplayNormal,
		inverse:     ssd1xxxSetInverseDisplay,
		contrast:    ssd1xxxSetContrast,
		offset:      ssd1327SetDisplayOffset,
		startScroll: ssd1xxxActivateScroll,
		stopScroll:  ssd1xxxDeactivateScroll,
		noOp:        ssd1xxxNoOp,
	}
}

func (c *ssd1327) configure(d *Device, externalVCC bool) (err error) {
	var (
		regulator byte = ssd1327RegulatorInternal
		phase     byte = 0x11
	)
	if externalVCC {
		regulator = ssd1327RegulatorExternal
		phase = 0x22
	}

	if err = d.commands(
		[]byte{ssd1327SetCommandLock, ssd1327CommandUnlock},
		[]byte{ssd1327SetFrontClockDiv, 0x00},
		[]byte{ssd1xxxSetMultiplexRatio, byte(d.Height() - 1)},
	); err != nil {
		return
	}
	if err = d.SetOffset(0); err != nil {
		return
	}
	if err = d.commands(
		[]byte{ssd1327SetDisplayStartLine, 0x00},
		[]byte{ssd1327SetFunctionA, regulator},
	); err != nil {
		return
	}
	if err = d.SetHFlipped(false); err != nil {
		return
	}
	if err = d.SetVFlipped(false); err != nil {
		return
	}
	if err = d.command(ssd1327SetPhaseLength, phase); err != nil {
		return
	}
	if err = d.SetContrast(0x80); err != nil {
		return
	}
	return d.commands(
		[]byte{ssd1327SetSecondPrecharge, 0x04},
		[]byte{ssd1327SetPrechargeVoltage, 0x08},
		[]byte{ssd1327SetVCOMHVoltage, 0x0F},
		[]byte{ssd1327SetFunctionB, 0x62},
	)
}

// remap is the remap configuration for the flip state. Segments and COM lines are remapped
// in the unflipped orientation.
func (c *ssd1327) remap(hFlipped, vFlipped bool) byte {
	var remap byte
	if !c.swapCOMSplit {
		remap |= ssd1327RemapCOMSplitOddEven
	}
	if !vFlipped {
		remap |= ssd1327RemapCOM
	}
	if !hFlipped {
		remap |= ssd1327RemapColumn
	}
	return remap
}

func (c *ssd1327) hFlip(d *Device, flip bool) error {
	return d.command(ssd1xxxSetRemap, c.remap(flip, d.vFlipped))
}

func (c *ssd1327) vFlip(d *Device, flip bool) error {
	return d.command(ssd1xxxSetRemap, c.remap(d.hFlipped, flip))
}

// flush sends the frame buffer in row aligned segments of at most maxTransfer bytes, and
// at least two segments. The address window is set before every segment.
func (c *ssd1327) flush(d *Device) (err error) {
	var (
		pix    = d.img.Bytes()
		height = d.Height()
		stride = d.Width() / 2
		rows   = max(1, c.maxTransfer/stride)
	)
	if half := (height + 1) / 2; rows > half {
		rows = half
	}

	for y := 0; y < height; y += rows {
		end := min(y+rows, height)
		if err = d.commands(
			[]byte{ssd1327SetColumnAddress, 0x00, byte(stride - 1)},
			[]byte{ssd1327SetRowAddress, byte(y), byte(end - 1)},
		); err != nil {
			return
		}
		if err = d.data(pix[y*stride : end*stride]...); err != nil {
			return
		}
	}
	return
}

func (ssd1327) scrollHorizontally(d *Device, left bool, start, end int, speed ScrollSpeed) error {
	cmnd := byte(ssd1xxxScrollRight)
	if left {
		cmnd = ssd1xxxScrollLeft
	}
	return d.command(cmnd,
		ssd1xxxDummyByteZero,
		byte(start),
		speed.code(),
		byte(end),
		0x00,
		byte(d.Width()/2-1),
		ssd1xxxDummyByteZero,
	)
}

func (ssd1327) scrollDiagonally(*Device, bool, int, int, int, int, ScrollSpeed, int) error {
	return fmt.Errorf("%w: SSD1327 diagonal scrolling", ErrNotSupported)
}
