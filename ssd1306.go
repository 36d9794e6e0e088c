package display

import (
	"fmt"

	"github.com/BeatGlow/oled/pixel"
)

const (
	ssd1306DefaultWidth  = 128
	ssd1306DefaultHeight = 64
	ssd1306MaxWidth      = 128
	ssd1306MaxHeight     = 64
	ssd1306PageSize      = 8
)

// SSD1306 opcodes.
const (
	ssd1306SetMemoryMode           = 0x20
	ssd1306SetColumnAddr           = 0x21
	ssd1306SetPageAddr             = 0x22
	ssd1306ScrollVerticalRight     = 0x29
	ssd1306ScrollVerticalLeft      = 0x2A
	ssd1306SetStartLine            = 0x40 // 0x40-0x7F, start line in the lower 6 bits
	ssd1306SetChargePump           = 0x8D
	ssd1306SetSegmentRemapNormal   = 0xA0
	ssd1306SetSegmentRemapReverse  = 0xA1
	ssd1306SetVerticalScrollArea   = 0xA3
	ssd1306SetDisplayAllOnResume   = 0xA4
	ssd1306SetNormalDisplay        = 0xA6
	ssd1306SetComScanInc           = 0xC0
	ssd1306SetComScanDec           = 0xC8
	ssd1306SetDisplayOffset        = 0xD3
	ssd1306SetDisplayClockDiv      = 0xD5
	ssd1306SetPrecharge            = 0xD9
	ssd1306SetComPins              = 0xDA
	ssd1306SetVCOMDeselect         = 0xDB
	ssd1306MemoryModeHorizontal    = 0x00
	ssd1306MemoryModeVertical      = 0x01
	ssd1306MemoryModePage          = 0x02
	ssd1306ChargePumpDisable       = 0x10
	ssd1306ChargePumpEnable        = 0x14
	ssd1306VCOMDeselectLevel065    = 0x00
	ssd1306VCOMDeselectLevel077    = 0x20
	ssd1306VCOMDeselectLevel083    = 0x30
	ssd1306VCOMDeselectLevelPanel  = 0x40
	ssd1306ComPinsSequential       = 0x02
	ssd1306ComPinsAlternative      = 0x12
	ssd1306DisplayClockDivDefault  = 0x80
	ssd1306PrechargeInternal       = 0xF1
	ssd1306PrechargeExternal       = 0x22
	ssd1306ContrastInternal        = 0xCF
	ssd1306ContrastExternal        = 0x9F
	ssd1306ContrastAlternativePins = 0x8F
)

// SSD1306 is a 1-bit monochrome OLED display controller with paged memory, each byte is a
// column of 8 pixels. The default size is 128x64; the height must be a multiple of 8.
func SSD1306(conn Conn, config *Config) (*Device, error) {
	if conn == nil {
		return nil, ErrNoConn
	}

	c := Config{}
	if config != nil {
		c = *config
	}
	if c.Width == 0 {
		c.Width = ssd1306DefaultWidth
	}
	if c.Height == 0 {
		c.Height = ssd1306DefaultHeight
	}
	if c.Width < 1 || c.Width > ssd1306MaxWidth ||
		c.Height < ssd1306PageSize || c.Height > ssd1306MaxHeight || c.Height%ssd1306PageSize != 0 {
		return nil, fmt.Errorf("%w: SSD1306 %dx%d", ErrSize, c.Width, c.Height)
	}

	img, err := pixel.New(c.Width, c.Height, 1)
	if err != nil {
		return nil, err
	}

	d := &ssd1306{
		profile: c.Profile,
		pages:   c.Height / ssd1306PageSize,
	}
	if c.Profile == ProfilePanel && c.Width == 64 {
		d.colStart = 32
	}
	return newDevice(conn, d, &c, img), nil
}

type ssd1306 struct {
	profile  Profile
	pages    int
	colStart int
}

func (ssd1306) String() string {
	return "SSD1306"
}

func (ssd1306) commands() commandSet {
	return commandSet{
		displayOn:   ssd1xxxSetDisplayOn,
		displayOff:  ssd1xxxSetDisplayOff,
		normal:      ssd1306SetNormalDisplay,
		inverse:     ssd1xxxSetInverseDisplay,
		contrast:    ssd1xxxSetContrast,
		offset:      ssd1306SetDisplayOffset,
		startScroll: ssd1xxxActivateScroll,
		stopScroll:  ssd1xxxDeactivateScroll,
		noOp:        ssd1xxxNoOp,
	}
}

// values returns the clock divider, multiplex ratio, COM pins configuration, contrast and
// VCOMH deselect level for the profile.
func (c *ssd1306) values(width, height int, externalVCC bool) (clockDiv, multiplex, comPins, contrast, vcomh byte) {
	contrast = ssd1306ContrastInternal
	if externalVCC {
		contrast = ssd1306ContrastExternal
	}

	switch c.profile {
	case ProfileSPI:
		clockDiv = byte(width)
		multiplex = byte(width - 1)
		comPins = ssd1306ComPinsSequential
		if height == 64 {
			comPins = ssd1306ComPinsAlternative
		}
		vcomh = ssd1306VCOMDeselectLevelPanel

	case ProfilePanel:
		clockDiv = ssd1306DisplayClockDivDefault
		if width == 96 && height == 16 {
			clockDiv = 0x60
		}
		multiplex = byte(height - 1)
		comPins = ssd1306ComPinsSequential
		if height > 32 || width == 64 {
			comPins = ssd1306ComPinsAlternative
		}
		vcomh = ssd1306VCOMDeselectLevelPanel

	default:
		clockDiv = ssd1306DisplayClockDivDefault
		multiplex = 0x1F
		comPins = ssd1306ComPinsSequential
		if height == 64 {
			multiplex = 0x3F
			comPins = ssd1306ComPinsAlternative
			contrast = ssd1306ContrastAlternativePins
		}
		vcomh = ssd1306VCOMDeselectLevel065
	}
	return
}

func (c *ssd1306) configure(d *Device, externalVCC bool) (err error) {
	clockDiv, multiplex, comPins, contrast, vcomh := c.values(d.Width(), d.Height(), externalVCC)

	var (
		chargePump byte = ssd1306ChargePumpEnable
		precharge  byte = ssd1306PrechargeInternal
	)
	if externalVCC {
		chargePump = ssd1306ChargePumpDisable
		precharge = ssd1306PrechargeExternal
	}

	if err = d.commands(
		[]byte{ssd1306SetDisplayClockDiv, clockDiv},
		[]byte{ssd1xxxSetMultiplexRatio, multiplex},
	); err != nil {
		return
	}
	if err = d.SetOffset(0); err != nil {
		return
	}
	if err = d.commands(
		[]byte{ssd1306SetStartLine},
		[]byte{ssd1306SetChargePump, chargePump},
		[]byte{ssd1306SetMemoryMode, ssd1306MemoryModeHorizontal},
	); err != nil {
		return
	}
	if err = d.SetHFlipped(false); err != nil {
		return
	}
	if err = d.SetVFlipped(false); err != nil {
		return
	}
	if err = d.command(ssd1306SetComPins, comPins); err != nil {
		return
	}
	if err = d.SetContrast(int(contrast)); err != nil {
		return
	}
	return d.commands(
		[]byte{ssd1306SetPrecharge, precharge},
		[]byte{ssd1306SetVCOMDeselect, vcomh},
		[]byte{ssd1306SetDisplayAllOnResume},
	)
}

func (c *ssd1306) flush(d *Device) (err error) {
	if err = d.commands(
		[]byte{ssd1306SetColumnAddr, byte(c.colStart), byte(c.colStart + d.Width() - 1)},
		[]byte{ssd1306SetPageAddr, 0x00, byte(c.pages - 1)},
	); err != nil {
		return
	}
	return d.data(d.img.Bytes()...)
}

func (ssd1306) hFlip(d *Device, flip bool) error {
	if flip {
		return d.command(ssd1306SetSegmentRemapNormal)
	}
	return d.command(ssd1306SetSegmentRemapReverse)
}

func (ssd1306) vFlip(d *Device, flip bool) error {
	if flip {
		return d.command(ssd1306SetComScanInc)
	}
	return d.command(ssd1306SetComScanDec)
}

func (ssd1306) scrollHorizontally(d *Device, left bool, start, end int, speed ScrollSpeed) error {
	cmnd := byte(ssd1xxxScrollRight)
	if left {
		cmnd = ssd1xxxScrollLeft
	}
	return d.command(cmnd,
		ssd1xxxDummyByteZero,
		byte(start),
		speed.code(),
		byte(end),
		ssd1xxxDummyByteZero,
		ssd1xxxDummyByteOnes,
	)
}

func (ssd1306) scrollDiagonally(d *Device, left bool, start, end, offset, rows int, speed ScrollSpeed, step int) (err error) {
	cmnd := byte(ssd1306ScrollVerticalRight)
	if left {
		cmnd = ssd1306ScrollVerticalLeft
	}
	return d.commands(
		[]byte{ssd1306SetVerticalScrollArea, byte(offset), byte(rows)},
		[]byte{cmnd, ssd1xxxDummyByteZero, byte(start), speed.code(), byte(end), byte(step)},
	)
}
