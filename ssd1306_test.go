package display

import (
	"testing"
)

func TestSSD1306Startup(t *testing.T) {
	flush := func(colStart, colEnd, pages byte, size int) []testOp {
		return []testOp{
			cmd(0x21, colStart, colEnd),
			cmd(0x22, 0x00, pages-1),
			dat(size),
		}
	}
	sequence := func(head []testOp, flush []testOp, tail []testOp) []testOp {
		var ops []testOp
		ops = append(ops, cmd(0xae))
		ops = append(ops, head...)
		ops = append(ops, cmd(0xa1))
		ops = append(ops, flush...)
		ops = append(ops, cmd(0xc8))
		ops = append(ops, tail...)
		ops = append(ops, cmd(0xa6))
		ops = append(ops, flush...)
		ops = append(ops, cmd(0xaf))
		return ops
	}

	tests := []struct {
		name        string
		config      *Config
		externalVCC bool
		want        []testOp
	}{
		{
			"i2c 128x64", nil, false,
			sequence(
				[]testOp{cmd(0xd5, 0x80), cmd(0xa8, 0x3f), cmd(0xd3, 0x00), cmd(0x40), cmd(0x8d, 0x14), cmd(0x20, 0x00)},
				flush(0x00, 0x7f, 8, 1024),
				[]testOp{cmd(0xda, 0x12), cmd(0x81, 0x8f), cmd(0xd9, 0xf1), cmd(0xdb, 0x00), cmd(0xa4)},
			),
		},
		{
			"i2c 128x32 external vcc", &Config{Width: 128, Height: 32}, true,
			sequence(
				[]testOp{cmd(0xd5, 0x80), cmd(0xa8, 0x1f), cmd(0xd3, 0x00), cmd(0x40), cmd(0x8d, 0x10), cmd(0x20, 0x00)},
				flush(0x00, 0x7f, 4, 512),
				[]testOp{cmd(0xda, 0x02), cmd(0x81, 0x9f), cmd(0xd9, 0x22), cmd(0xdb, 0x00), cmd(0xa4)},
			),
		},
		{
			"spi 128x64", &Config{Profile: ProfileSPI}, false,
			sequence(
				[]testOp{cmd(0xd5, 0x80), cmd(0xa8, 0x7f), cmd(0xd3, 0x00), cmd(0x40), cmd(0x8d, 0x14), cmd(0x20, 0x00)},
				flush(0x00, 0x7f, 8, 1024),
				[]testOp{cmd(0xda, 0x12), cmd(0x81, 0xcf), cmd(0xd9, 0xf1), cmd(0xdb, 0x40), cmd(0xa4)},
			),
		},
		{
			"panel 64x48", &Config{Width: 64, Height: 48, Profile: ProfilePanel}, false,
			sequence(
				[]testOp{cmd(0xd5, 0x80), cmd(0xa8, 0x2f), cmd(0xd3, 0x00), cmd(0x40), cmd(0x8d, 0x14), cmd(0x20, 0x00)},
				flush(0x20, 0x5f, 6, 384),
				[]testOp{cmd(0xda, 0x12), cmd(0x81, 0xcf), cmd(0xd9, 0xf1), cmd(0xdb, 0x40), cmd(0xa4)},
			),
		},
		{
			"panel 96x16", &Config{Width: 96, Height: 16, Profile: ProfilePanel}, false,
			sequence(
				[]testOp{cmd(0xd5, 0x60), cmd(0xa8, 0x0f), cmd(0xd3, 0x00), cmd(0x40), cmd(0x8d, 0x14), cmd(0x20, 0x00)},
				flush(0x00, 0x5f, 2, 192),
				[]testOp{cmd(0xda, 0x02), cmd(0x81, 0xcf), cmd(0xd9, 0xf1), cmd(0xdb, 0x40), cmd(0xa4)},
			),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			d, c := testSSD1306(it, test.config)
			if err := d.Startup(test.externalVCC); err != nil {
				it.Fatal(err)
			}
			testCompareOps(it, c.ops, test.want)
		})
	}
}

func TestSSD1306Flip(t *testing.T) {
	d, c := testSSD1306(t, nil)
	if err := d.SetVFlipped(true); err != nil {
		t.Fatal(err)
	}
	if !d.IsVFlipped() {
		t.Error("expected display to be flipped")
	}
	if err := d.SetVFlipped(false); err != nil {
		t.Fatal(err)
	}
	testCompareOps(t, c.ops, []testOp{cmd(0xc0), cmd(0xc8)})
}

func TestSSD1306Commands(t *testing.T) {
	tests := []struct {
		name string
		call func(*Device) error
		want []testOp
	}{
		{"display on", func(d *Device) error { return d.SetDisplayOn(true) }, []testOp{cmd(0xaf)}},
		{"display off", func(d *Device) error { return d.SetDisplayOn(false) }, []testOp{cmd(0xae)}},
		{"inverted", func(d *Device) error { return d.SetInverted(true) }, []testOp{cmd(0xa7)}},
		{"normal", func(d *Device) error { return d.SetInverted(false) }, []testOp{cmd(0xa6)}},
		{"no-op", func(d *Device) error { return d.NoOp() }, []testOp{cmd(0xe3)}},
		{
			"scroll right",
			func(d *Device) error { return d.ScrollHorizontally(false, 0, 7, Scroll5Frames) },
			[]testOp{cmd(0x26, 0x00, 0x00, 0x00, 0x07, 0x00, 0xff)},
		},
		{
			"scroll left",
			func(d *Device) error { return d.ScrollHorizontally(true, 2, 5, Scroll2Frames) },
			[]testOp{cmd(0x27, 0x00, 0x02, 0x07, 0x05, 0x00, 0xff)},
		},
		{
			"scroll diagonal right",
			func(d *Device) error { return d.ScrollDiagonally(false, 0, 7, 0, 64, Scroll256Frames, 1) },
			[]testOp{cmd(0xa3, 0x00, 0x40), cmd(0x29, 0x00, 0x00, 0x03, 0x07, 0x01)},
		},
		{
			"scroll diagonal left",
			func(d *Device) error { return d.ScrollDiagonally(true, 1, 3, 8, 32, Scroll25Frames, 4) },
			[]testOp{cmd(0xa3, 0x08, 0x20), cmd(0x2a, 0x00, 0x01, 0x06, 0x03, 0x04)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			d, c := testSSD1306(it, nil)
			if err := test.call(d); err != nil {
				it.Fatal(err)
			}
			testCompareOps(it, c.ops, test.want)
		})
	}
}

func TestScrollSpeed(t *testing.T) {
	tests := []struct {
		speed ScrollSpeed
		code  byte
	}{
		{Scroll5Frames, 0x00},
		{Scroll64Frames, 0x01},
		{Scroll128Frames, 0x02},
		{Scroll256Frames, 0x03},
		{Scroll3Frames, 0x04},
		{Scroll4Frames, 0x05},
		{Scroll25Frames, 0x06},
		{Scroll2Frames, 0x07},
		{ScrollSpeed(7), 0x00},
	}
	for _, test := range tests {
		if v := test.speed.code(); v != test.code {
			t.Errorf("%s: expected code %d, got %d", test.speed, test.code, v)
		}
	}
}
