package pixel

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestMonoVerticalLSBImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoVerticalLSBImage(size.X, size.Y)
	}, MonoModel)
}

func TestGray4Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewGray4Image(size.X, size.Y)
	}, Gray4Model)
}

func TestNew(t *testing.T) {
	tests := []struct {
		w, h, bits int
		size       int
		err        error
	}{
		{128, 64, 1, 1024, nil},
		{128, 32, 1, 512, nil},
		{96, 16, 1, 192, nil},
		{128, 128, 4, 8192, nil},
		{2, 1, 4, 1, nil},
		{0, 64, 1, 0, ErrSize},
		{128, -8, 1, 0, ErrSize},
		{128, 60, 1, 0, ErrSize},
		{127, 128, 4, 0, ErrSize},
		{128, 64, 8, 0, ErrDepth},
	}
	for _, test := range tests {
		i, err := New(test.w, test.h, test.bits)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("New(%d, %d, %d): expected error %v, got %v", test.w, test.h, test.bits, test.err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%d, %d, %d): unexpected error %v", test.w, test.h, test.bits, err)
			continue
		}
		if v := len(i.Bytes()); v != test.size {
			t.Errorf("New(%d, %d, %d): expected %d bytes, got %d", test.w, test.h, test.bits, test.size, v)
		}
		if v := test.w * test.h * test.bits / 8; v != len(i.Bytes()) {
			t.Errorf("New(%d, %d, %d): buffer size %d does not match w*h*bpp/8 = %d", test.w, test.h, test.bits, len(i.Bytes()), v)
		}
		if v := i.BitsPerPixel(); v != test.bits {
			t.Errorf("New(%d, %d, %d): expected %d bits per pixel, got %d", test.w, test.h, test.bits, test.bits, v)
		}
	}
}

func TestMonoVerticalLSBImageLayout(t *testing.T) {
	i := NewMonoVerticalLSBImage(128, 64)

	i.SetPixel(0, 0, true)
	if i.Pix[0] != 0x01 {
		t.Errorf("(0,0): expected byte 0 to be 0x01, got %#02x", i.Pix[0])
	}

	i.SetPixel(0, 8, true)
	if i.Pix[128] != 0x01 {
		t.Errorf("(0,8): expected byte 128 to be 0x01, got %#02x", i.Pix[128])
	}

	i.SetPixel(5, 15, true)
	if i.Pix[128+5] != 0x80 {
		t.Errorf("(5,15): expected byte 133 to be 0x80, got %#02x", i.Pix[133])
	}

	i.SetPixel(127, 63, true)
	if i.Pix[1023] != 0x80 {
		t.Errorf("(127,63): expected byte 1023 to be 0x80, got %#02x", i.Pix[1023])
	}

	i.SetPixel(0, 0, false)
	if i.Pix[0] != 0x00 {
		t.Errorf("(0,0): expected byte 0 to be cleared, got %#02x", i.Pix[0])
	}
}

func TestGray4ImageLayout(t *testing.T) {
	i := NewGray4Image(128, 128)

	i.SetPixel(1, 0, true)
	if i.Pix[0] != 0xf0 {
		t.Errorf("(1,0): expected byte 0 to be 0xf0, got %#02x", i.Pix[0])
	}

	i.SetPixel(0, 1, true)
	if i.Pix[64] != 0x0f {
		t.Errorf("(0,1): expected byte 64 to be 0x0f, got %#02x", i.Pix[64])
	}

	i.SetGray(0, 0, 0x5)
	if i.Pix[0] != 0xf5 {
		t.Errorf("(0,0): expected byte 0 to be 0xf5, got %#02x", i.Pix[0])
	}
	if v := i.Gray(0, 0); v != 0x5 {
		t.Errorf("(0,0): expected gray level 5, got %d", v)
	}

	i.SetPixel(1, 0, false)
	if i.Pix[0] != 0x05 {
		t.Errorf("(1,0): expected byte 0 to be 0x05, got %#02x", i.Pix[0])
	}

	i.SetGray(127, 127, 0xff)
	if i.Pix[len(i.Pix)-1] != 0xf0 {
		t.Errorf("(127,127): expected last byte to be 0xf0, got %#02x", i.Pix[len(i.Pix)-1])
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		image.Pt(2, 8),
		image.Pt(64, 32),
		image.Pt(128, 64),
		image.Pt(128, 128),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						if !i.SetPixel(x, y, true) {
							itt.Fatalf("pixel (%d,%d) was not set", x, y)
						}
						if !i.Pixel(x, y) {
							itt.Fatalf("pixel (%d,%d) is off, expected on", x, y)
						}
						if !i.SetPixel(x, y, false) {
							itt.Fatalf("pixel (%d,%d) was not set", x, y)
						}
						if i.Pixel(x, y) {
							itt.Fatalf("pixel (%d,%d) is on, expected off", x, y)
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				i.Clear()
				want := bytes.Clone(i.Bytes())
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						if x >= 0 && x < test.X && y >= 0 && y < test.Y {
							continue
						}
						if i.SetPixel(x, y, true) {
							itt.Fatalf("pixel (%d,%d) is out of bounds, but was set", x, y)
						}
						i.Set(x, y, On)
						if i.Pixel(x, y) {
							itt.Fatalf("pixel (%d,%d) is out of bounds, but reported on", x, y)
						}
						if v := i.At(x, y); v != color.Transparent {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
						}
					}
				}
				if !bytes.Equal(i.Bytes(), want) {
					itt.Fatal("out of bounds writes modified the buffer")
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				x := rand.Intn(test.X)
				y := rand.Intn(test.Y)
				if v := i.ColorModel().Convert(c); i.At(x, y) != v {
					itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
				}
			})

			it.Run("fill-pattern", func(itt *testing.T) {
				i.FillPattern(0xaa)
				for j, v := range i.Bytes() {
					if v != 0xaa {
						itt.Fatalf("byte %d is %#02x, expected 0xaa", j, v)
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						if i.Pixel(x, y) {
							itt.Fatalf("pixel (%d,%d) is not black", x, y)
						}
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
