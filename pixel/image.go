package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Errors
var (
	ErrSize  = errors.New("pixel: invalid image size")
	ErrDepth = errors.New("pixel: unsupported bits per pixel")
)

// Image is a frame buffer that can be drawn on and flushed to a display as-is.
type Image interface {
	draw.Image

	// BitsPerPixel is the color depth of the image.
	BitsPerPixel() int

	// Bytes returns the raw pixel bytes in the controller's memory layout.
	Bytes() []byte

	// Pixel reports if the pixel at (x, y) is lit; out of bounds pixels are never lit.
	Pixel(x, y int) bool

	// SetPixel turns the pixel at (x, y) on or off. It returns false if (x, y) is out of
	// bounds, in which case the image is not modified.
	SetPixel(x, y int, on bool) bool

	// SetGray sets the pixel at (x, y) to a 4-bit gray level. On 1-bit images any non-zero
	// level turns the pixel on.
	SetGray(x, y int, level uint8) bool

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)

	// FillPattern overwrites every byte in the image with value.
	FillPattern(value byte)
}

// New returns an empty image with the layout used for the given color depth: 1 bit per
// pixel selects the paged layout, 4 bits per pixel the packed grayscale layout.
func New(w, h, bitsPerPixel int) (Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, w, h)
	}
	switch bitsPerPixel {
	case 1:
		if h%8 != 0 {
			return nil, fmt.Errorf("%w: height %d is not a multiple of 8", ErrSize, h)
		}
		return NewMonoVerticalLSBImage(w, h), nil
	case 4:
		if w%2 != 0 {
			return nil, fmt.Errorf("%w: width %d is not even", ErrSize, w)
		}
		return NewGray4Image(w, h), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrDepth, bitsPerPixel)
	}
}

// Buffer holds the pixel values and is a container that is used by all image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels, or pages.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Bytes() []byte {
	return p.Pix
}

func (p *Buffer) Clear() {
	p.FillPattern(0x00)
}

func (p *Buffer) FillPattern(value byte) {
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

func (p *Buffer) in(x, y int) bool {
	return x >= p.Rect.Min.X && x < p.Rect.Max.X && y >= p.Rect.Min.Y && y < p.Rect.Max.Y
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// Rows are grouped in pages of 8; every byte holds one column of a page with the least
// significant bit at the top. This is the GDDRAM layout of SSD1306 displays.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	pages := (h + 7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, pages*w),
	}
}

func (p *MonoVerticalLSBImage) BitsPerPixel() int {
	return 1
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the byte holding pixel (x, y) and the bit mask of the
// pixel within that byte.
func (p *MonoVerticalLSBImage) PixOffset(x, y int) (int, byte) {
	return x + (y/8)*p.Stride, byte(1) << uint(y&7)
}

func (p *MonoVerticalLSBImage) Pixel(x, y int) bool {
	if !p.in(x, y) {
		return false
	}
	pos, bit := p.PixOffset(x, y)
	return p.Pix[pos]&bit != 0
}

func (p *MonoVerticalLSBImage) SetPixel(x, y int, on bool) bool {
	if !p.in(x, y) {
		return false
	}
	pos, bit := p.PixOffset(x, y)
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
	return true
}

func (p *MonoVerticalLSBImage) SetGray(x, y int, level uint8) bool {
	return p.SetPixel(x, y, level&0xf != 0)
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !p.in(x, y) {
		return color.Transparent
	}
	return Mono{On: p.Pixel(x, y)}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, monoModel(c).(Mono).On)
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	p.FillPattern(value)
}

// Gray4Image is a 4-bits per pixel gray scale image.
//
// Every byte holds two horizontally adjacent pixels: the even column in the low nibble and
// the odd column in the high nibble. This is the GDDRAM layout of SSD1327 displays.
type Gray4Image struct {
	Buffer
}

func NewGray4Image(w, h int) *Gray4Image {
	stride := (w + 1) / 2
	return &Gray4Image{
		Buffer: makeBuffer(w, h, stride, h*stride),
	}
}

func (p *Gray4Image) BitsPerPixel() int {
	return 4
}

func (p *Gray4Image) ColorModel() color.Model {
	return Gray4Model
}

// PixOffset returns the index of the byte holding pixel (x, y) and the shift of the
// pixel's nibble within that byte.
func (p *Gray4Image) PixOffset(x, y int) (int, uint) {
	return x/2 + y*p.Stride, uint(x&1) << 2
}

// Gray returns the 4-bit gray level at (x, y).
func (p *Gray4Image) Gray(x, y int) uint8 {
	if !p.in(x, y) {
		return 0
	}
	pos, shift := p.PixOffset(x, y)
	return (p.Pix[pos] >> shift) & 0xf
}

func (p *Gray4Image) Pixel(x, y int) bool {
	return p.Gray(x, y) != 0
}

func (p *Gray4Image) SetPixel(x, y int, on bool) bool {
	if on {
		return p.SetGray(x, y, 0xf)
	}
	return p.SetGray(x, y, 0x0)
}

func (p *Gray4Image) SetGray(x, y int, level uint8) bool {
	if !p.in(x, y) {
		return false
	}
	pos, shift := p.PixOffset(x, y)
	p.Pix[pos] = (p.Pix[pos] &^ (0xf << shift)) | (level&0xf)<<shift
	return true
}

func (p *Gray4Image) At(x, y int) color.Color {
	if !p.in(x, y) {
		return color.Transparent
	}
	return Gray4{Y: p.Gray(x, y)}
}

func (p *Gray4Image) Set(x, y int, c color.Color) {
	p.SetGray(x, y, gray4Model(c).(Gray4).Y)
}

func (p *Gray4Image) Fill(c color.Color) {
	value := gray4Model(c).(Gray4).Y & 0xf
	p.FillPattern(value | value<<4)
}

// Interface checks.
var (
	_ Image = (*MonoVerticalLSBImage)(nil)
	_ Image = (*Gray4Image)(nil)
)
