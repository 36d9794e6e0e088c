package pixel

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/dither"
)

// Palettes matching the color models, used when dithering.
var (
	MonoPalette  = []color.Color{color.Black, color.White}
	Gray4Palette = makeGray4Palette()
)

func makeGray4Palette() []color.Color {
	p := make([]color.Color, 16)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i<<4 | i)}
	}
	return p
}

// Rasterize renders src into dst.
//
// If src has a different size it is scaled to fit and centered on a black background.
// With diffuse set, src is Floyd-Steinberg dithered to the palette matching the color
// depth of dst before it is copied; otherwise every source pixel is converted using the
// color model of dst.
func Rasterize(dst Image, src image.Image, diffuse bool) {
	var (
		b    = dst.Bounds()
		size = b.Size()
	)
	if size.X == 0 || size.Y == 0 {
		return
	}

	if !src.Bounds().Size().Eq(size) {
		fit := imaging.Fit(src, size.X, size.Y, imaging.Lanczos)
		src = imaging.PasteCenter(imaging.New(size.X, size.Y, color.Black), fit)
	}

	if diffuse {
		palette := MonoPalette
		if dst.BitsPerPixel() == 4 {
			palette = Gray4Palette
		}
		d := dither.NewDitherer(palette)
		d.Matrix = dither.FloydSteinberg
		if out := d.Dither(src); out != nil {
			src = out
		}
	}

	offset := src.Bounds().Min
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			dst.Set(b.Min.X+x, b.Min.Y+y, src.At(offset.X+x, offset.Y+y))
		}
	}
}
