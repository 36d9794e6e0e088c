package draw

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is used for text if no face is given.
var DefaultFace font.Face = basicfont.Face7x13

// Text draws s with its top left corner at pt. It returns the position after the last glyph,
// which can be used to continue the text on the same line.
func Text(dst Image, pt image.Point, face font.Face, s string, c color.Color) image.Point {
	if face == nil {
		face = DefaultFace
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return image.Pt(d.Dot.X.Ceil(), pt.Y)
}

// TextSize is the size of s in pixels when drawn with Text.
func TextSize(face font.Face, s string) image.Point {
	if face == nil {
		face = DefaultFace
	}
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil())
}
