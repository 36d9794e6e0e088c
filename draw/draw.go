// Package draw has drawing primitives for display frame buffers.
//
// All functions work on any [image/draw.Image] and only use its At and Set methods, so
// out of bounds pixels are clipped by the image.
package draw

import (
	"image"

	"golang.org/x/image/draw"
)

// Drawer is an alias for [image/draw.Drawer].
type Drawer = draw.Drawer

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for [image/draw.Op].
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over = draw.Over

	// Src specifies ``src in mask''.
	Src = draw.Src
)

// Draw calls [DrawMask] with a nil mask.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask and then replaces the rectangle r
// in dst with the result of a Porter-Duff composition. A nil mask is treated as opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}

// Scaled draws all of src scaled to fill r in dst, using bilinear interpolation.
func Scaled(dst Image, r image.Rectangle, src image.Image) {
	draw.BiLinear.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
}

// Nearest draws all of src scaled to fill r in dst, using nearest neighbor interpolation.
// This keeps hard edges, which works best for monochrome sources.
func Nearest(dst Image, r image.Rectangle, src image.Image) {
	draw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
}
