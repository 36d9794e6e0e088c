package draw

import (
	"image"
	"image/color"
	"math"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w <= 0 {
		return
	}
	bresenham(dst, x, y, x+w-1, y, c)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h <= 0 {
		return
	}
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rectangle draws the outline of rect.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// RoundedRectangle draws a rectangle with radius pixels rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	var (
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
		r = clampRadius(radius, w, h)
	)
	if r == 0 {
		Rectangle(dst, rect, c)
		return
	}
	HorizontalLine(dst, x+r, y, w-2*r, c)
	HorizontalLine(dst, x+r, y+h-1, w-2*r, c)
	VerticalLine(dst, x, y+r, h-2*r, c)
	VerticalLine(dst, x+w-1, y+r, h-2*r, c)
	roundedCorner(dst, x+0+r+0, y+0+r+0, r, 1, c)
	roundedCorner(dst, x+w-r-1, y+0+r+0, r, 2, c)
	roundedCorner(dst, x+w-r-1, y+h-r-1, r, 4, c)
	roundedCorner(dst, x+0+r+0, y+h-r-1, r, 8, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, w, c)
	}
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	var (
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
		r = clampRadius(radius, w, h)
	)
	if r == 0 {
		Box(dst, rect, c)
		return
	}
	Box(dst, image.Rect(x+r, y, x+w-r, y+h), c)
	filledRoundedCorner(dst, x+w-r-1, y+r, r, 1, h-2*r-1, c)
	filledRoundedCorner(dst, x+r, y+r, r, 2, h-2*r-1, c)
}

// Circle draws a circle around center.
func Circle(dst Image, center image.Point, radius int, c color.Color) {
	if radius <= 0 {
		dst.Set(center.X, center.Y, c)
		return
	}
	dst.Set(center.X, center.Y-radius, c)
	dst.Set(center.X, center.Y+radius, c)
	dst.Set(center.X-radius, center.Y, c)
	dst.Set(center.X+radius, center.Y, c)
	roundedCorner(dst, center.X, center.Y, radius, 1|2|4|8, c)
}

// Arc draws the part of a circle around center from angle start to end, in whole degrees.
// Angle 0 points down and angles increase counter clockwise; an arc from 0 to 360 is a
// full circle.
func Arc(dst Image, center image.Point, radius, start, end int, c color.Color) {
	for angle := start; angle <= end; angle++ {
		rad := float64(angle) * math.Pi / 180
		dst.Set(
			center.X+int(math.Round(float64(radius)*math.Sin(rad))),
			center.Y+int(math.Round(float64(radius)*math.Cos(rad))),
			c)
	}
}

func clampRadius(radius, w, h int) int {
	return max(0, min(radius, (w-1)/2, (h-1)/2))
}

func roundedCorner(dst Image, x0, y0, radius, quadrant int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&4 != 0 {
			dst.Set(x0+x, y0+y, c)
			dst.Set(x0+y, y0+x, c)
		}
		if quadrant&2 != 0 {
			dst.Set(x0+x, y0-y, c)
			dst.Set(x0+y, y0-x, c)
		}
		if quadrant&8 != 0 {
			dst.Set(x0-y, y0+x, c)
			dst.Set(x0-x, y0+y, c)
		}
		if quadrant&1 != 0 {
			dst.Set(x0-y, y0-x, c)
			dst.Set(x0-x, y0-y, c)
		}
	}
}

// filledRoundedCorner fills the right (quadrant 1) or left (quadrant 2) half of a circle,
// stretched vertically by delta pixels.
func filledRoundedCorner(dst Image, x0, y0, radius, quadrant, delta int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&1 != 0 {
			VerticalLine(dst, x0+x, y0-y, 2*y+1+delta, c)
			VerticalLine(dst, x0+y, y0-x, 2*x+1+delta, c)
		}

		if quadrant&2 != 0 {
			VerticalLine(dst, x0-x, y0-y, 2*y+1+delta, c)
			VerticalLine(dst, x0-y, y0-x, 2*x+1+delta, c)
		}
	}
}

// bresenham draws the line from (x1,y1) to (x2,y2), both end points included.
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	// Drawing p1 -> p2 is the same as p2 -> p1, so only lines going right are handled.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	var (
		dx   = x2 - x1
		dy   = y2 - y1
		step = 1
	)
	if dy < 0 {
		dy, step = -dy, -1
	}

	switch {
	case dx == 0 && dy == 0:
		dst.Set(x1, y1, c)

	case dy == 0:
		for x := x1; x <= x2; x++ {
			dst.Set(x, y1, c)
		}

	case dx == 0:
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			dst.Set(x1, y, c)
		}

	case dx == dy:
		for i := 0; i <= dx; i++ {
			dst.Set(x1+i, y1+i*step, c)
		}

	// wider than high
	case dx > dy:
		var (
			e     = dx
			slope = 2 * dx
		)
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
			if e -= 2 * dy; e < 0 {
				y1 += step
				e += slope
			}
		}
		dst.Set(x2, y2, c)

	// higher than wide
	default:
		var (
			e     = dy
			slope = 2 * dy
		)
		for ; dy != 0; dy-- {
			dst.Set(x1, y1, c)
			y1 += step
			if e -= 2 * dx; e < 0 {
				x1++
				e += slope
			}
		}
		dst.Set(x2, y2, c)
	}
}
