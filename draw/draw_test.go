package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/oled/pixel"
)

func testCount(i *pixel.MonoVerticalLSBImage) (n int) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if i.Pixel(x, y) {
				n++
			}
		}
	}
	return
}

func testExpectOn(t *testing.T, i *pixel.MonoVerticalLSBImage, on bool, points ...image.Point) {
	t.Helper()
	for _, p := range points {
		if v := i.Pixel(p.X, p.Y); v != on {
			t.Errorf("pixel %s is %t, expected %t", p, v, on)
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Point
		n    int
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), 1},
		{"horizontal", image.Pt(0, 2), image.Pt(9, 2), 10},
		{"horizontal reversed", image.Pt(9, 2), image.Pt(0, 2), 10},
		{"vertical", image.Pt(4, 7), image.Pt(4, 0), 8},
		{"diagonal down", image.Pt(0, 0), image.Pt(7, 7), 8},
		{"diagonal up", image.Pt(0, 7), image.Pt(7, 0), 8},
		{"shallow", image.Pt(0, 0), image.Pt(15, 3), 16},
		{"shallow up", image.Pt(0, 6), image.Pt(15, 1), 16},
		{"steep", image.Pt(1, 0), image.Pt(3, 15), 16},
		{"steep up", image.Pt(1, 15), image.Pt(4, 0), 16},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			i := pixel.NewMonoVerticalLSBImage(16, 16)
			Line(i, test.a, test.b, pixel.On)
			testExpectOn(it, i, true, test.a, test.b)
			if v := testCount(i); v != test.n {
				it.Errorf("expected %d pixels, got %d", test.n, v)
			}
		})
	}
}

func TestLineClipped(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(8, 8)
	Line(i, image.Pt(-4, 3), image.Pt(20, 3), pixel.On)
	if v := testCount(i); v != 8 {
		t.Errorf("expected 8 pixels, got %d", v)
	}
}

func TestRectangle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(16, 16)
	Rectangle(i, image.Rect(2, 3, 10, 8), pixel.On)
	testExpectOn(t, i, true, image.Pt(2, 3), image.Pt(9, 3), image.Pt(2, 7), image.Pt(9, 7), image.Pt(5, 3), image.Pt(2, 5))
	testExpectOn(t, i, false, image.Pt(3, 4), image.Pt(10, 3), image.Pt(2, 8), image.Pt(5, 5))
	if v := testCount(i); v != 2*8+2*3 {
		t.Errorf("expected %d pixels, got %d", 2*8+2*3, v)
	}
}

func TestBox(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(16, 16)
	Box(i, image.Rect(2, 3, 10, 8), pixel.On)
	if v := testCount(i); v != 8*5 {
		t.Errorf("expected %d pixels, got %d", 8*5, v)
	}
	testExpectOn(t, i, false, image.Pt(1, 3), image.Pt(10, 3), image.Pt(2, 2), image.Pt(2, 8))
}

func TestRoundedRectangle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	RoundedRectangle(i, image.Rect(0, 0, 20, 16), 4, pixel.On)
	testExpectOn(t, i, false, image.Pt(0, 0), image.Pt(19, 0), image.Pt(0, 15), image.Pt(19, 15), image.Pt(10, 8))
	testExpectOn(t, i, true, image.Pt(4, 0), image.Pt(15, 0), image.Pt(0, 8), image.Pt(19, 8), image.Pt(10, 15))
}

func TestRoundedBox(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	RoundedBox(i, image.Rect(0, 0, 20, 16), 4, pixel.On)
	testExpectOn(t, i, false, image.Pt(0, 0), image.Pt(19, 0), image.Pt(0, 15), image.Pt(19, 15), image.Pt(20, 8), image.Pt(10, 16))
	testExpectOn(t, i, true, image.Pt(10, 8), image.Pt(0, 8), image.Pt(19, 8), image.Pt(10, 0), image.Pt(10, 15), image.Pt(2, 2))

	// without radius it is a box
	j := pixel.NewMonoVerticalLSBImage(32, 32)
	RoundedBox(j, image.Rect(0, 0, 20, 16), 0, pixel.On)
	if v := testCount(j); v != 20*16 {
		t.Errorf("expected %d pixels, got %d", 20*16, v)
	}
}

func TestCircle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	Circle(i, image.Pt(16, 16), 10, pixel.On)
	testExpectOn(t, i, true, image.Pt(16, 6), image.Pt(16, 26), image.Pt(6, 16), image.Pt(26, 16))
	testExpectOn(t, i, false, image.Pt(16, 16), image.Pt(6, 6), image.Pt(26, 26))

	// symmetric in both axes
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if i.Pixel(x, y) != i.Pixel(32-x, y) || i.Pixel(x, y) != i.Pixel(x, 32-y) {
				t.Fatalf("circle is not symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestArc(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	Arc(i, image.Pt(16, 16), 10, 0, 90, pixel.On)
	testExpectOn(t, i, true, image.Pt(16, 26), image.Pt(26, 16))
	testExpectOn(t, i, false, image.Pt(16, 6), image.Pt(6, 16))

	j := pixel.NewMonoVerticalLSBImage(32, 32)
	Arc(j, image.Pt(16, 16), 10, 0, 360, pixel.On)
	testExpectOn(t, j, true, image.Pt(16, 6), image.Pt(16, 26), image.Pt(6, 16), image.Pt(26, 16))
}

func TestText(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(64, 16)
	end := Text(i, image.Pt(1, 1), nil, "HI", pixel.On)
	if end.X != 1+2*7 {
		t.Errorf("expected text to end at x=%d, got %d", 1+2*7, end.X)
	}
	if testCount(i) == 0 {
		t.Fatal("expected text to be drawn")
	}

	size := TextSize(nil, "HI")
	if size.X != 14 || size.Y != 13 {
		t.Errorf("expected text size 14x13, got %s", size)
	}
	b := image.Rectangle{Min: image.Pt(1, 1), Max: image.Pt(1, 1).Add(size)}
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			if i.Pixel(x, y) && !image.Pt(x, y).In(b) {
				t.Fatalf("pixel (%d,%d) is outside of the text bounds %s", x, y, b)
			}
		}
	}
}

func TestScaled(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}

	i := pixel.NewGray4Image(16, 16)
	Scaled(i, image.Rect(4, 4, 12, 12), src)
	if v := i.Gray(8, 8); v != 0xf {
		t.Errorf("expected scaled pixel to be white, got %#x", v)
	}
	if v := i.Gray(0, 0); v != 0 {
		t.Errorf("expected pixel outside of the target to be black, got %#x", v)
	}

	j := pixel.NewMonoVerticalLSBImage(16, 16)
	Nearest(j, j.Bounds(), src)
	if v := testCount(j); v != 16*16 {
		t.Errorf("expected all %d pixels on, got %d", 16*16, v)
	}
}
