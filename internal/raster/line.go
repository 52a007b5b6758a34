package raster

import (
	"image"
	"image/color"
	"math"

	"mesh-rasterizer/internal/mathutil"
)

// lineClip reports whether a line pixel may be written. Lines use a strict
// test on every side, so row 0 and column 0 are never drawn by lines.
func (s *Surface) lineClip(x, y int) bool {
	return x > 0 && x < s.Width && y > 0 && y < s.Height
}

func (s *Surface) plotLine(x, y int, c color.RGBA) {
	if s.lineClip(x, y) {
		s.Set(x, y, c)
	}
}

// DrawLine draws a single-color segment from a to b, both endpoints
// included. Pixels failing the line clip test are silently skipped.
func DrawLine(s *Surface, c color.RGBA, a, b image.Point) {
	dy := b.Y - a.Y
	dx := b.X - a.X

	switch {
	case dx == 0 && dy == 0:
		s.plotLine(a.X, a.Y, c)
	case dx == 0:
		drawVertical(s, c, a.X, a.Y, b.Y)
	case dy == 0:
		drawHorizontal(s, c, a.Y, a.X, b.X)
	default:
		slope := float64(dy) / float64(dx)
		if slope >= -1 && slope <= 1 {
			drawShallow(s, c, a, b)
		} else {
			drawSteep(s, c, a, b)
		}
	}
}

// maxLineCoord bounds projected endpoints so they convert to int without
// overflow and the midpoint products stay finite.
const maxLineCoord = math.MaxInt32

// DrawLineH divides both homogeneous endpoints by h, rounds to the nearest
// pixel and draws the segment. The line is dropped when an endpoint has
// h == 0 or projects to a non-finite or out-of-range coordinate.
func DrawLineH(s *Surface, c color.RGBA, a, b mathutil.Vec4) {
	pa, ok := projectLinePoint(a)
	if !ok {
		return
	}
	pb, ok := projectLinePoint(b)
	if !ok {
		return
	}
	DrawLine(s, c, pa, pb)
}

func projectLinePoint(v mathutil.Vec4) (image.Point, bool) {
	if v.H() == 0 {
		return image.Point{}, false
	}
	p := v.Project()
	x, y := math.Round(p[0]), math.Round(p[1])
	// NaN fails both comparisons.
	if !(math.Abs(x) <= maxLineCoord && math.Abs(y) <= maxLineCoord) {
		return image.Point{}, false
	}
	return image.Pt(int(x), int(y)), true
}

func drawVertical(s *Surface, c color.RGBA, x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	y0 = max(y0, 0)
	y1 = min(y1, s.Height-1)
	for y := y0; y <= y1; y++ {
		s.plotLine(x, y, c)
	}
}

func drawHorizontal(s *Surface, c color.RGBA, y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, s.Width-1)
	for x := x0; x < x1+1; x++ {
		s.plotLine(x, y, c)
	}
}

// lineCoef returns A, B, C with A·x + B·y + C = 0 through both points.
func lineCoef(a, b image.Point) (float64, float64, float64) {
	ax, ay, bx, by := float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)
	return ay - by, bx - ax, ax*by - bx*ay
}

// drawShallow steps x and decides y with a midpoint test at (x+1, y±½).
func drawShallow(s *Surface, c color.RGBA, a, b image.Point) {
	if a.X > b.X {
		a, b = b, a
	}
	A, B, C := lineCoef(a, b)

	s.plotLine(b.X, b.Y, c)

	up := b.Y > a.Y
	yInc, mp := -1, -0.5
	if up {
		yInc, mp = 1, 0.5
	}

	// Nothing left of column 0 or right of the surface is visible, so the
	// walk starts at the first on-surface column with the y the midpoint
	// steps would have reached there.
	x, y := a.X, a.Y
	if x < 0 {
		x = 0
		ly := -(A*float64(x) + C) / B
		if up {
			y = int(math.Ceil(ly - 0.5))
		} else {
			y = int(math.Floor(ly + 0.5))
		}
	}
	end := min(b.X, s.Width)
	for x < end {
		s.plotLine(x, y, c)
		f := A*float64(x+1) + B*(float64(y)+mp) + C
		if (up && f < 0) || (!up && f > 0) {
			y += yInc
		}
		x++
	}
}

// drawSteep steps y and decides x with a midpoint test at (x±½, y+1).
func drawSteep(s *Surface, c color.RGBA, a, b image.Point) {
	if a.Y > b.Y {
		a, b = b, a
	}
	A, B, C := lineCoef(a, b)

	s.plotLine(b.X, b.Y, c)

	up := b.X > a.X
	xInc, mp := -1, -0.5
	if up {
		xInc, mp = 1, 0.5
	}

	x, y := a.X, a.Y
	if y < 0 {
		y = 0
		lx := -(B*float64(y) + C) / A
		if up {
			x = int(math.Ceil(lx - 0.5))
		} else {
			x = int(math.Floor(lx + 0.5))
		}
	}
	end := min(b.Y, s.Height)
	for y < end {
		s.plotLine(x, y, c)
		f := A*(float64(x)+mp) + B*float64(y+1) + C
		if (up && f > 0) || (!up && f < 0) {
			x += xInc
		}
		y++
	}
}
