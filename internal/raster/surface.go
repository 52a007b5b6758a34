package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// FarDepth clears the depth buffer. Larger depth is nearer the camera, so
// this sentinel loses to any real fragment.
const FarDepth = -1000000.0

// Surface holds the rendering target as flat slices for cache locality.
// Row 0 is the bottom of the picture because the viewport maps +y upward.
// A Surface has a single writer; it is not safe for concurrent draws.
type Surface struct {
	Width  int
	Height int
	Color  []uint8   // RGB interleaved, len = W*H*3
	Depth  []float64 // per pixel, len = W*H
}

// MaxSurfacePixels bounds the area CheckSize accepts.
const MaxSurfacePixels = 1 << 28

// ErrSurfaceSize reports dimensions NewSurface cannot allocate.
var ErrSurfaceSize = errors.New("raster: invalid surface size")

// CheckSize validates dimensions taken from flags or config before they
// reach NewSurface.
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 || int64(w)*int64(h) > MaxSurfacePixels {
		return fmt.Errorf("%w: %dx%d", ErrSurfaceSize, w, h)
	}
	return nil
}

// NewSurface allocates a black surface with a cleared depth buffer. The
// dimensions must be positive; see CheckSize.
func NewSurface(w, h int) *Surface {
	n := w * h
	s := &Surface{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*3),
		Depth:  make([]float64, n),
	}
	for i := range s.Depth {
		s.Depth[i] = FarDepth
	}
	return s
}

// Size returns the pixel count.
func (s *Surface) Size() int {
	return s.Width * s.Height
}

// InBounds reports whether (x, y) addresses a pixel.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// Reset fills the color buffer with bg and the depth buffer with FarDepth.
func (s *Surface) Reset(bg color.RGBA) {
	for i := 0; i < len(s.Color); i += 3 {
		s.Color[i] = bg.R
		s.Color[i+1] = bg.G
		s.Color[i+2] = bg.B
	}
	for i := range s.Depth {
		s.Depth[i] = FarDepth
	}
}

// Set writes a pixel. Out-of-range writes are rejected and return false.
func (s *Surface) Set(x, y int, c color.RGBA) bool {
	if !s.InBounds(x, y) {
		return false
	}
	i := (y*s.Width + x) * 3
	s.Color[i] = c.R
	s.Color[i+1] = c.G
	s.Color[i+2] = c.B
	return true
}

// At returns the pixel color, or transparent black out of range.
func (s *Surface) At(x, y int) color.RGBA {
	if !s.InBounds(x, y) {
		return color.RGBA{}
	}
	i := (y*s.Width + x) * 3
	return color.RGBA{R: s.Color[i], G: s.Color[i+1], B: s.Color[i+2], A: 255}
}

// DepthAt returns the stored depth, or FarDepth out of range.
func (s *Surface) DepthAt(x, y int) float64 {
	if !s.InBounds(x, y) {
		return FarDepth
	}
	return s.Depth[y*s.Width+x]
}

// SetDepth stores a depth value. Out-of-range writes are rejected.
func (s *Surface) SetDepth(x, y int, z float64) bool {
	if !s.InBounds(x, y) {
		return false
	}
	s.Depth[y*s.Width+x] = z
	return true
}

// Image returns an opaque top-down copy of the color buffer.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		src := s.Color[(s.Height-1-y)*s.Width*3:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < s.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}
