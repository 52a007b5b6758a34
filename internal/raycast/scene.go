package raycast

import (
	"image/color"
	"time"

	"mesh-rasterizer/internal/logging"
	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/raster"
	"mesh-rasterizer/internal/rgb"
)

const (
	// MaxT bounds the ray parameter.
	MaxT = 1000000.0
	// AmbientScale is the fraction of the surface color added as ambient.
	AmbientScale = 0.25
	// planeTop is the half-height of the orthographic camera plane.
	planeTop = 2.0
)

// Scene is a ray-cast scene seen from Eye toward the origin.
type Scene struct {
	Eye          mathutil.Vec3
	Shapes       []Shape
	Lights       []raster.Light
	Background   color.RGBA
	AmbientScale float64
}

// DefaultScene is a red unit sphere at the origin lit by one grey light.
func DefaultScene() Scene {
	return Scene{
		Eye: mathutil.Vec3{0, -2, 0},
		Shapes: []Shape{
			Sphere{Radius: 1, Color: rgb.RGB{1, 0, 0}},
		},
		Lights: []raster.Light{
			{Pos: mathutil.Vec3{-1, -0.4, 1}, Color: rgb.Grey(0.8)},
		},
		Background:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		AmbientScale: AmbientScale,
	}
}

// Shade returns the lit color of a hit: (Σ lambert + ambient) · surface.
func (sc *Scene) Shade(h Hit) rgb.RGB {
	ambient := h.Color.Scale(sc.AmbientScale)
	return raster.Lambert(sc.Lights, h.Point, h.Normal).Add(ambient).Mul(h.Color)
}

// Render casts one ray per pixel into a new w×h surface. Row 0 is the
// bottom of the camera plane.
func Render(sc *Scene, w, h int) *raster.Surface {
	start := time.Now()
	s := raster.NewSurface(w, h)

	basis := mathutil.NewCameraBasis(sc.Eye)
	dir := basis.W.Neg()
	right := planeTop * float64(w) / float64(h)
	origins := OrthoOrigins(basis, right, planeTop, w, h)

	hits := 0
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			r := Ray{Origin: origins[j*w+i], Dir: dir}
			c := sc.Background
			if hit, ok := Nearest(sc.Shapes, r, 0, MaxT); ok {
				c = sc.Shade(hit).Bytes(1)
				s.SetDepth(i, j, -hit.T)
				hits++
			}
			s.Set(i, j, c)
		}
	}

	logging.Logger().Debug("raycast done",
		"pkg", "raycast", "width", w, "height", h,
		"hits", hits, "elapsed", time.Since(start))
	return s
}
