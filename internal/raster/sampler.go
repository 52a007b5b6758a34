package raster

import (
	"image/color"

	"mesh-rasterizer/internal/texture"
)

// SampleNearest returns the texel nearest to (u, v). Coordinates are clamped
// to [0,1]; (0,0) is the first stored texel.
func SampleNearest(tex *texture.Texture, u, v float64) color.RGBA {
	u = clampUnit(u)
	v = clampUnit(v)

	x := int(u * float64(tex.Width))
	y := int(v * float64(tex.Height))
	if x > tex.Width-1 {
		x = tex.Width - 1
	}
	if y > tex.Height-1 {
		y = tex.Height - 1
	}
	return tex.At(x, y)
}

func clampUnit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
