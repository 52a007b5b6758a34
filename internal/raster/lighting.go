package raster

import (
	"math"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/rgb"
)

// Light is a point light in world space.
type Light struct {
	Pos   mathutil.Vec3 `json:"pos"`
	Color rgb.RGB       `json:"color"`
}

// DefaultLight is a grey point light high on the +x side of the scene.
func DefaultLight() Light {
	return Light{
		Pos:   mathutil.Vec3{4.07625, 1.00545, 5.90386},
		Color: rgb.Grey(0.8),
	}
}

// Lambert sums max(0, n·l)·color over lights for a surface point p with
// unit normal n.
func Lambert(lights []Light, p, n mathutil.Vec3) rgb.RGB {
	var out rgb.RGB
	for _, l := range lights {
		dir := l.Pos.Sub(p).Normalize()
		k := math.Max(0, n.Dot(dir))
		out = out.Add(l.Color.Scale(k))
	}
	return out
}
