package raster

import (
	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/rgb"
)

// ShadedVertex is the vertex stage output for one triangle corner.
type ShadedVertex struct {
	Coord mathutil.Vec4 // screen position before the homogeneous divide
	Z     float64       // camera-space depth, larger is nearer
	Light rgb.RGB       // summed Lambert irradiance
	U, V  float64
	H     float64 // homogeneous divisor, Coord[3]
}

// ShadeVertex transforms a world-space vertex and evaluates its lighting.
// The normal is normalized here; a zero normal receives no diffuse light.
func ShadeVertex(combined, camera mathutil.Mat4, lights []Light, pos, normal mathutil.Vec3, uv [2]float64) ShadedVertex {
	coord := combined.MulPoint(pos)
	return ShadedVertex{
		Coord: coord,
		Z:     camera.MulPoint(pos)[2],
		Light: Lambert(lights, pos, normal.Normalize()),
		U:     uv[0],
		V:     uv[1],
		H:     coord.H(),
	}
}
