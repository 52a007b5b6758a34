// Package raycast renders spheres and triangles by casting one orthographic
// ray per pixel.
package raycast

import (
	"mesh-rasterizer/internal/mathutil"
)

// Ray is a half-line Origin + t·Dir.
type Ray struct {
	Origin mathutil.Vec3
	Dir    mathutil.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// OrthoOrigins returns one ray origin per pixel on the camera plane, rows
// bottom to top and columns left to right. The plane spans [-right,right]
// along U and [-top,top] along V, with origins at pixel centers.
func OrthoOrigins(b mathutil.CameraBasis, right, top float64, nx, ny int) []mathutil.Vec3 {
	l, bot := -right, -top
	pxw := (right - l) / float64(nx)
	pxh := (top - bot) / float64(ny)

	origins := make([]mathutil.Vec3, 0, nx*ny)
	for j := 0; j < ny; j++ {
		v := bot + (float64(j)+0.5)*pxh
		for i := 0; i < nx; i++ {
			u := l + (float64(i)+0.5)*pxw
			origins = append(origins, b.E.Add(b.U.Scale(u)).Add(b.V.Scale(v)))
		}
	}
	return origins
}
