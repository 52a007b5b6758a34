package mesh

import "mesh-rasterizer/internal/mathutil"

// Transform places a mesh in the world: scale, then rotate (XYZ Euler in
// degrees), then translate.
type Transform struct {
	RotateDeg mathutil.Vec3 `json:"rotate_deg"`
	Scale     float64       `json:"scale"` // 0 means 1
	Translate mathutil.Vec3 `json:"translate"`
}

// IsIdentity reports whether applying t would change nothing.
func (t Transform) IsIdentity() bool {
	return t.RotateDeg == (mathutil.Vec3{}) && (t.Scale == 0 || t.Scale == 1) && t.Translate == (mathutil.Vec3{})
}

// Apply transforms positions and normals in place.
func (m *Mesh) Apply(t Transform) {
	if t.IsIdentity() {
		return
	}
	s := t.Scale
	if s == 0 {
		s = 1
	}
	r := mathutil.EulerXYZ(t.RotateDeg)
	aff := mathutil.Affine(mathutil.Mat3Mul(r, mathutil.Mat3Scale(s)), t.Translate)

	for i, v := range m.Verts {
		m.Verts[i] = aff.MulPoint(v).XYZ()
	}
	// Uniform scale keeps normals parallel, so rotation alone suffices.
	for i, n := range m.Normals {
		m.Normals[i] = r.MulVec3(n).Normalize()
	}
}
