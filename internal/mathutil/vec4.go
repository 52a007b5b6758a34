package mathutil

// Vec4 is a homogeneous point (x, y, z, h).
type Vec4 [4]float64

// H returns the homogeneous component.
func (v Vec4) H() float64 { return v[3] }

// Project divides x, y and z by h. The caller guarantees h != 0.
func (v Vec4) Project() Vec3 {
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

// XYZ drops the homogeneous component without dividing.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

func (a Vec4) Dot(b Vec4) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}
