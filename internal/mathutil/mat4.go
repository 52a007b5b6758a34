package mathutil

// Mat4 is a row-major 4×4 matrix acting on column vectors.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Affine(Mat3Scale(1), Vec3{})
}

// Affine builds [L t; 0 1] from a linear part and a translation.
func Affine(l Mat3, t Vec3) Mat4 {
	return Mat4{
		l[0], l[1], l[2], t[0],
		l[3], l[4], l[5], t[1],
		l[6], l[7], l[8], t[2],
		0, 0, 0, 1,
	}
}

// Translate moves points by t.
func Translate(t Vec3) Mat4 {
	return Affine(Mat3Scale(1), t)
}

func (m Mat4) row(i int) Vec4 { return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]} }

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := range 4 {
		row := a.row(r)
		for c := range 4 {
			m[r*4+c] = row[0]*b[c] + row[1]*b[4+c] + row[2]*b[8+c] + row[3]*b[12+c]
		}
	}
	return m
}

// MulVec4 returns M × v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := range 4 {
		out[r] = m.row(r).Dot(v)
	}
	return out
}

// MulPoint transforms p with h = 1 and keeps the homogeneous result.
func (m Mat4) MulPoint(p Vec3) Vec4 {
	return m.MulVec4(p.Point())
}
