package mathutil

// Mat3 is a row-major 3×3 matrix.
type Mat3 [9]float64

// Mat3Cols builds a matrix whose columns are a, b and c.
func Mat3Cols(a, b, c Vec3) Mat3 {
	return Mat3{
		a[0], b[0], c[0],
		a[1], b[1], c[1],
		a[2], b[2], c[2],
	}
}

// Mat3Scale is the uniform scale by s.
func Mat3Scale(s float64) Mat3 {
	return Mat3{s, 0, 0, 0, s, 0, 0, 0, s}
}

func (m Mat3) Row(i int) Vec3 { return Vec3{m[i*3], m[i*3+1], m[i*3+2]} }
func (m Mat3) Col(i int) Vec3 { return Vec3{m[i], m[3+i], m[6+i]} }

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := range 3 {
		row := a.Row(r)
		for c := range 3 {
			m[r*3+c] = row.Dot(b.Col(c))
		}
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Det is the scalar triple product of the columns.
func (m Mat3) Det() float64 {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}
