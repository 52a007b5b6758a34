package mathutil

import "math"

// RotX, RotY and RotZ rotate counter-clockwise about a world axis when
// looking down it toward the origin. Angles are in radians.
func RotX(a float64) Mat3 { return axisRotation(0, a) }
func RotY(a float64) Mat3 { return axisRotation(1, a) }
func RotZ(a float64) Mat3 { return axisRotation(2, a) }

// axisRotation fills the plane orthogonal to the given axis.
func axisRotation(axis int, a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	// i→j is the positive turn for the axis (y→z for x, z→x for y, x→y for z).
	i, j := (axis+1)%3, (axis+2)%3
	var m Mat3
	m[axis*3+axis] = 1
	m[i*3+i], m[i*3+j] = c, -s
	m[j*3+i], m[j*3+j] = s, c
	return m
}

// EulerXYZ rotates about X, then Y, then Z. Angles are in degrees.
func EulerXYZ(deg Vec3) Mat3 {
	rad := deg.Scale(math.Pi / 180)
	return Mat3Mul(RotZ(rad[2]), Mat3Mul(RotY(rad[1]), RotX(rad[0])))
}
