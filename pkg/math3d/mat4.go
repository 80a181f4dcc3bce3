package math3d

import "math"

// Mat4 is a 4x4 matrix stored column-major: element (row r, column c)
// lives at index c*4+r, the same layout glLoadMatrix expects.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[c*4+r]
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale returns a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rotate returns a rotation of deg degrees about axis, counter-clockwise
// when looking down the axis toward the origin (glRotate semantics).
// A zero axis yields the identity.
func Rotate(deg float64, axis Vec3) Mat4 {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return Identity()
	}
	rad := DegToRad(deg)
	s, c := math.Sincos(rad)
	t := 1 - c
	x, y, z := n.X, n.Y, n.Z
	return Mat4{
		x*x*t + c, y*x*t + z*s, x*z*t - y*s, 0,
		x*y*t - z*s, y*y*t + c, y*z*t + x*s, 0,
		x*z*t + y*s, y*z*t - x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation about the X axis by rad radians.
func RotateX(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation about the Y axis by rad radians.
func RotateY(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation about the Z axis by rad radians.
func RotateZ(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a projection matching gluPerspective: fovy is the
// vertical field of view in degrees, near and far are positive distances.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(DegToRad(fovy)/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// Mul returns m * b. Applied to a point, b acts first.
func (m Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[r]*b[c*4] +
				m[4+r]*b[c*4+1] +
				m[8+r]*b[c*4+2] +
				m[12+r]*b[c*4+3]
		}
	}
	return out
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a point (W=1), ignoring the resulting W.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).Vec3()
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
