package pathflow

import (
	"fmt"
	"math"
)

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 4x4 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 16)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*4+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*4+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*4 : (row+1)*4]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 4)
	for r := 0; r < 4; r++ {
		c[r] = m[r*4+col]
	}
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	for i := 0; i < 4; i++ {
		m.set(i, i, 1.0)
	}
	return m
}

// Translation transform. Translate a point by v.
func Translation(v Vec3) AT {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// Scaling transform. Scale a point by s along every axis.
func Scaling(s Vec3) AT {
	m := newAT()
	m.set(0, 0, s.X)
	m.set(1, 1, s.Y)
	m.set(2, 2, s.Z)
	m.set(3, 3, 1.0)
	return m
}

// RotationX transform. Rotate a point counter-clockwise around the x-axis.
// Argument is in radians.
func RotationX(theta float64) AT {
	m := Identity()
	sin, cos := math.Sincos(theta)
	m.set(1, 1, cos)
	m.set(1, 2, -sin)
	m.set(2, 1, sin)
	m.set(2, 2, cos)
	return m
}

// RotationY transform. Rotate a point counter-clockwise around the y-axis.
// Argument is in radians.
func RotationY(theta float64) AT {
	m := Identity()
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 2, sin)
	m.set(2, 0, -sin)
	m.set(2, 2, cos)
	return m
}

// RotationZ transform. Rotate a point counter-clockwise around the z-axis.
// Argument is in radians.
func RotationZ(theta float64) AT {
	m := Identity()
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	return m
}

// Rotation transform around an arbitrary axis through the origin.
// The axis need not be normalized. Argument theta is in radians.
func Rotation(axis Vec3, theta float64) AT {
	a := axis.Normalized()
	sin, cos := math.Sincos(theta)
	t := 1 - cos
	x, y, z := a.X, a.Y, a.Z
	m := Identity()
	m.set(0, 0, t*x*x+cos)
	m.set(0, 1, t*x*y-sin*z)
	m.set(0, 2, t*x*z+sin*y)
	m.set(1, 0, t*x*y+sin*z)
	m.set(1, 1, t*y*y+cos)
	m.set(1, 2, t*y*z-sin*x)
	m.set(2, 0, t*x*z-sin*y)
	m.set(2, 1, t*y*z+sin*x)
	m.set(2, 2, t*z*z+cos)
	return m
}

// EulerXYZ is a rotation by Euler angles, applied in intrinsic x-y-z order.
// Arguments are in radians.
func EulerXYZ(rx, ry, rz float64) AT {
	return RotationZ(rz).Combine(RotationY(ry)).Combine(RotationX(rx))
}

// Compose creates a model transform: scale first, then rotate, then translate.
func Compose(translate Vec3, rotate AT, scale Vec3) AT {
	return Scaling(scale).Combine(rotate).Combine(Translation(translate))
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := "["
	for r := 0; r < 4; r++ {
		if r > 0 {
			s += "|"
		}
		s += fmt.Sprintf("%g,%g,%g,%g", m.get(r, 0), m.get(r, 1), m.get(r, 2), m.get(r, 3))
	}
	return s + "]"
}

// v1 × v2, v.n = [a,b,c,d]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2] + vec1[3]*vec2[3]
}

// Combine 2 affine transformation to a new one. The resulting transform
// applies m first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 4)
	for r := 0; r < 4; r++ {
		c[r] = dotProd(m.row(r), v)
	}
	return c
}

// Transform a 3D-point. The argument is unchanged and a new vector is returned.
func (m AT) Transform(p Vec3) Vec3 {
	c := m.multiplyVector([]float64{p.X, p.Y, p.Z, 1.0})
	return Vec3{c[0], c[1], c[2]}
}

// TransformDir transforms a direction, i.e. ignores the translational part.
func (m AT) TransformDir(d Vec3) Vec3 {
	c := m.multiplyVector([]float64{d.X, d.Y, d.Z, 0.0})
	return Vec3{c[0], c[1], c[2]}
}
