package pathflow

import (
	"fmt"
	"math"
)

// Vec3 is a point or a direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// V is a quick notation for constructing a vector from floats.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Null is the zero vector.
var Null = Vec3{}

// Unit axes.
var (
	XAxis = Vec3{X: 1}
	YAxis = Vec3{Y: 1}
	ZAxis = Vec3{Z: 1}
)

func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scaled returns v scaled by factor a.
func (v Vec3) Scaled(a float64) Vec3 {
	return Vec3{v.X * a, v.Y * a, v.Z * a}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot is the scalar product v⋅w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross is the vector product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Len is the euclidian length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Dist returns |v - w|.
func (v Vec3) Dist(w Vec3) float64 {
	return v.Sub(w).Len()
}

// DistSq returns |v - w|², avoiding the square root.
func (v Vec3) DistSq(w Vec3) float64 {
	d := v.Sub(w)
	return d.Dot(d)
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged; callers wanting to detect this should check IsNull first.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scaled(1 / l)
}

// IsNull is a predicate: is |v| = 0 (within ε)?
func (v Vec3) IsNull() bool {
	return Is0(v.Len())
}

// Lerp interpolates linearly between v (a=0) and w (a=1).
func (v Vec3) Lerp(w Vec3, a float64) Vec3 {
	return v.Add(w.Sub(v).Scaled(a))
}

// Equal compares two vectors within ε.
func (v Vec3) Equal(w Vec3) bool {
	return Is0(v.X-w.X) && Is0(v.Y-w.Y) && Is0(v.Z-w.Z)
}

// Near compares two vectors with an explicit tolerance.
func (v Vec3) Near(w Vec3, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol && math.Abs(v.Y-w.Y) <= tol && math.Abs(v.Z-w.Z) <= tol
}

// IsFinite is a predicate: are all components finite?
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Component returns the coordinate along axis a.
func (v Vec3) Component(a Axis) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

// Angle returns the unsigned angle between v and w, in radians.
func (v Vec3) Angle(w Vec3) float64 {
	return math.Atan2(v.Cross(w).Len(), v.Dot(w))
}

// Axis denotes one of the three coordinate axes.
type Axis int8

// Coordinate axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int8(a))
}

// Unit returns the unit vector of axis a.
func (a Axis) Unit() Vec3 {
	switch a {
	case AxisY:
		return YAxis
	case AxisZ:
		return ZAxis
	}
	return XAxis
}

// LeastAligned returns the coordinate axis with the smallest absolute
// component of v, i.e. the axis "most perpendicular" to v.
func LeastAligned(v Vec3) Axis {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	a, min := AxisX, ax
	if ay <= min {
		a, min = AxisY, ay
	}
	if az <= min {
		a = AxisZ
	}
	return a
}
