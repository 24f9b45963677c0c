/*
Package mesh maps a rigid mesh onto the portion of a path it occupies.

The extent of a transformed mesh along its dominant local axis yields two
scalars, offset = -min and length = max - min, which map a vertex
coordinate x to a normalized position

	u(x) = (x + offset) / length

along the mesh's share of the path. The share itself, pathSegment, is the
mesh length divided by the total length of the path.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/polygon"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

var (
	// ErrNoVertices indicates a mesh without vertices.
	ErrNoVertices = errors.New("mesh has no vertices")
	// ErrZeroLengthPath indicates a path of length 0 (or less, or non-finite).
	ErrZeroLengthPath = errors.New("path has no usable length")
)

// Transform is the model transform applied to a mesh before measuring it:
// uniform scale, Euler rotation (x-y-z, in multiples of π), translation.
type Transform struct {
	Scale     float64       `yaml:"scale" toml:"scale"`
	Rotation  pathflow.Vec3 `yaml:"rotation" toml:"rotation"`
	Translate pathflow.Vec3 `yaml:"translate" toml:"translate"`
}

// Matrix returns the affine transform: scale, then rotate, then translate.
// A scale of 0 is treated as 1.
func (xf Transform) Matrix() pathflow.AT {
	s := xf.Scale
	if s == 0 {
		s = 1
	}
	r := xf.Rotation.Scaled(math.Pi)
	return pathflow.Compose(xf.Translate, pathflow.EulerXYZ(r.X, r.Y, r.Z), pathflow.V(s, s, s))
}

// Mapping holds the mesh-space mapping parameters.
type Mapping struct {
	Axis   pathflow.Axis
	Offset float64 // -min along Axis
	Length float64 // max - min along Axis
}

// U maps a vertex coordinate along the mapping axis to its normalized
// position on the mesh's portion of the path. For a mesh without extent
// U is 0.
func (m Mapping) U(x float64) float64 {
	if m.Length == 0 {
		return 0
	}
	return (x + m.Offset) / m.Length
}

func transformAll(vertices []pathflow.Vec3, xf pathflow.AT) []pathflow.Vec3 {
	out := make([]pathflow.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = xf.Transform(v)
	}
	return out
}

// DominantAxis returns the axis along which the transformed mesh has the
// largest extent. Ties go to the lower axis (x before y before z).
func DominantAxis(vertices []pathflow.Vec3, xf pathflow.AT) (pathflow.Axis, error) {
	if len(vertices) == 0 {
		return pathflow.AxisX, ErrNoVertices
	}
	vs := transformAll(vertices, xf)
	best, bestExtent := pathflow.AxisX, -1.0
	for _, a := range []pathflow.Axis{pathflow.AxisX, pathflow.AxisY, pathflow.AxisZ} {
		lo, hi := extent(vs, a)
		if hi-lo > bestExtent {
			best, bestExtent = a, hi-lo
		}
	}
	return best, nil
}

// extent projects vertices onto the plane spanned by axis a and its
// successor, and reads the range along a off the projection's bounding box.
// The projected vertices are an unordered point cloud, not a polygon
// outline; only the contour's bounding box is used.
func extent(vs []pathflow.Vec3, a pathflow.Axis) (float64, float64) {
	b := (a + 1) % 3
	pairs := make([]pathflow.Pair, len(vs))
	for i, v := range vs {
		pairs[i] = pathflow.P(v.Component(a), v.Component(b))
	}
	lo, hi := polygon.FromPairs(pairs).BoundingBox()
	return lo.X(), hi.X()
}

// Bounds measures the transformed mesh along axis and returns the mapping
// parameters.
func Bounds(vertices []pathflow.Vec3, xf pathflow.AT, axis pathflow.Axis) (Mapping, error) {
	if len(vertices) == 0 {
		return Mapping{Axis: axis}, ErrNoVertices
	}
	lo, hi := extent(transformAll(vertices, xf), axis)
	m := Mapping{Axis: axis, Offset: -lo, Length: hi - lo}
	tracer().Debugf("mesh bounds along %s: [%.4g, %.4g]", axis, lo, hi)
	return m, nil
}

// PathSegment returns the share of a path of length pathLength that a mesh
// of the given length spans. Meshes longer than the path are clamped to a
// share of 1; the second return value reports whether clamping happened.
func PathSegment(length, pathLength float64) (float64, bool, error) {
	if !(pathLength > 0) || math.IsInf(pathLength, 0) {
		return 0, false, fmt.Errorf("%w: %g", ErrZeroLengthPath, pathLength)
	}
	seg := length / pathLength
	if seg > 1 {
		tracer().Infof("mesh length %.4g exceeds path length %.4g, clamping segment to 1", length, pathLength)
		return 1, true, nil
	}
	return seg, false, nil
}
