/*
Package frames computes moving frames (tangent, normal, binormal) along a
curve, sampled at equal arc length.

Normals are not derived from curvature, which is ill-defined on straight
stretches. Instead the first normal is seeded from the coordinate axis least
aligned with the first tangent, and every subsequent normal is propagated by
parallel transport: it is rotated by the minimal rotation carrying one
tangent onto the next. This yields rotation minimizing frames which never
flip.

On a closed curve the transported frame generally arrives at the seam
twisted against the seed frame. The twist angle is measured and spread
evenly over all samples, so that sample i is corrected by i/(n-1) of the
twist and the frame sequence closes without a visible seam.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package frames

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// ErrTooFewSamples indicates a sample count below 2.
var ErrTooFewSamples = errors.New("frames need at least 2 samples")

// Curve is what frames are computed for: anything able to report its unit
// tangent after a fraction u ∈ [0,1] of its arc length. A null tangent marks
// a spot without well-defined direction.
type Curve interface {
	TangentAt(u float64) pathflow.Vec3
}

// Frame is an orthonormal basis at a point of a curve.
type Frame struct {
	Tangent  pathflow.Vec3
	Normal   pathflow.Vec3
	Binormal pathflow.Vec3
}

// axesFrame is used if a curve has no usable tangent at all.
var axesFrame = Frame{Tangent: pathflow.XAxis, Normal: pathflow.YAxis, Binormal: pathflow.ZAxis}

// Set is an immutable sequence of frames at equally spaced samples.
type Set struct {
	frames []Frame
	closed bool
	twist  float64 // signed twist at the seam, before correction
}

// Compute returns n frames for curve c, sample i taken at u = i/(n-1).
// If closed is set, the seam twist is distributed over all frames.
func Compute(c Curve, n int, closed bool) (*Set, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSamples, n)
	}
	segments := float64(n - 1)
	tangents := make([]pathflow.Vec3, n)
	first := -1
	for i := range tangents {
		tangents[i] = c.TangentAt(float64(i) / segments)
		if first < 0 && usable(tangents[i]) {
			first = i
		}
	}
	set := &Set{frames: make([]Frame, n), closed: closed}
	if first < 0 {
		tracer().Errorf("curve has no usable tangent, falling back to coordinate axes")
		for i := range set.frames {
			set.frames[i] = axesFrame
		}
		return set, nil
	}
	set.frames[first] = seed(tangents[first].Normalized())
	for i := 0; i < first; i++ { // leading degenerate samples
		set.frames[i] = set.frames[first]
	}
	for i := first + 1; i < n; i++ {
		prev := set.frames[i-1]
		if !usable(tangents[i]) {
			tracer().Debugf("degenerate tangent at sample %d, reusing previous frame", i)
			set.frames[i] = prev
			continue
		}
		set.frames[i] = transport(prev, tangents[i].Normalized())
	}
	if closed {
		set.untwist()
	}
	return set, nil
}

// MustCompute is a helper which panics on errors.
func MustCompute(c Curve, n int, closed bool) *Set {
	set, err := Compute(c, n, closed)
	if err != nil {
		panic(err)
	}
	return set
}

func usable(t pathflow.Vec3) bool {
	return t.IsFinite() && !t.IsNull()
}

// seed creates the first frame, with a normal perpendicular to t and to the
// coordinate axis least aligned with t.
func seed(t pathflow.Vec3) Frame {
	axis := pathflow.LeastAligned(t).Unit()
	v := t.Cross(axis).Normalized()
	nrm := t.Cross(v)
	return Frame{Tangent: t, Normal: nrm, Binormal: t.Cross(nrm)}
}

// transport carries frame f over to a sample with tangent t, rotating it by
// the minimal rotation from f.Tangent to t.
func transport(f Frame, t pathflow.Vec3) Frame {
	nrm := f.Normal
	axis := f.Tangent.Cross(t)
	if axis.Len() > pathflow.Epsilon {
		theta := math.Atan2(axis.Len(), f.Tangent.Dot(t))
		nrm = pathflow.Rotation(axis, theta).TransformDir(nrm)
	}
	nrm = orthogonalize(nrm, t)
	if nrm.IsNull() { // tangent turned onto the old normal
		return seed(t)
	}
	return Frame{Tangent: t, Normal: nrm, Binormal: t.Cross(nrm)}
}

// orthogonalize removes the component of v along unit vector t and
// normalizes the remainder.
func orthogonalize(v, t pathflow.Vec3) pathflow.Vec3 {
	v = v.Sub(t.Scaled(t.Dot(v)))
	if v.IsNull() {
		return pathflow.Null
	}
	return v.Normalized()
}

// untwist measures the signed angle between the transported last normal and
// the seed normal, and rotates frame i back by i/(n-1) of it.
func (set *Set) untwist() {
	n := len(set.frames)
	f0, fl := set.frames[0], set.frames[n-1]
	set.twist = signedAngle(f0.Normal, fl.Normal, f0.Tangent)
	if set.twist == 0 {
		return
	}
	segments := float64(n - 1)
	for i := 1; i < n; i++ {
		f := set.frames[i]
		theta := -set.twist * float64(i) / segments
		nrm := pathflow.Rotation(f.Tangent, theta).TransformDir(f.Normal)
		nrm = orthogonalize(nrm, f.Tangent)
		set.frames[i] = Frame{Tangent: f.Tangent, Normal: nrm, Binormal: f.Tangent.Cross(nrm)}
	}
	tracer().Debugf("distributed seam twist of %.4g rad over %d frames", set.twist, n)
}

// signedAngle returns the angle from a to b, measured counter-clockwise
// around axis.
func signedAngle(a, b, axis pathflow.Vec3) float64 {
	return math.Atan2(axis.Dot(a.Cross(b)), a.Dot(b))
}

// Len returns the number of frames.
func (set *Set) Len() int {
	return len(set.frames)
}

// At returns frame i.
func (set *Set) At(i int) Frame {
	return set.frames[i]
}

// Frames returns a copy of all frames.
func (set *Set) Frames() []Frame {
	return append([]Frame(nil), set.frames...)
}

// IsCycle is a predicate: has the set been computed for a closed curve?
func (set *Set) IsCycle() bool {
	return set.closed
}

// Twist returns the signed seam twist which has been distributed over the
// frames of a closed curve (0 for open curves).
func (set *Set) Twist() float64 {
	return set.twist
}

// Residual returns the angle between the normals of the last and the first
// frame. For a closed curve, after correction, this is close to 0.
func (set *Set) Residual() float64 {
	n := len(set.frames)
	return set.frames[0].Normal.Angle(set.frames[n-1].Normal)
}
