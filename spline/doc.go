/*
Package spline builds interpolating Catmull-Rom splines in 3D space and
samples them by curve parameter or by arc length.

A spline runs through every knot of a skeleton list of points. For a
closed spline of N knots, the curve parameter t ∈ [0,1) covers N cubic
segments, and knot i is met exactly at t = i/N. Knot intervals follow one
of three parametrizations:

	Uniform      equal intervals; tangents scaled by a tension (0.5 = classic)
	Chordal      intervals proportional to knot distance
	Centripetal  intervals proportional to the square root of knot distance

Centripetal is the default: it never forms cusps or self-intersections
within a segment, even for unevenly spaced knots.

Sampling by arc length uses a cumulative length table over a fixed number
of linear subdivisions, built once per spline:

	sp, err := spline.Build(knots, true, spline.Options{})
	L := sp.Length()
	pts := sp.SpacedPoints(255) // 256 points, equally spaced along the curve

A Spline is immutable; changing the knots means building a new one.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spline

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

var (
	// ErrTooFewKnots indicates knot count is insufficient for a spline.
	ErrTooFewKnots = errors.New("spline has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("spline has invalid knot coordinate")
	// ErrUnknownMode indicates an unknown parametrization mode name.
	ErrUnknownMode = errors.New("unknown parametrization mode")
)
