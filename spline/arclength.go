package spline

import (
	"sort"

	"github.com/npillmayer/pathflow"
)

// measure builds the cumulative arc length table from d linear subdivisions.
func (sp *Spline) measure(d int) {
	sp.arcLengths = make([]float64, d+1)
	prev := sp.Point(0)
	sum := 0.0
	for j := 1; j <= d; j++ {
		pt := sp.Point(float64(j) / float64(d))
		sum += pt.Dist(prev)
		sp.arcLengths[j] = sum
		prev = pt
	}
}

// Length returns the total arc length of the curve, as summed over the linear
// subdivisions of the arc length table.
func (sp *Spline) Length() float64 {
	return sp.arcLengths[len(sp.arcLengths)-1]
}

// Divisions returns the number of linear subdivisions used for arc length.
func (sp *Spline) Divisions() int {
	return len(sp.arcLengths) - 1
}

// ArcLengths returns a copy of the cumulative arc length table.
func (sp *Spline) ArcLengths() []float64 {
	return append([]float64(nil), sp.arcLengths...)
}

// ParamAt inverts the arc length table: it returns the curve parameter t at
// which the curve has covered the fraction u ∈ [0,1] of its total length.
// Between table entries the parameter is interpolated linearly.
func (sp *Spline) ParamAt(u float64) float64 {
	u = pathflow.Clamp(u, 0, 1)
	d := sp.Divisions()
	total := sp.Length()
	if total <= 0 {
		return u
	}
	target := u * total
	i := sort.SearchFloat64s(sp.arcLengths, target) // first index with length >= target
	if i < len(sp.arcLengths) && sp.arcLengths[i] == target {
		return float64(i) / float64(d)
	}
	i--
	if i >= d {
		return 1.0
	}
	before, after := sp.arcLengths[i], sp.arcLengths[i+1]
	frac := 0.0
	if after > before {
		frac = (target - before) / (after - before)
	}
	return (float64(i) + frac) / float64(d)
}

// PointAt returns the position after the fraction u of the total arc length.
func (sp *Spline) PointAt(u float64) pathflow.Vec3 {
	return sp.Point(sp.ParamAt(u))
}

// TangentAt returns the unit tangent after the fraction u of the total arc length.
func (sp *Spline) TangentAt(u float64) pathflow.Vec3 {
	return sp.Tangent(sp.ParamAt(u))
}

// SpacedPoints returns n+1 points at equal arc length spacing, from u = 0
// to u = 1. For closed splines the first and the last point coincide.
func (sp *Spline) SpacedPoints(n int) []pathflow.Vec3 {
	if n < 1 {
		n = 1
	}
	pts := make([]pathflow.Vec3, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = sp.PointAt(float64(i) / float64(n))
	}
	return pts
}

// Points returns n+1 points at equal parameter spacing. Spacing in physical
// distance depends on knot density; use SpacedPoints for uniform sampling.
func (sp *Spline) Points(n int) []pathflow.Vec3 {
	if n < 1 {
		n = 1
	}
	pts := make([]pathflow.Vec3, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = sp.Point(float64(i) / float64(n))
	}
	return pts
}
