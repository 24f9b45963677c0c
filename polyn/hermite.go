package polyn

// Hermite creates the cubic polynomial P on [0,1] with
//
//	P(0) = x0, P(1) = x1, P'(0) = t0, P'(1) = t1 .
func Hermite(x0, x1, t0, t1 float64) Polynomial {
	p, _ := New(x0,
		X{1, t0},
		X{2, -3*x0 + 3*x1 - 2*t0 - t1},
		X{3, 2*x0 - 2*x1 + t0 + t1},
	)
	return p
}

// CatmullRom creates the cubic segment between x1 and x2 of a uniform
// Catmull-Rom spline through x0…x3. A tension of 0.5 yields the classic
// Catmull-Rom tangents (x2-x0)/2 and (x3-x1)/2.
func CatmullRom(x0, x1, x2, x3, tension float64) Polynomial {
	return Hermite(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

// NonuniformCatmullRom creates the cubic segment between x1 and x2 of a
// Catmull-Rom spline with knot intervals dt0, dt1, dt2 (as computed for
// chordal or centripetal parametrization). Tangents are re-scaled to the
// unit parameter interval of the middle segment.
//
// All intervals must be > 0.
func NonuniformCatmullRom(x0, x1, x2, x3, dt0, dt1, dt2 float64) Polynomial {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1
	tracer().Debugf("non-uniform tangents %.4g, %.4g for [%.4g, %.4g]", t1, t2, x1, x2)
	return Hermite(x1, x2, t1, t2)
}
