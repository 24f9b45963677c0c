package spline

import (
	"fmt"
	"math"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/polyn"
)

// Defaults for building splines.
const (
	DefaultTension      = 0.5
	DefaultArcDivisions = 1024
	MinArcDivisions     = 200
	MinClosedKnots      = 4
)

// knot intervals below this are considered coincident
const minInterval = 1e-4

// Options configures the construction of a spline. The zero value is a
// centripetal spline with default arc length density.
type Options struct {
	Mode         Mode    // parametrization
	Tension      float64 // tangent scale for Uniform mode; 0 means DefaultTension
	ArcDivisions int     // linear subdivisions for arc length; 0 means DefaultArcDivisions
}

func (o Options) tension() float64 {
	if o.Tension == 0 {
		return DefaultTension
	}
	return o.Tension
}

func (o Options) divisions() int {
	switch {
	case o.ArcDivisions == 0:
		return DefaultArcDivisions
	case o.ArcDivisions < MinArcDivisions:
		tracer().Infof("arc divisions %d raised to minimum of %d", o.ArcDivisions, MinArcDivisions)
		return MinArcDivisions
	}
	return o.ArcDivisions
}

// Spline is an interpolating Catmull-Rom spline through a list of knots.
// It is immutable after Build.
type Spline struct {
	knots      []pathflow.Vec3 // copy of the skeleton
	closed     bool
	mode       Mode
	segments   []segment
	arcLengths []float64 // cumulative, arcLengths[0] = 0
}

// A cubic segment between two consecutive knots, one polynomial per axis,
// together with its derivatives.
type segment struct {
	x, y, z    polyn.Polynomial
	dx, dy, dz polyn.Polynomial
}

func (seg segment) at(w float64) pathflow.Vec3 {
	return pathflow.V(seg.x.Eval(w), seg.y.Eval(w), seg.z.Eval(w))
}

func (seg segment) derivative(w float64) pathflow.Vec3 {
	return pathflow.V(seg.dx.Eval(w), seg.dy.Eval(w), seg.dz.Eval(w))
}

// Build constructs a spline through the given knots. The knot list is
// copied; later changes to it do not affect the spline.
//
// Closed splines need at least 4 knots, open ones at least 2. Knots must have
// finite coordinates. Coincident consecutive knots are allowed.
func Build(knots []pathflow.Vec3, closed bool, opts Options) (*Spline, error) {
	n := len(knots)
	if closed && n < MinClosedKnots {
		return nil, fmt.Errorf("%w: cycle needs at least %d knots, got %d", ErrTooFewKnots, MinClosedKnots, n)
	} else if n < 2 {
		return nil, fmt.Errorf("%w: open spline needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, k := range knots {
		if !k.IsFinite() {
			return nil, fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	sp := &Spline{
		knots:  append([]pathflow.Vec3(nil), knots...),
		closed: closed,
		mode:   opts.Mode,
	}
	segcnt := n - 1
	if closed {
		segcnt = n
	}
	sp.segments = make([]segment, segcnt)
	for i := 0; i < segcnt; i++ {
		p0, p1, p2, p3 := sp.neighbours(i)
		sp.segments[i] = makeSegment(p0, p1, p2, p3, opts)
	}
	sp.measure(opts.divisions())
	tracer().Debugf("built %s spline with %d knots, length %.4g", sp.mode, n, sp.Length())
	return sp, nil
}

// MustBuild is a helper which panics on validation errors.
func MustBuild(knots []pathflow.Vec3, closed bool, opts Options) *Spline {
	sp, err := Build(knots, closed, opts)
	if err != nil {
		panic(err)
	}
	return sp
}

// neighbours returns the four knots controlling segment i. For open splines,
// missing knots beyond the ends are extrapolated by reflection.
func (sp *Spline) neighbours(i int) (p0, p1, p2, p3 pathflow.Vec3) {
	n := len(sp.knots)
	if sp.closed {
		return sp.Z(i - 1), sp.Z(i), sp.Z(i + 1), sp.Z(i + 2)
	}
	p1, p2 = sp.knots[i], sp.knots[i+1]
	if i > 0 {
		p0 = sp.knots[i-1]
	} else {
		p0 = p1.Scaled(2).Sub(p2)
	}
	if i+2 < n {
		p3 = sp.knots[i+2]
	} else {
		p3 = p2.Scaled(2).Sub(p1)
	}
	return
}

func makeSegment(p0, p1, p2, p3 pathflow.Vec3, opts Options) segment {
	var seg segment
	if opts.Mode == Uniform {
		tension := opts.tension()
		seg.x = polyn.CatmullRom(p0.X, p1.X, p2.X, p3.X, tension)
		seg.y = polyn.CatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, tension)
		seg.z = polyn.CatmullRom(p0.Z, p1.Z, p2.Z, p3.Z, tension)
	} else {
		pow := opts.Mode.exponent()
		dt0 := math.Pow(p0.DistSq(p1), pow)
		dt1 := math.Pow(p1.DistSq(p2), pow)
		dt2 := math.Pow(p2.DistSq(p3), pow)
		if dt1 < minInterval {
			dt1 = 1.0
		}
		if dt0 < minInterval {
			dt0 = dt1
		}
		if dt2 < minInterval {
			dt2 = dt1
		}
		seg.x = polyn.NonuniformCatmullRom(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
		seg.y = polyn.NonuniformCatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
		seg.z = polyn.NonuniformCatmullRom(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	}
	seg.dx, seg.dy, seg.dz = seg.x.Derivative(), seg.y.Derivative(), seg.z.Derivative()
	return seg
}

// N returns the knot count.
func (sp *Spline) N() int {
	return len(sp.knots)
}

// Z returns the knot at position (i mod N).
func (sp *Spline) Z(i int) pathflow.Vec3 {
	n := len(sp.knots)
	i %= n
	if i < 0 {
		i += n
	}
	return sp.knots[i]
}

// Knots returns a copy of the skeleton knots.
func (sp *Spline) Knots() []pathflow.Vec3 {
	return append([]pathflow.Vec3(nil), sp.knots...)
}

// IsCycle is a predicate: is this spline closed?
func (sp *Spline) IsCycle() bool {
	return sp.closed
}

// Mode returns the parametrization mode the spline has been built with.
func (sp *Spline) Mode() Mode {
	return sp.mode
}

// locate maps curve parameter t to a segment index and a local weight in [0,1].
func (sp *Spline) locate(t float64) (int, float64) {
	segcnt := len(sp.segments)
	if !sp.closed {
		t = pathflow.Clamp(t, 0, 1)
	}
	p := float64(segcnt) * t
	i := int(math.Floor(p))
	w := p - float64(i)
	if sp.closed {
		i %= segcnt
		if i < 0 {
			i += segcnt
		}
	} else if i >= segcnt {
		i, w = segcnt-1, 1.0
	}
	return i, w
}

// Point returns the position on the curve at parameter t. For closed splines
// t wraps around, i.e. Point(t) = Point(t+1). Knot i is met at t = i/N.
func (sp *Spline) Point(t float64) pathflow.Vec3 {
	i, w := sp.locate(t)
	return sp.segments[i].at(w)
}

// Derivative returns the (unnormalized) derivative of the curve at parameter
// t, with respect to the local segment parameter. Its direction is the curve
// direction; it may be the null vector where knots coincide.
func (sp *Spline) Derivative(t float64) pathflow.Vec3 {
	i, w := sp.locate(t)
	return sp.segments[i].derivative(w)
}

// Tangent returns the unit tangent at parameter t, or the null vector if the
// curve does not have a well-defined direction at t.
func (sp *Spline) Tangent(t float64) pathflow.Vec3 {
	d := sp.Derivative(t)
	if d.IsNull() {
		return pathflow.Null
	}
	return d.Normalized()
}
