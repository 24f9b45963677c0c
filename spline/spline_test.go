package spline

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the loop of six knots the ghost flies through
func ghostKnots() []pathflow.Vec3 {
	return []pathflow.Vec3{
		pathflow.V(420, 120, 0),
		pathflow.V(-70, 200, 750),
		pathflow.V(-440, 100, 150),
		pathflow.V(-250, 440, -395),
		pathflow.V(-20, 600, -590),
		pathflow.V(200, 500, -380),
	}
}

var allModes = []Mode{Centripetal, Chordal, Uniform}

func TestParseMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, m := range allModes {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	m, err := ParseMode("CatmullRom")
	require.NoError(t, err)
	assert.Equal(t, Uniform, m)
	_, err = ParseMode("bezier")
	assert.True(t, errors.Is(err, ErrUnknownMode))
	var zero Mode
	assert.Equal(t, Centripetal, zero)
}

func TestBuildRejectsTooFewKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Build(ghostKnots()[:2], true, Options{})
	assert.True(t, errors.Is(err, ErrTooFewKnots))
	_, err = Build(ghostKnots()[:3], true, Options{})
	assert.True(t, errors.Is(err, ErrTooFewKnots))
	_, err = Build(ghostKnots()[:3], false, Options{})
	assert.NoError(t, err)
	_, err = Build(ghostKnots()[:4], true, Options{})
	assert.NoError(t, err)
	_, err = Build(ghostKnots()[:1], false, Options{})
	assert.True(t, errors.Is(err, ErrTooFewKnots))
}

func TestBuildRejectsInvalidKnot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := ghostKnots()
	knots[3].Y = math.Inf(1)
	_, err := Build(knots, true, Options{})
	assert.True(t, errors.Is(err, ErrInvalidKnot))
}

func TestBuildCopiesKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := ghostKnots()
	sp := MustBuild(knots, true, Options{})
	knots[0] = pathflow.V(1, 2, 3)
	assert.True(t, sp.Z(0).Equal(pathflow.V(420, 120, 0)))
	assert.True(t, sp.Z(-1).Equal(sp.Z(5)))
}

func TestInterpolatesKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, mode := range allModes {
		for n := 4; n <= 6; n++ {
			knots := ghostKnots()[:n]
			sp := MustBuild(knots, true, Options{Mode: mode})
			for i, k := range knots {
				p := sp.Point(float64(i) / float64(n))
				assert.True(t, p.Near(k, 1e-6), "%s, N=%d: point(%d/%d) = %v, want %v",
					mode, n, i, n, p, k)
			}
		}
	}
}

func TestClosedCurveWraps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := MustBuild(ghostKnots(), true, Options{})
	assert.True(t, sp.Point(1).Near(sp.Point(0), 1e-9))
	assert.True(t, sp.Point(1.3).Near(sp.Point(0.3), 1e-9))
	assert.True(t, sp.Point(-0.2).Near(sp.Point(0.8), 1e-9))
}

func TestContinuity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, mode := range allModes {
		sp := MustBuild(ghostKnots(), true, Options{Mode: mode})
		const h = 1e-7
		for i := 0; i <= 6; i++ {
			t0 := float64(i) / 6
			a, b := sp.Point(t0-h), sp.Point(t0+h)
			assert.Less(t, a.Dist(b), 1e-2, "%s: jump at knot %d", mode, i)
			ta, tb := sp.Tangent(t0-h), sp.Tangent(t0+h)
			assert.Less(t, ta.Angle(tb), 1e-3, "%s: kink at knot %d", mode, i)
		}
	}
}

func TestOpenSplineEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := ghostKnots()
	sp := MustBuild(knots, false, Options{})
	assert.False(t, sp.IsCycle())
	assert.True(t, sp.Point(0).Near(knots[0], 1e-9))
	assert.True(t, sp.Point(1).Near(knots[5], 1e-9))
	assert.True(t, sp.Point(0.4).Near(knots[2], 1e-6))
}

func TestLengthMatchesSummedSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := MustBuild(ghostKnots(), true, Options{ArcDivisions: 200})
	require.Equal(t, 200, sp.Divisions())
	sum := 0.0
	for j := 1; j <= 200; j++ {
		sum += sp.Point(float64(j) / 200).Dist(sp.Point(float64(j-1) / 200))
	}
	L := sp.Length()
	assert.False(t, math.IsNaN(L) || math.IsInf(L, 0))
	assert.Greater(t, L, 0.0)
	assert.InDelta(t, sum, L, 1e-9)
	fine := MustBuild(ghostKnots(), true, Options{ArcDivisions: 4000})
	assert.GreaterOrEqual(t, fine.Length()+1e-9, L, "finer subdivision must not shorten the curve")
	assert.InEpsilon(t, fine.Length(), L, 5e-3)
}

func TestMinimumArcDivisions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := MustBuild(ghostKnots(), true, Options{ArcDivisions: 16})
	assert.Equal(t, MinArcDivisions, sp.Divisions())
	assert.Equal(t, DefaultArcDivisions, MustBuild(ghostKnots(), true, Options{}).Divisions())
}

func TestParamAtInvertsArcLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := MustBuild(ghostKnots(), true, Options{})
	assert.Equal(t, 0.0, sp.ParamAt(0))
	assert.Equal(t, 1.0, sp.ParamAt(1))
	prev := 0.0
	for i := 1; i <= 100; i++ {
		p := sp.ParamAt(float64(i) / 100)
		assert.GreaterOrEqual(t, p, prev, "parameter must grow with arc length")
		prev = p
	}
}

func TestSpacedPointsAreEquidistant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, mode := range allModes {
		sp := MustBuild(ghostKnots(), true, Options{Mode: mode})
		pts := sp.SpacedPoints(255)
		require.Len(t, pts, 256)
		assert.True(t, pts[0].Near(ghostKnots()[0], 1e-9))
		assert.True(t, pts[255].Near(pts[0], 1e-6), "closed curve must end where it starts")
		d := make([]float64, 255)
		mean := 0.0
		for i := range d {
			d[i] = pts[i+1].Dist(pts[i])
			mean += d[i]
		}
		mean /= float64(len(d))
		variance := 0.0
		for _, x := range d {
			variance += (x - mean) * (x - mean)
		}
		variance /= float64(len(d))
		cv := math.Sqrt(variance) / mean
		assert.Less(t, cv, 0.01, "%s: coefficient of variation of spacing %g", mode, cv)
	}
}

func TestSpacedPointsDifferFromParamPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := MustBuild(ghostKnots(), true, Options{})
	spaced, plain := sp.SpacedPoints(12), sp.Points(12)
	approx := cmpopts.EquateApprox(0, 1e-6)
	if cmp.Equal(spaced, plain, approx) {
		t.Errorf("expected arc length sampling to differ from parameter sampling")
	}
	if d := cmp.Diff(plain[0], spaced[0], approx); d != "" {
		t.Errorf("start points differ: %s", d)
	}
}

func TestCoincidentKnotsStayFinite(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := ghostKnots()
	knots = append(knots[:3], append([]pathflow.Vec3{knots[2]}, knots[3:]...)...)
	for _, mode := range allModes {
		sp := MustBuild(knots, true, Options{Mode: mode})
		for _, p := range sp.SpacedPoints(64) {
			require.True(t, p.IsFinite(), "%s: non-finite sample", mode)
		}
		assert.True(t, sp.Tangent(3.0/7.0+0.5/7.0).IsFinite())
	}
}

func ExampleSpline_SpacedPoints() {
	knots := []pathflow.Vec3{
		pathflow.V(0, 0, 0), pathflow.V(1, 0, 0), pathflow.V(1, 1, 0), pathflow.V(0, 1, 0),
	}
	sp := MustBuild(knots, true, Options{})
	pts := sp.SpacedPoints(4)
	fmt.Println(len(pts), pts[0])
	// Output: 5 (0,0,0)
}
