package outline

import (
	"math"
	"testing"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/polygon"
	"github.com/npillmayer/pathflow/spline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type circle float64

func (c circle) Point(t float64) pathflow.Vec3 {
	s, co := math.Sincos(2 * math.Pi * t)
	return pathflow.V(float64(c)*co, 0, float64(c)*s)
}

func TestUpdateSamplesClosedCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := New(DefaultSegments)
	r.Update(circle(10))
	vs := r.Vertices()
	require.Len(t, vs, DefaultSegments)
	assert.True(t, vs[0].Near(vs[len(vs)-1], 1e-9))
	for _, v := range vs {
		assert.InDelta(t, 10.0, v.Len(), 1e-9)
	}
	assert.Equal(t, 1, r.Updates())
}

func TestUpdateFollowsSpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := []pathflow.Vec3{
		pathflow.V(0, 0, 0), pathflow.V(100, 0, 0), pathflow.V(100, 0, 100), pathflow.V(0, 0, 100),
	}
	sp := spline.MustBuild(knots, true, spline.Options{})
	r := New(5) // t = 0, .25, .5, .75, 1
	r.Update(sp)
	vs := r.Vertices()
	for i := 0; i < 4; i++ {
		assert.True(t, vs[i].Near(knots[i], 1e-9), "vertex %d = %s", i, vs[i])
	}
	assert.True(t, vs[4].Near(knots[0], 1e-9))
}

func TestVisibility(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := New(1)
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Visible())
	assert.False(t, r.Toggle())
	assert.False(t, r.Visible())
	r.SetVisible(true)
	assert.True(t, r.Visible())
}

func TestCoverage(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := New(64)
	r.Update(circle(100))
	assert.Equal(t, 63, r.Footprint().N())
	inside := polygon.Box(pathflow.P(-500, -400), pathflow.P(500, 400))
	assert.InDelta(t, 1.0, r.Coverage(inside), 1e-6)
	half := polygon.Box(pathflow.P(0, -400), pathflow.P(500, 400))
	assert.InDelta(t, 0.5, r.Coverage(half), 1e-2)
	away := polygon.Box(pathflow.P(1000, 1000), pathflow.P(2000, 2000))
	assert.InDelta(t, 0.0, r.Coverage(away), 1e-9)
}
