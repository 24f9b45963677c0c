package polygon

import (
	"testing"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(pathflow.P(0, 0)).Knot(pathflow.P(1, 3)).Knot(pathflow.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, "(0,0) -- (1,3) -- (3,0) -- cycle", AsString(pg))
	assert.True(t, pg.Z(4).Equal(pathflow.P(1, 3)))
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(pathflow.P(0, 5), pathflow.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.InDelta(t, 16.0, box.Area(), 1e-9)
	lo, hi := box.BoundingBox()
	assert.True(t, lo.Equal(pathflow.P(0, 1)))
	assert.True(t, hi.Equal(pathflow.P(4, 5)))
}

func TestContains(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(pathflow.P(-500, -400), pathflow.P(500, 400))
	assert.True(t, box.Contains(pathflow.P(0, 0)))
	assert.True(t, box.Contains(pathflow.P(-499, 399)))
	assert.False(t, box.Contains(pathflow.P(501, 0)))
	assert.False(t, NullPolygon().Knot(pathflow.P(0, 0)).Cycle().Contains(pathflow.Origin))
}

func TestOverlapArea(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(pathflow.P(0, 0), pathflow.P(2, 2))
	b := Box(pathflow.P(1, 1), pathflow.P(3, 3))
	assert.InDelta(t, 1.0, OverlapArea(a, b), 1e-9)
	c := Box(pathflow.P(5, 5), pathflow.P(6, 6))
	assert.InDelta(t, 0.0, OverlapArea(a, c), 1e-9)
}
