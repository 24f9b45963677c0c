package pathsys

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/config"
	"github.com/npillmayer/pathflow/knots"
	"github.com/npillmayer/pathflow/progress"
	"github.com/npillmayer/pathflow/raster"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformRecorder map[string]float64

func (u uniformRecorder) SetUniform(name string, v float64) {
	u[name] = v
}

func initSystem(t *testing.T, cfg *config.Config) *System {
	sys := New()
	require.NoError(t, sys.Init(cfg))
	return sys
}

// a rigid 'ghost' of 200 × 40 × 40, nose along x
func ghost() []pathflow.Vec3 {
	var vs []pathflow.Vec3
	for _, x := range []float64{-100, 100} {
		for _, y := range []float64{-20, 20} {
			for _, z := range []float64{-20, 20} {
				vs = append(vs, pathflow.V(x, y, z))
			}
		}
	}
	return vs
}

func TestScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sys := initSystem(t, config.Default())
	defer sys.Teardown()
	snap := sys.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Version)
	assert.Equal(t, 256, snap.Width())
	assert.Equal(t, 256, snap.Frames.Len())
	assert.True(t, snap.Length > 0 && pathflow.IsFinite(snap.Length))
	sum := 0.0
	for i := 1; i < len(snap.Samples); i++ {
		sum += snap.Samples[i].Dist(snap.Samples[i-1])
	}
	assert.InEpsilon(t, snap.Length, sum, 5e-3)
	assert.Less(t, snap.Frames.Residual(), 1e-3)
	assert.Equal(t, 200, outlineLen(t, sys))
	r := raster.New(snap.Width())
	require.NoError(t, sys.AttachRaster(r))
	assert.True(t, r.Dirty())
	for i, p := range snap.Samples {
		assert.True(t, r.Texel(i, raster.RowPosition).Vec3().Near(p, 1e-3), "column %d", i)
		f := snap.Frames.At(i)
		assert.True(t, r.Texel(i, raster.RowTangent).Vec3().Near(f.Tangent, 1e-6), "column %d", i)
	}
	for i := 1; i < snap.Frames.Len(); i++ {
		assert.Greater(t, snap.Frames.At(i).Normal.Dot(snap.Frames.At(i-1).Normal), 0.8, "normal flips at %d", i)
	}
	assert.True(t, errors.Is(sys.AttachRaster(r), raster.ErrAlreadyAttached))
}

func outlineLen(t *testing.T, sys *System) int {
	t.Helper()
	require.True(t, sys.Outline().Visible())
	return sys.Outline().Len()
}

func TestEditsRebuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := config.Default()
	cfg.Seed = 99
	sys := initSystem(t, cfg)
	defer sys.Teardown()
	r := raster.New(cfg.Raster.Width)
	require.NoError(t, sys.AttachRaster(r))
	v := r.Version()
	require.NoError(t, sys.Add())
	assert.Len(t, sys.Points(), 7)
	assert.Equal(t, 2, sys.Snapshot().Version)
	assert.Equal(t, v+1, r.Version())
	assert.Len(t, sys.Snapshot().Points, 7)
	for i := 0; i < 3; i++ {
		removed, err := sys.Remove()
		require.NoError(t, err)
		assert.True(t, removed)
	}
	removed, err := sys.Remove()
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, sys.Points(), knots.MinPoints)
	assert.Equal(t, 5, sys.Snapshot().Version)
	require.NoError(t, sys.Load(cfg.ControlPoints))
	assert.Equal(t, cfg.ControlPoints, sys.Points())
	assert.Equal(t, 6, sys.Snapshot().Version)
	bad := append([]pathflow.Vec3(nil), cfg.ControlPoints...)
	bad[0].X = math.Inf(-1)
	assert.True(t, errors.Is(sys.Load(bad), knots.ErrInvalidPoint))
	assert.Equal(t, 6, sys.Snapshot().Version)
	require.NoError(t, sys.Set(0, pathflow.V(400, 100, 20)))
	assert.Equal(t, pathflow.V(400, 100, 20), sys.Snapshot().Points[0])
}

func TestSnapshotsAreIndependent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sys := initSystem(t, config.Default())
	defer sys.Teardown()
	before := sys.Snapshot()
	p0 := before.Samples[0]
	require.NoError(t, sys.Set(0, pathflow.V(0, 300, 0)))
	after := sys.Snapshot()
	assert.NotSame(t, before, after)
	assert.Equal(t, p0, before.Samples[0])
	assert.Equal(t, pathflow.V(420, 120, 0), before.Points[0])
}

func TestMeshUniforms(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sys := initSystem(t, config.Default())
	defer sys.Teardown()
	m, err := sys.SetMesh(ghost())
	require.NoError(t, err)
	// scaled by 0.35 and rotated by -π/2 around z: the ghost's x extent
	// comes from its y extent
	assert.InDelta(t, 14.0, m.Length, 1e-9)
	assert.InDelta(t, 7.0, m.Offset, 1e-9)
	snap := sys.Snapshot()
	assert.InDelta(t, 14.0/snap.Length, snap.PathSegment, 1e-12)
	rec := uniformRecorder{}
	require.NoError(t, sys.BindUniforms(rec))
	assert.Equal(t, m.Offset, rec[raster.SpineOffset])
	assert.Equal(t, m.Length, rec[raster.SpineLength])
	assert.Equal(t, snap.PathSegment, rec[raster.PathSegment])
	assert.Equal(t, 0.0, rec[raster.PathOffset])
	require.NoError(t, sys.Add(pathflow.V(600, 0, 0)))
	assert.Equal(t, sys.Snapshot().PathSegment, rec[raster.PathSegment])
}

func TestCoincidentPointsWithMesh(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sys := initSystem(t, config.Default())
	defer sys.Teardown()
	r := raster.New(sys.Snapshot().Width())
	require.NoError(t, sys.AttachRaster(r))
	rec := uniformRecorder{}
	require.NoError(t, sys.BindUniforms(rec))
	_, err := sys.SetMesh(ghost())
	require.NoError(t, err)
	require.Greater(t, rec[raster.PathSegment], 0.0)
	v := r.Version()
	p := pathflow.V(10, 20, 30)
	require.NoError(t, sys.Load([]pathflow.Vec3{p, p, p, p}))
	snap := sys.Snapshot()
	assert.Equal(t, 2, snap.Version)
	assert.Equal(t, p, snap.Points[0])
	assert.Equal(t, sys.Points(), snap.Points)
	assert.Equal(t, 0.0, snap.Length)
	assert.Equal(t, 0.0, snap.PathSegment)
	assert.Equal(t, 0.0, rec[raster.PathSegment])
	assert.Equal(t, v+1, r.Version())
	assert.True(t, r.Texel(0, raster.RowPosition).Vec3().Near(p, 1e-4))
	require.NoError(t, sys.Add(pathflow.V(0, 0, 0)))
	removed, err := sys.Remove()
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 4, sys.Snapshot().Version)
}

func TestMeshAutoAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := config.Default()
	cfg.Mesh.Axis = "auto"
	sys := initSystem(t, cfg)
	defer sys.Teardown()
	m, err := sys.SetMesh(ghost())
	require.NoError(t, err)
	assert.Equal(t, pathflow.AxisY, m.Axis)
	assert.InDelta(t, 70.0, m.Length, 1e-9)
}

func TestTickForwardsProgress(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sys := initSystem(t, config.Default())
	defer sys.Teardown()
	rec := uniformRecorder{}
	require.NoError(t, sys.BindUniforms(rec))
	assert.Nil(t, sys.Tick()) // paused
	assert.Equal(t, progress.Frozen, sys.ToggleFreeze())
	assert.Equal(t, progress.Playing, sys.ToggleFreeze())
	var crossed []string
	for i := 0; i < 200; i++ {
		for _, x := range sys.Tick() {
			crossed = append(crossed, x.Name)
		}
		p := rec[raster.PathOffset]
		require.True(t, p >= 0 && p < 1)
	}
	assert.Equal(t, []string{"G", "O", "O2", "D"}, crossed)
	assert.Equal(t, sys.Progress().Progress(), rec[raster.PathOffset])
}

func TestLifecycle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sys := New()
	assert.True(t, errors.Is(sys.Rebuild(), ErrNotInitialized))
	assert.True(t, errors.Is(sys.Add(), ErrNotInitialized))
	assert.Nil(t, sys.Tick())
	assert.Nil(t, sys.Snapshot())
	cfg := config.Default()
	cfg.ControlPoints = cfg.ControlPoints[:3]
	assert.True(t, errors.Is(sys.Init(cfg), config.ErrInvalid))
	require.NoError(t, sys.Init(config.Default()))
	assert.True(t, errors.Is(sys.Init(config.Default()), ErrInitialized))
	sys.Teardown()
	assert.Nil(t, sys.Snapshot())
	require.NoError(t, sys.Init(config.Default()))
	sys.Teardown()
}
