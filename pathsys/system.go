/*
Package pathsys wires control points, spline, frames, path raster, mesh
mapping, progress and outline into a single owning object.

Every change of the control points synchronously rebuilds the spline, the
frames over evenly spaced samples, the path raster and the outline, and
publishes an immutable Snapshot of the result. Every tick advances progress
and forwards it to the deformation stage as uniform pathOffset.

	sys := pathsys.New()
	if err := sys.Init(config.Default()); err != nil { … }
	defer sys.Teardown()
	sys.AttachRaster(raster.New(sys.Snapshot().Width()))

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pathsys

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/config"
	"github.com/npillmayer/pathflow/frames"
	"github.com/npillmayer/pathflow/knots"
	"github.com/npillmayer/pathflow/mesh"
	"github.com/npillmayer/pathflow/outline"
	"github.com/npillmayer/pathflow/progress"
	"github.com/npillmayer/pathflow/raster"
	"github.com/npillmayer/pathflow/spline"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathflow'
func tracer() tracing.Trace {
	return tracing.Select("pathflow")
}

var (
	// ErrNotInitialized indicates use of a system before Init or after Teardown.
	ErrNotInitialized = errors.New("path system not initialized")
	// ErrInitialized indicates a second call to Init.
	ErrInitialized = errors.New("path system already initialized")
)

// Snapshot is the result of a rebuild. It is never modified after
// publication; a rebuild publishes a new one.
type Snapshot struct {
	Version     int             // counts rebuilds, starting at 1
	Points      []pathflow.Vec3 // control points
	Spline      *spline.Spline
	Samples     []pathflow.Vec3 // raster positions, evenly spaced by arc length
	Frames      *frames.Set     // one frame per sample
	Length      float64         // arc length of the spline
	PathSegment float64         // mesh length ÷ Length, 0 without mesh
}

// Width returns the number of samples.
func (s *Snapshot) Width() int {
	return len(s.Samples)
}

// System owns all components of a path animation. The zero value is not
// usable, create one with New and call Init.
type System struct {
	cfg        *config.Config
	store      *knots.Store
	encoder    *raster.Encoder
	uniforms   *raster.Uniforms
	outline    *outline.Renderer
	progress   *progress.Controller
	mapping    *mesh.Mapping
	snapshot   *Snapshot
	rebuildErr error
	rebuilds   int
}

// New creates an uninitialized path system.
func New() *System {
	return &System{}
}

// Init creates the components from cfg and builds the initial path.
func (sys *System) Init(cfg *config.Config) error {
	if sys.cfg != nil {
		return ErrInitialized
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	sys.store = knots.New(cfg.KnotBounds(), rnd)
	sys.encoder = raster.NewEncoder(cfg.Raster.Width)
	sys.uniforms = raster.NewUniforms()
	sys.outline = outline.New(cfg.Outline.Segments)
	sys.outline.SetVisible(!cfg.Outline.Hidden)
	sys.progress = progress.New(cfg.Progress.Increment)
	for _, wp := range cfg.Progress.Waypoints {
		if err := sys.progress.AddWaypoint(wp.Name, wp.Offset); err != nil {
			return err
		}
	}
	sys.cfg = cfg
	sys.store.OnChange(func([]pathflow.Vec3) {
		sys.rebuildErr = sys.Rebuild()
	})
	if err := sys.store.Load(cfg.ControlPoints); err != nil {
		sys.cfg = nil
		return err
	}
	if sys.rebuildErr != nil {
		sys.cfg = nil
		return sys.rebuildErr
	}
	sys.uniforms.Set(raster.PathOffset, sys.progress.Progress())
	if cfg.Progress.Autoplay {
		sys.progress.Play()
	}
	tracer().Infof("path system initialized with %d control points, raster width %d",
		len(cfg.ControlPoints), cfg.Raster.Width)
	return nil
}

// Teardown detaches all sinks and releases the components. The system may
// be initialized again afterwards.
func (sys *System) Teardown() {
	if sys.cfg == nil {
		return
	}
	sys.store.OnChange(nil)
	sys.encoder.Detach()
	sys.uniforms.Unbind()
	*sys = System{}
	tracer().Infof("path system torn down")
}

// Rebuild derives spline, frames, raster and outline from the current
// control points and publishes a new snapshot. Rebuilds are triggered by
// every change of the control points; clients call Rebuild only to force
// one.
func (sys *System) Rebuild() error {
	if sys.cfg == nil {
		return ErrNotInitialized
	}
	points := sys.store.Points()
	sp, err := spline.Build(points, true, sys.cfg.Spline.Options())
	if err != nil {
		tracer().Errorf("rebuild failed: %v", err)
		return err
	}
	w := sys.encoder.Width()
	samples := sp.SpacedPoints(w - 1)
	set, err := frames.Compute(sp, w, true)
	if err != nil {
		return err
	}
	snap := &Snapshot{
		Version: sys.rebuilds + 1,
		Points:  points,
		Spline:  sp,
		Samples: samples,
		Frames:  set,
		Length:  sp.Length(),
	}
	if sys.mapping != nil {
		snap.PathSegment = sys.pathSegment(snap.Length)
	}
	// sinks are touched only after everything derived has been computed
	if err = sys.encoder.Encode(samples, set.Frames()); err != nil {
		tracer().Errorf("rebuild failed: %v", err)
		return err
	}
	sys.outline.Update(sp)
	if c := sys.outline.Coverage(sys.store.Bounds().Footprint); c < 1 {
		tracer().Debugf("%.0f%% of the path's ground extent lies outside of the scene bounds", 100*(1-c))
	}
	if sys.mapping != nil {
		sys.uniforms.Set(raster.PathSegment, snap.PathSegment)
	}
	sys.rebuilds = snap.Version
	sys.snapshot = snap
	tracer().Debugf("rebuild #%d: %d control points, length %.4g, twist %.4g",
		snap.Version, len(points), snap.Length, set.Twist())
	return nil
}

// pathSegment returns the share of a path of the given length covered by
// the mesh. A path without length yields 0.
func (sys *System) pathSegment(length float64) float64 {
	seg, _, err := mesh.PathSegment(sys.mapping.Length, length)
	if err != nil {
		tracer().Infof("%v, mesh segment set to 0", err)
		return 0
	}
	return seg
}

// Snapshot returns the result of the latest rebuild, or nil before Init.
func (sys *System) Snapshot() *Snapshot {
	return sys.snapshot
}

// --- Control points --------------------------------------------------------

// Points returns a copy of the control points.
func (sys *System) Points() []pathflow.Vec3 {
	if sys.cfg == nil {
		return nil
	}
	return sys.store.Points()
}

// Add appends control points, or a random one if pos is empty, and
// rebuilds the path.
func (sys *System) Add(pos ...pathflow.Vec3) error {
	if sys.cfg == nil {
		return ErrNotInitialized
	}
	if err := sys.store.Add(pos...); err != nil {
		return err
	}
	return sys.rebuildErr
}

// Remove pops the last control point and rebuilds the path. The store never
// drops below knots.MinPoints; Remove then is a no-op and returns false.
func (sys *System) Remove() (bool, error) {
	if sys.cfg == nil {
		return false, ErrNotInitialized
	}
	if !sys.store.Remove() {
		return false, nil
	}
	return true, sys.rebuildErr
}

// Set moves control point i and rebuilds the path.
func (sys *System) Set(i int, p pathflow.Vec3) error {
	if sys.cfg == nil {
		return ErrNotInitialized
	}
	if err := sys.store.Set(i, p); err != nil {
		return err
	}
	return sys.rebuildErr
}

// Load replaces the control points by targets and rebuilds the path once.
func (sys *System) Load(targets []pathflow.Vec3) error {
	if sys.cfg == nil {
		return ErrNotInitialized
	}
	if err := sys.store.Load(targets); err != nil {
		return err
	}
	return sys.rebuildErr
}

// --- Mesh ------------------------------------------------------------------

// SetMesh measures the mesh travelling along the path, transformed by the
// configured model transform, and updates the uniforms spineOffset,
// spineLength and pathSegment.
func (sys *System) SetMesh(vertices []pathflow.Vec3) (mesh.Mapping, error) {
	if sys.cfg == nil {
		return mesh.Mapping{}, ErrNotInitialized
	}
	xf := sys.cfg.Mesh.Transform.Matrix()
	axis, auto := sys.cfg.MeshAxis()
	if auto {
		var err error
		if axis, err = mesh.DominantAxis(vertices, xf); err != nil {
			return mesh.Mapping{}, err
		}
	}
	m, err := mesh.Bounds(vertices, xf, axis)
	if err != nil {
		return m, err
	}
	sys.mapping = &m
	sys.uniforms.Set(raster.SpineOffset, m.Offset)
	sys.uniforms.Set(raster.SpineLength, m.Length)
	if sys.snapshot != nil {
		snap := *sys.snapshot
		snap.PathSegment = sys.pathSegment(snap.Length)
		sys.uniforms.Set(raster.PathSegment, snap.PathSegment)
		sys.snapshot = &snap
	}
	tracer().Infof("mesh mapped along %s: offset %.4g, length %.4g", axis, m.Offset, m.Length)
	return m, nil
}

// --- Sinks -----------------------------------------------------------------

// AttachRaster connects the path raster of the deformation stage. Encodings
// done before are flushed into it.
func (sys *System) AttachRaster(t raster.Target) error {
	if sys.cfg == nil {
		return ErrNotInitialized
	}
	if err := sys.encoder.Attach(t); err != nil {
		return fmt.Errorf("attach raster: %w", err)
	}
	return nil
}

// BindUniforms connects the uniforms of the deformation stage. Values set
// before are flushed into it.
func (sys *System) BindUniforms(t raster.UniformTarget) error {
	if sys.cfg == nil {
		return ErrNotInitialized
	}
	sys.uniforms.Bind(t)
	return nil
}

// Uniforms returns the uniform set of the deformation stage, or nil
// before Init.
func (sys *System) Uniforms() *raster.Uniforms {
	return sys.uniforms
}

// Outline returns the debug polyline, or nil before Init.
func (sys *System) Outline() *outline.Renderer {
	return sys.outline
}

// --- Progress --------------------------------------------------------------

// Progress returns the progress controller, or nil before Init.
func (sys *System) Progress() *progress.Controller {
	return sys.progress
}

// Tick advances progress by one step, forwards it as uniform pathOffset
// and returns the waypoints crossed.
func (sys *System) Tick() []progress.Crossing {
	if sys.cfg == nil || sys.progress.State() != progress.Playing {
		return nil
	}
	crossed := sys.progress.Tick()
	sys.uniforms.Set(raster.PathOffset, sys.progress.Progress())
	for _, x := range crossed {
		tracer().Debugf("waypoint %s passed, lit = %v", x.Name, x.Lit)
	}
	return crossed
}

// ToggleFreeze flips between frozen and playing.
func (sys *System) ToggleFreeze() progress.State {
	if sys.cfg == nil {
		return progress.Paused
	}
	return sys.progress.ToggleFreeze()
}
