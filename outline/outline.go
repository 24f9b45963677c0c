/*
Package outline resamples a closed path into a debug polyline.

The polyline is what a line renderer draws on top of a scene to show the
path a mesh travels along. It is regenerated after every change of the
path; its visibility can be toggled independently.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package outline

import (
	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/polygon"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// DefaultSegments is the default number of polyline vertices.
const DefaultSegments = 200

// Curve is a path which can be evaluated at a curve parameter t ∈ [0,1].
type Curve interface {
	Point(t float64) pathflow.Vec3
}

// Renderer holds the vertices of a debug polyline.
type Renderer struct {
	vertices []pathflow.Vec3
	visible  bool
	updates  int
}

// New creates a visible renderer with segments vertices. Less than 2
// vertices are raised to 2.
func New(segments int) *Renderer {
	if segments < 2 {
		tracer().Debugf("outline needs at least 2 vertices, got %d", segments)
		segments = 2
	}
	return &Renderer{
		vertices: make([]pathflow.Vec3, segments),
		visible:  true,
	}
}

// Update resamples c. Vertex i is placed at t = i/(segments-1), thus for a
// closed curve the last vertex coincides with the first.
func (r *Renderer) Update(c Curve) {
	n := len(r.vertices)
	for i := range r.vertices {
		r.vertices[i] = c.Point(float64(i) / float64(n-1))
	}
	r.updates++
	tracer().Debugf("outline resampled with %d vertices", n)
}

// Updates returns how often the outline has been resampled.
func (r *Renderer) Updates() int {
	return r.updates
}

// Len returns the number of vertices.
func (r *Renderer) Len() int {
	return len(r.vertices)
}

// Vertices returns a copy of the polyline's vertices.
func (r *Renderer) Vertices() []pathflow.Vec3 {
	vs := make([]pathflow.Vec3, len(r.vertices))
	copy(vs, r.vertices)
	return vs
}

// Visible is a predicate: is the polyline drawn?
func (r *Renderer) Visible() bool {
	return r.visible
}

// SetVisible shows or hides the polyline.
func (r *Renderer) SetVisible(on bool) {
	r.visible = on
}

// Toggle flips visibility and returns the new setting.
func (r *Renderer) Toggle() bool {
	r.visible = !r.visible
	return r.visible
}

// Footprint projects the polyline onto the ground (x-z) plane.
func (r *Renderer) Footprint() *polygon.Polygon {
	pg := polygon.NullPolygon()
	for _, v := range r.vertices[:len(r.vertices)-1] {
		pg.Knot(pathflow.P(v.X, v.Z))
	}
	return pg.Cycle()
}

// Coverage returns the fraction of the ground extent of the polyline (its
// bounding rectangle in the x-z plane) which lies within bounds. A polyline
// without ground extent is covered if bounds contain it.
func (r *Renderer) Coverage(bounds *polygon.Polygon) float64 {
	lo, hi := r.Footprint().BoundingBox()
	box := polygon.Box(lo, hi)
	a := box.Area()
	if pathflow.Is0(a) {
		if bounds.Contains(lo) {
			return 1
		}
		return 0
	}
	return pathflow.Clamp(polygon.OverlapArea(box, bounds)/a, 0, 1)
}
