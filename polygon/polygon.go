/*
Package polygon deals with closed 2D polygons, used as ground footprints:
scene bounds for randomly placed knots, and projected outlines of a path.
Boolean operations are delegated to polyclip (Martinez-Rueda clipping).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing"
)

// L traces with key 'graphics'.
func L() tracing.Trace {
	return tracing.Select("graphics")
}

// Polygon is a closed sequence of knots in the plane. Build one with
// NullPolygon() and extend it with Knot(…), then close it with Cycle().
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder calls.
//
//	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()
func NullPolygon() *Polygon {
	return &Polygon{}
}

// FromPairs creates a closed polygon from a list of knots.
func FromPairs(pts []pathflow.Pair) *Polygon {
	pg := NullPolygon()
	for _, p := range pts {
		pg.Knot(p)
	}
	return pg.Cycle()
}

// Knot appends a knot. Part of builder functionality.
func (pg *Polygon) Knot(p pathflow.Pair) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// IsCycle is a predicate: has this polygon been closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the knot count.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Z returns the knot at position (i mod N).
func (pg *Polygon) Z(i int) pathflow.Pair {
	if pg.N() == 0 {
		panic("polygon has no knots")
	}
	i %= pg.N()
	if i < 0 {
		i += pg.N()
	}
	pt := pg.contour[i]
	return pathflow.P(pt.X, pt.Y)
}

// Box creates a rectangle from two opposite corners.
func Box(p1, p2 pathflow.Pair) *Polygon {
	x0, x1 := math.Min(p1.X(), p2.X()), math.Max(p1.X(), p2.X())
	y0, y1 := math.Min(p1.Y(), p2.Y()), math.Max(p1.Y(), p2.Y())
	return NullPolygon().
		Knot(pathflow.P(x0, y0)).Knot(pathflow.P(x1, y0)).
		Knot(pathflow.P(x1, y1)).Knot(pathflow.P(x0, y1)).Cycle()
}

// BoundingBox returns the lower left and upper right corner of the
// smallest axis-aligned rectangle enclosing all knots.
func (pg *Polygon) BoundingBox() (pathflow.Pair, pathflow.Pair) {
	if pg.N() == 0 {
		return pathflow.Origin, pathflow.Origin
	}
	r := pg.contour.BoundingBox()
	return pathflow.P(r.Min.X, r.Min.Y), pathflow.P(r.Max.X, r.Max.Y)
}

// Contains is a predicate: is p inside the polygon?
func (pg *Polygon) Contains(p pathflow.Pair) bool {
	if pg.N() < 3 {
		return false
	}
	return pg.contour.Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// Area returns the (unsigned) area of a simple polygon, by the shoelace formula.
func (pg *Polygon) Area() float64 {
	return math.Abs(contourArea(pg.contour))
}

func contourArea(c polyclip.Contour) float64 {
	a := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}

// Intersection clips pg against clip and returns the overlapping regions.
// The result may consist of zero, one or more polygons.
func Intersection(pg, clip *Polygon) []*Polygon {
	subject := polyclip.Polygon{pg.contour.Clone()}
	clipping := polyclip.Polygon{clip.contour.Clone()}
	result := subject.Construct(polyclip.INTERSECTION, clipping)
	pgs := make([]*Polygon, 0, len(result))
	for _, c := range result {
		pgs = append(pgs, &Polygon{contour: c, cycle: true})
	}
	L().Debugf("intersection of %d and %d knots yields %d region(s)", pg.N(), clip.N(), len(pgs))
	return pgs
}

// OverlapArea returns the area of the intersection of two polygons.
func OverlapArea(pg, clip *Polygon) float64 {
	a := 0.0
	for _, r := range Intersection(pg, clip) {
		a += r.Area()
	}
	return a
}

// AsString returns a polygon as a (debugging) string, in MetaFont notation.
func AsString(pg *Polygon) string {
	var s string
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			s += " -- "
		}
		s += fmt.Sprintf("(%.4g,%.4g)", pg.contour[i].X, pg.contour[i].Y)
	}
	if pg.IsCycle() {
		s += " -- cycle"
	}
	return s
}
