package knots

import (
	"math/rand/v2"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/polygon"
)

// Bounds is the region of the scene random control points are placed in: a
// ground footprint in the x-z plane, extruded over a height range [MinY,MaxY).
type Bounds struct {
	Footprint  *polygon.Polygon // x → Pair.X, z → Pair.Y
	MinY, MaxY float64
}

// DefaultBounds is x ∈ [-500,500), y ∈ [0,500), z ∈ [-400,400).
func DefaultBounds() Bounds {
	return BoxBounds(pathflow.V(-500, 0, -400), pathflow.V(500, 500, 400))
}

// BoxBounds creates bounds from two opposite corners of a box.
func BoxBounds(lo, hi pathflow.Vec3) Bounds {
	return Bounds{
		Footprint: polygon.Box(pathflow.P(lo.X, lo.Z), pathflow.P(hi.X, hi.Z)),
		MinY:      min(lo.Y, hi.Y),
		MaxY:      max(lo.Y, hi.Y),
	}
}

// maxTries limits rejection sampling for thin footprints.
const maxTries = 64

// Random returns a point drawn uniformly from b. Candidates are drawn from
// the footprint's bounding box until one lies inside the footprint; if
// none does within a few tries, the center of the bounding box is used.
func (b Bounds) Random(rnd *rand.Rand) pathflow.Vec3 {
	y := b.MinY + rnd.Float64()*(b.MaxY-b.MinY)
	if b.Footprint == nil || b.Footprint.N() == 0 {
		return pathflow.V(0, y, 0)
	}
	lo, hi := b.Footprint.BoundingBox()
	box := isBox(b.Footprint)
	for range maxTries {
		x := lo.X() + rnd.Float64()*(hi.X()-lo.X())
		z := lo.Y() + rnd.Float64()*(hi.Y()-lo.Y())
		if box || b.Footprint.Contains(pathflow.P(x, z)) {
			return pathflow.V(x, y, z)
		}
	}
	tracer().Debugf("no random point found inside footprint, using its center")
	return pathflow.V((lo.X()+hi.X())/2, y, (lo.Y()+hi.Y())/2)
}

// Contains is a predicate: is p inside b?
func (b Bounds) Contains(p pathflow.Vec3) bool {
	if p.Y < b.MinY || p.Y > b.MaxY || b.Footprint == nil {
		return false
	}
	if isBox(b.Footprint) {
		lo, hi := b.Footprint.BoundingBox()
		return p.X >= lo.X() && p.X <= hi.X() && p.Z >= lo.Y() && p.Z <= hi.Y()
	}
	return b.Footprint.Contains(pathflow.P(p.X, p.Z))
}

// isBox is a predicate: is pg an axis-aligned rectangle? Points on the
// border of a rectangle count as inside, which the general containment
// test does not guarantee.
func isBox(pg *polygon.Polygon) bool {
	if pg.N() != 4 {
		return false
	}
	lo, hi := pg.BoundingBox()
	for i := range 4 {
		z := pg.Z(i)
		if (z.X() != lo.X() && z.X() != hi.X()) || (z.Y() != lo.Y() && z.Y() != hi.Y()) {
			return false
		}
	}
	return true
}
