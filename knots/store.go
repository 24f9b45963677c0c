/*
Package knots holds the ordered control points of a closed path.

Insertion order defines connectivity. A store never shrinks below MinPoints
by removal; loading a new set of points reconciles the store in place and
reports a single change.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package knots

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathflow'
func tracer() tracing.Trace {
	return tracing.Select("pathflow")
}

// MinPoints is the smallest number of control points of a path.
const MinPoints = 4

var (
	// ErrTooFewPoints indicates a set of control points smaller than MinPoints.
	ErrTooFewPoints = errors.New("too few control points")
	// ErrInvalidPoint indicates a control point with a non-finite coordinate.
	ErrInvalidPoint = errors.New("control point is not finite")
	// ErrIndex indicates an index outside of the store.
	ErrIndex = errors.New("control point index out of range")
)

// ChangeFunc is called with a copy of the control points after every change
// of a store.
type ChangeFunc func(points []pathflow.Vec3)

// Store is an ordered list of control points. Create one with New.
type Store struct {
	points   []pathflow.Vec3
	bounds   Bounds
	rnd      *rand.Rand
	onChange ChangeFunc
}

// New creates an empty store. Random control points will be placed within
// bounds, drawn from rnd. If rnd is nil, a randomly seeded source is used.
func New(bounds Bounds, rnd *rand.Rand) *Store {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Store{bounds: bounds, rnd: rnd}
}

// OnChange registers f to be called after every change. A previously
// registered function is replaced; f may be nil.
func (s *Store) OnChange(f ChangeFunc) {
	s.onChange = f
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange(s.Points())
	}
}

// Len returns the number of control points.
func (s *Store) Len() int {
	return len(s.points)
}

// Points returns a copy of the control points.
func (s *Store) Points() []pathflow.Vec3 {
	pts := make([]pathflow.Vec3, len(s.points))
	copy(pts, s.points)
	return pts
}

// At returns control point i.
func (s *Store) At(i int) pathflow.Vec3 {
	return s.points[i]
}

// Bounds returns the region random control points are placed in.
func (s *Store) Bounds() Bounds {
	return s.bounds
}

// Add appends control points. Without arguments, a single random point
// within the store's bounds is appended. Non-finite points are rejected,
// and the store is left unchanged.
func (s *Store) Add(pos ...pathflow.Vec3) error {
	if len(pos) == 0 {
		pos = []pathflow.Vec3{s.bounds.Random(s.rnd)}
	}
	for _, p := range pos {
		if !p.IsFinite() {
			tracer().Errorf("rejecting control point %s", p)
			return fmt.Errorf("%w: %s", ErrInvalidPoint, p)
		}
	}
	s.points = append(s.points, pos...)
	tracer().Debugf("added %d control point(s), now %d", len(pos), len(s.points))
	s.changed()
	return nil
}

// Remove pops the last control point. It is a no-op if the store would drop
// below MinPoints. Remove returns true if a point has been removed.
func (s *Store) Remove() bool {
	if len(s.points) <= MinPoints {
		return false
	}
	s.points = s.points[:len(s.points)-1]
	s.changed()
	return true
}

// Set overwrites control point i.
func (s *Store) Set(i int, p pathflow.Vec3) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	if !p.IsFinite() {
		return fmt.Errorf("%w: %s", ErrInvalidPoint, p)
	}
	s.points[i] = p
	s.changed()
	return nil
}

// Load reconciles the store to targets: points are appended or removed
// until the lengths match, then overwritten in order. Afterwards the store
// holds exactly the targets. Fewer than MinPoints targets, or targets with
// non-finite coordinates, are rejected and leave the store unchanged.
// Listeners are notified once.
func (s *Store) Load(targets []pathflow.Vec3) error {
	if len(targets) < MinPoints {
		tracer().Errorf("rejecting %d control points", len(targets))
		return fmt.Errorf("%w: %d < %d", ErrTooFewPoints, len(targets), MinPoints)
	}
	for i, p := range targets {
		if !p.IsFinite() {
			tracer().Errorf("rejecting control point #%d = %s", i, p)
			return fmt.Errorf("%w: #%d = %s", ErrInvalidPoint, i, p)
		}
	}
	for len(s.points) < len(targets) {
		s.points = append(s.points, pathflow.Null)
	}
	s.points = s.points[:len(targets)]
	copy(s.points, targets)
	tracer().Infof("loaded %d control points", len(targets))
	s.changed()
	return nil
}
