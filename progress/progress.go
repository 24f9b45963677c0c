/*
Package progress advances a normalized position along a closed path, once
per tick.

A Controller is either Paused, Playing or Frozen. Only a playing
controller advances; progress is kept in [0,1) and wraps around. Named
waypoints report, edge-triggered, when progress crosses them:

	c := progress.New(0.005)
	c.AddWaypoint("G", 0.25)
	c.Play()
	for range frames {
	    for _, x := range c.Tick() {
	        // x.Name has just been passed
	    }
	}

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package progress

import (
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathflow'
func tracer() tracing.Trace {
	return tracing.Select("pathflow")
}

var (
	// ErrIncrement indicates a per-tick increment outside of (0,1).
	ErrIncrement = errors.New("progress increment must be in (0,1)")
	// ErrWaypointOffset indicates a waypoint offset outside of [0,1).
	ErrWaypointOffset = errors.New("waypoint offset must be in [0,1)")
)

// DefaultIncrement is the progress advance per tick.
const DefaultIncrement = 0.005

// thresholds are lowered by epsilon, so accumulated rounding errors of the
// increments do not delay a crossing by one tick.
const epsilon = 1e-9

// State is the playback state of a controller.
type State int8

// Playback states. The zero value is Paused.
const (
	Paused State = iota
	Playing
	Frozen
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Frozen:
		return "frozen"
	}
	return fmt.Sprintf("State(%d)", int8(s))
}

// Waypoint is a named position on the path.
type Waypoint struct {
	Name   string  `yaml:"name" toml:"name"`
	Offset float64 `yaml:"offset" toml:"offset"`
}

// Crossing reports that progress has passed a waypoint during a tick. Lit
// flips with every crossing of the same waypoint, starting with true.
type Crossing struct {
	Waypoint
	Lit bool
}

type waypoint struct {
	Waypoint
	lit bool
}

// Controller advances progress along a closed path. Create one with New.
type Controller struct {
	increment float64
	progress  float64
	state     State
	waypoints *treemap.Map // threshold → *waypoint
}

// New creates a paused controller at progress 0. An increment outside of
// (0,1) is replaced by DefaultIncrement.
func New(increment float64) *Controller {
	if !(increment > 0 && increment < 1) {
		tracer().Errorf("%v: %g, using %g", ErrIncrement, increment, DefaultIncrement)
		increment = DefaultIncrement
	}
	return &Controller{
		increment: increment,
		waypoints: treemap.NewWith(utils.Float64Comparator),
	}
}

// Increment returns the progress advance per tick.
func (c *Controller) Increment() float64 {
	return c.increment
}

// Progress returns the current progress in [0,1).
func (c *Controller) Progress() float64 {
	return c.progress
}

// State returns the playback state.
func (c *Controller) State() State {
	return c.state
}

// Play starts playback, unless the controller is frozen.
func (c *Controller) Play() {
	if c.state == Frozen {
		return
	}
	c.state = Playing
}

// Pause stops playback, unless the controller is frozen.
func (c *Controller) Pause() {
	if c.state == Frozen {
		return
	}
	c.state = Paused
}

// ToggleFreeze freezes a running or paused controller, and resumes
// playback of a frozen one. It returns the new state.
func (c *Controller) ToggleFreeze() State {
	if c.state == Frozen {
		c.state = Playing
	} else {
		c.state = Frozen
	}
	tracer().Debugf("progress controller is %s", c.state)
	return c.state
}

// Seek sets progress, wrapped into [0,1). Seeking does not report crossings.
func (c *Controller) Seek(p float64) {
	if !pathflow.IsFinite(p) {
		return
	}
	c.progress = wrap(p)
}

func wrap(p float64) float64 {
	p = math.Mod(p, 1)
	if p < 0 {
		p += 1
	}
	if p >= 1 { // -tiny + 1 rounds to 1
		p = 0
	}
	return p
}

// AddWaypoint adds a named waypoint at offset. A waypoint already present
// at the same offset is replaced.
func (c *Controller) AddWaypoint(name string, offset float64) error {
	if !(offset >= 0 && offset < 1) {
		return fmt.Errorf("%w: %s at %g", ErrWaypointOffset, name, offset)
	}
	c.waypoints.Put(threshold(offset), &waypoint{Waypoint: Waypoint{Name: name, Offset: offset}})
	return nil
}

func threshold(offset float64) float64 {
	return wrap(offset - epsilon)
}

// Waypoints returns the waypoints ordered by offset.
func (c *Controller) Waypoints() []Waypoint {
	wps := make([]Waypoint, 0, c.waypoints.Size())
	it := c.waypoints.Iterator()
	for it.Next() {
		wps = append(wps, it.Value().(*waypoint).Waypoint)
	}
	return wps
}

// Tick advances a playing controller by one increment and returns the
// waypoints crossed, in order of passing. Paused or frozen controllers
// return nil and hold their progress.
func (c *Controller) Tick() []Crossing {
	if c.state != Playing {
		return nil
	}
	prev := c.progress
	c.progress = wrap(prev + c.increment)
	if c.waypoints.Empty() {
		return nil
	}
	var crossed []Crossing
	if c.progress >= prev {
		crossed = c.collect(crossed, prev, c.progress)
	} else { // wrapped around
		crossed = c.collect(crossed, prev, 1)
		crossed = c.collect(crossed, -1, c.progress)
	}
	return crossed
}

// collect appends every waypoint with threshold in (from, to].
func (c *Controller) collect(crossed []Crossing, from, to float64) []Crossing {
	it := c.waypoints.Iterator()
	for it.Next() {
		th := it.Key().(float64)
		if th <= from {
			continue
		}
		if th > to {
			break
		}
		wp := it.Value().(*waypoint)
		wp.lit = !wp.lit
		tracer().Debugf("progress %.4f crossed waypoint %s", c.progress, wp.Name)
		crossed = append(crossed, Crossing{Waypoint: wp.Waypoint, Lit: wp.lit})
	}
	return crossed
}
