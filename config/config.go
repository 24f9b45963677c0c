/*
Package config reads the startup configuration of a path system from YAML
or TOML files.

The configuration carries the initial control points, parameters for
sampling and encoding the path, the waypoints of the progress controller,
and the model transform of the mesh travelling along the path. Default
returns the reference scene.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/knots"
	"github.com/npillmayer/pathflow/mesh"
	"github.com/npillmayer/pathflow/outline"
	"github.com/npillmayer/pathflow/progress"
	"github.com/npillmayer/pathflow/raster"
	"github.com/npillmayer/pathflow/spline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'pathflow'
func tracer() tracing.Trace {
	return tracing.Select("pathflow")
}

var (
	// ErrFormat indicates a configuration file of unknown format.
	ErrFormat = errors.New("unknown configuration format")
	// ErrInvalid indicates a configuration which does not validate.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the startup configuration of a path system.
type Config struct {
	ControlPoints []pathflow.Vec3 `yaml:"controlPoints" toml:"controlPoints"`
	Bounds        Box             `yaml:"bounds" toml:"bounds"`
	Spline        Spline          `yaml:"spline" toml:"spline"`
	Raster        Raster          `yaml:"raster" toml:"raster"`
	Outline       Outline         `yaml:"outline" toml:"outline"`
	Progress      Progress        `yaml:"progress" toml:"progress"`
	Mesh          Mesh            `yaml:"mesh" toml:"mesh"`
	Seed          uint64          `yaml:"seed" toml:"seed"` // for random control points, 0 = random
}

// Box is an axis-aligned box given by two opposite corners.
type Box struct {
	Min pathflow.Vec3 `yaml:"min" toml:"min"`
	Max pathflow.Vec3 `yaml:"max" toml:"max"`
}

// Spline configures spline construction.
type Spline struct {
	Mode         spline.Mode `yaml:"mode" toml:"mode"`
	Tension      float64     `yaml:"tension" toml:"tension"`
	ArcDivisions int         `yaml:"arcDivisions" toml:"arcDivisions"`
}

// Options returns the spline build options.
func (s Spline) Options() spline.Options {
	return spline.Options{Mode: s.Mode, Tension: s.Tension, ArcDivisions: s.ArcDivisions}
}

// Raster configures the path raster.
type Raster struct {
	Width int `yaml:"width" toml:"width"`
}

// Outline configures the debug polyline.
type Outline struct {
	Segments int  `yaml:"segments" toml:"segments"`
	Hidden   bool `yaml:"hidden" toml:"hidden"`
}

// Progress configures the progress controller.
type Progress struct {
	Increment float64             `yaml:"increment" toml:"increment"`
	Autoplay  bool                `yaml:"autoplay" toml:"autoplay"`
	Waypoints []progress.Waypoint `yaml:"waypoints" toml:"waypoints"`
}

// Mesh configures the mesh travelling along the path.
type Mesh struct {
	Transform mesh.Transform `yaml:"transform" toml:"transform"`
	Axis      string         `yaml:"axis" toml:"axis"` // x, y, z or auto
}

// Default returns the configuration of the reference scene.
func Default() *Config {
	return &Config{
		ControlPoints: []pathflow.Vec3{
			pathflow.V(420, 120, 0),
			pathflow.V(-70, 200, 750),
			pathflow.V(-440, 100, 150),
			pathflow.V(-250, 440, -395),
			pathflow.V(-20, 600, -590),
			pathflow.V(200, 500, -380),
		},
		Bounds: Box{Min: pathflow.V(-500, 0, -400), Max: pathflow.V(500, 500, 400)},
		Spline: Spline{
			Mode:         spline.Centripetal,
			Tension:      spline.DefaultTension,
			ArcDivisions: spline.DefaultArcDivisions,
		},
		Raster:  Raster{Width: raster.DefaultWidth},
		Outline: Outline{Segments: outline.DefaultSegments},
		Progress: Progress{
			Increment: progress.DefaultIncrement,
			Waypoints: []progress.Waypoint{
				{Name: "G", Offset: 0.25},
				{Name: "O", Offset: 0.5},
				{Name: "O2", Offset: 0.65},
				{Name: "D", Offset: 0.92},
			},
		},
		Mesh: Mesh{
			Transform: mesh.Transform{
				Scale:     0.35,
				Rotation:  pathflow.V(0, 0, -0.5),
				Translate: pathflow.V(0, 30, 0),
			},
			Axis: "x",
		},
	}
}

// KnotBounds returns the region for random control points.
func (c *Config) KnotBounds() knots.Bounds {
	return knots.BoxBounds(c.Bounds.Min, c.Bounds.Max)
}

// MeshAxis returns the mapping axis of the mesh. The second return value
// is true if the axis is to be detected from the mesh's extent.
func (c *Config) MeshAxis() (pathflow.Axis, bool) {
	switch strings.ToLower(c.Mesh.Axis) {
	case "y":
		return pathflow.AxisY, false
	case "z":
		return pathflow.AxisZ, false
	case "auto":
		return pathflow.AxisX, true
	}
	return pathflow.AxisX, false
}

// Validate checks a configuration for consistency.
func (c *Config) Validate() error {
	if len(c.ControlPoints) < knots.MinPoints {
		return fmt.Errorf("%w: %d control points, need %d", ErrInvalid, len(c.ControlPoints), knots.MinPoints)
	}
	for i, p := range c.ControlPoints {
		if !p.IsFinite() {
			return fmt.Errorf("%w: control point #%d = %s", ErrInvalid, i, p)
		}
	}
	if c.Raster.Width < 2 {
		return fmt.Errorf("%w: raster width %d", ErrInvalid, c.Raster.Width)
	}
	if c.Spline.ArcDivisions < 0 {
		return fmt.Errorf("%w: arc divisions %d", ErrInvalid, c.Spline.ArcDivisions)
	}
	if !(c.Progress.Increment > 0 && c.Progress.Increment < 1) {
		return fmt.Errorf("%w: %w", ErrInvalid, progress.ErrIncrement)
	}
	for _, wp := range c.Progress.Waypoints {
		if !(wp.Offset >= 0 && wp.Offset < 1) {
			return fmt.Errorf("%w: %w: %s at %g", ErrInvalid, progress.ErrWaypointOffset, wp.Name, wp.Offset)
		}
	}
	switch strings.ToLower(c.Mesh.Axis) {
	case "", "x", "y", "z", "auto":
	default:
		return fmt.Errorf("%w: mesh axis %q", ErrInvalid, c.Mesh.Axis)
	}
	if c.Bounds.Min.Y > c.Bounds.Max.Y || c.Bounds.Min.X == c.Bounds.Max.X || c.Bounds.Min.Z == c.Bounds.Max.Z {
		return fmt.Errorf("%w: bounds %s – %s", ErrInvalid, c.Bounds.Min, c.Bounds.Max)
	}
	return nil
}

// decoder is the common interface of yaml and toml decoders.
type decoder interface {
	Decode(v any) error
}

type decoderFunc func(r io.Reader) decoder

// Supported formats, keyed by file extension without the dot.
var formats = map[string]decoderFunc{
	"yaml": func(r io.Reader) decoder { return yaml.NewDecoder(r) },
	"yml":  func(r io.Reader) decoder { return yaml.NewDecoder(r) },
	"toml": func(r io.Reader) decoder { return toml.NewDecoder(r) },
}

// Load reads a configuration file. The format is determined by the file
// extension: .yaml, .yml or .toml. See Read.
func Load(filename string) (*Config, error) {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	if _, ok := formats[strings.ToLower(format)]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormat, filename)
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	c, err := Read(bufio.NewReader(fp), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	tracer().Infof("configuration loaded from %s", filename)
	return c, nil
}

// Read decodes a configuration in the given format ("yaml", "yml" or
// "toml") from r. Settings missing from the input take their default
// values. The result is validated.
func Read(r io.Reader, format string) (*Config, error) {
	f, ok := formats[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	c := &Config{}
	if err := f(r).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	return c, nil
}

// fillDefaults replaces unset settings by their default values.
func (c *Config) fillDefaults() {
	d := Default()
	if len(c.ControlPoints) == 0 {
		c.ControlPoints = d.ControlPoints
	}
	if c.Bounds == (Box{}) {
		c.Bounds = d.Bounds
	}
	if c.Spline.Tension == 0 {
		c.Spline.Tension = d.Spline.Tension
	}
	if c.Spline.ArcDivisions == 0 {
		c.Spline.ArcDivisions = d.Spline.ArcDivisions
	}
	if c.Raster.Width == 0 {
		c.Raster.Width = d.Raster.Width
	}
	if c.Outline.Segments == 0 {
		c.Outline.Segments = d.Outline.Segments
	}
	if c.Progress.Increment == 0 {
		c.Progress.Increment = d.Progress.Increment
	}
	if c.Progress.Waypoints == nil {
		c.Progress.Waypoints = d.Progress.Waypoints
	}
	if c.Mesh.Transform == (mesh.Transform{}) {
		c.Mesh.Transform = d.Mesh.Transform
	}
	if c.Mesh.Axis == "" {
		c.Mesh.Axis = d.Mesh.Axis
	}
}
