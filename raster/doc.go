/*
Package raster encodes sampled curve data into a fixed-layout raster, as
consumed by a GPU deformation stage.

A path raster has W columns and 4 rows. Column i holds sample i of the
curve; rows carry fixed quantities:

	row 0   position
	row 1   tangent
	row 2   normal
	row 3   binormal

Each cell is a texel of three float32 components. A consumer looks up a
normalized path parameter u at column u⋅W and interpolates linearly between
neighbouring columns (see Raster.Sample).

Writes may be issued before the raster they go to exists. The Encoder
queues them and drains the queue exactly once, when a target is attached.
The same two-phase lifecycle applies to scalar uniforms (type Uniforms).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package raster

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathflow.raster'
func tracer() tracing.Trace {
	return tracing.Select("pathflow.raster")
}

var (
	// ErrSampleCount indicates a sample count different from the raster width.
	ErrSampleCount = errors.New("sample count does not match raster width")
	// ErrAlreadyAttached indicates a second attempt to attach a target.
	ErrAlreadyAttached = errors.New("target already attached")
	// ErrWidthMismatch indicates a target of a width other than the encoder's.
	ErrWidthMismatch = errors.New("target width does not match encoder width")
	// ErrNonFinite indicates a NaN or Inf value in sampled data.
	ErrNonFinite = errors.New("non-finite sample value")
)

// Row is a row of the path raster.
type Row int

// Rows of a path raster. Row semantics are fixed.
const (
	RowPosition Row = iota
	RowTangent
	RowNormal
	RowBinormal
	Rows int = 4
)

func (r Row) String() string {
	switch r {
	case RowPosition:
		return "position"
	case RowTangent:
		return "tangent"
	case RowNormal:
		return "normal"
	case RowBinormal:
		return "binormal"
	}
	return "row?"
}

// DefaultWidth is the raster width of the reference configuration.
const DefaultWidth = 256
