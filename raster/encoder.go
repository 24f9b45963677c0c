package raster

import (
	"fmt"

	"github.com/npillmayer/pathflow"
	"github.com/npillmayer/pathflow/frames"
)

type write struct {
	col int
	row Row
	v   Texel
}

// Encoder packs sampled positions and frames into a path raster.
//
// An encoder starts out without a target. Encodings issued in this phase are
// queued; Attach drains the queue into the target exactly once, and later
// encodings go to the target directly.
type Encoder struct {
	width       int
	target      Target
	pending     []write
	invalidated bool // an Invalidate is pending
}

// NewEncoder creates an encoder for rasters of the given width, without target.
func NewEncoder(width int) *Encoder {
	return &Encoder{width: width}
}

// Width returns the raster width the encoder writes.
func (enc *Encoder) Width() int {
	return enc.width
}

// Attached is a predicate: has a target been attached?
func (enc *Encoder) Attached() bool {
	return enc.target != nil
}

// Pending returns the number of queued writes.
func (enc *Encoder) Pending() int {
	return len(enc.pending)
}

// Attach connects the encoder to its target and flushes queued writes.
func (enc *Encoder) Attach(t Target) error {
	if enc.target != nil {
		return ErrAlreadyAttached
	}
	if sz, ok := t.(Sized); ok && sz.Width() != enc.width {
		return fmt.Errorf("%w: %d != %d", ErrWidthMismatch, sz.Width(), enc.width)
	}
	enc.target = t
	tracer().Infof("raster target attached, flushing %d queued writes", len(enc.pending))
	for _, w := range enc.pending {
		t.SetTexel(w.col, w.row, w.v)
	}
	if enc.invalidated {
		t.Invalidate()
	}
	enc.pending, enc.invalidated = nil, false
	return nil
}

// Detach disconnects the target. Subsequent encodings are queued again.
func (enc *Encoder) Detach() {
	enc.target = nil
}

// Encode writes W samples: points[i] into row 0 of column i, and the frame
// vectors into rows 1–3. Afterwards the target is invalidated.
//
// Both slices must have exactly W entries. Sample values must be finite;
// the raster is left untouched otherwise.
func (enc *Encoder) Encode(points []pathflow.Vec3, frs []frames.Frame) error {
	if len(points) != enc.width || len(frs) != enc.width {
		return fmt.Errorf("%w: %d points, %d frames, width %d", ErrSampleCount,
			len(points), len(frs), enc.width)
	}
	writes := make([]write, 0, enc.width*Rows)
	for i := 0; i < enc.width; i++ {
		f := frs[i]
		for row, v := range [Rows]pathflow.Vec3{points[i], f.Tangent, f.Normal, f.Binormal} {
			t := T(v)
			if !t.IsFinite() {
				return fmt.Errorf("%w at column %d, row %s", ErrNonFinite, i, Row(row))
			}
			writes = append(writes, write{col: i, row: Row(row), v: t})
		}
	}
	if enc.target == nil {
		// a full encoding supersedes everything queued before
		enc.pending, enc.invalidated = writes, true
		tracer().Debugf("no raster target yet, queued %d writes", len(writes))
		return nil
	}
	for _, w := range writes {
		enc.target.SetTexel(w.col, w.row, w.v)
	}
	enc.target.Invalidate()
	return nil
}
