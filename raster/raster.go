package raster

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/npillmayer/pathflow"
)

// Texel is a raster cell of three float32 components.
type Texel [3]float32

// T converts a vector to a texel.
func T(v pathflow.Vec3) Texel {
	return Texel{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Vec3 converts a texel back to a vector.
func (t Texel) Vec3() pathflow.Vec3 {
	return pathflow.V(float64(t[0]), float64(t[1]), float64(t[2]))
}

// IsFinite is a predicate: are all components finite?
func (t Texel) IsFinite() bool {
	for _, c := range t {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func lerp(a, b Texel, f float32) Texel {
	return Texel{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
	}
}

// Target receives raster writes. Invalidate signals that the written data
// has to be re-uploaded; no acknowledgement is expected.
type Target interface {
	SetTexel(col int, row Row, v Texel)
	Invalidate()
}

// Sized is implemented by targets which know their column count. Encoders
// refuse to attach to sized targets of a different width.
type Sized interface {
	Width() int
}

// Raster is an in-memory path raster, laid out like an RGB float texture of
// W×4 pixels: row-major, three float32 per texel.
type Raster struct {
	width   int
	data    []float32
	dirty   bool
	version uint64
}

var _ Target = (*Raster)(nil)

// New creates a raster of the given width, initialized to zero.
func New(width int) *Raster {
	if width < 2 {
		panic(fmt.Sprintf("raster width must be at least 2, is %d", width))
	}
	return &Raster{
		width: width,
		data:  make([]float32, width*Rows*3),
	}
}

// Width returns the column count.
func (r *Raster) Width() int {
	return r.width
}

func (r *Raster) offset(col int, row Row) int {
	if col < 0 || col >= r.width || row < 0 || int(row) >= Rows {
		panic(fmt.Sprintf("texel (%d,%s) out of raster bounds", col, row))
	}
	return (int(row)*r.width + col) * 3
}

// SetTexel writes the cell at (col, row).
func (r *Raster) SetTexel(col int, row Row, v Texel) {
	o := r.offset(col, row)
	copy(r.data[o:o+3], v[:])
}

// Texel reads the cell at (col, row).
func (r *Raster) Texel(col int, row Row) Texel {
	o := r.offset(col, row)
	return Texel{r.data[o], r.data[o+1], r.data[o+2]}
}

// Invalidate marks the raster dirty, i.e. in need of re-upload.
func (r *Raster) Invalidate() {
	r.dirty = true
	r.version++
}

// Dirty is a predicate: has the raster changed since the last upload?
func (r *Raster) Dirty() bool {
	return r.dirty
}

// Version counts invalidations.
func (r *Raster) Version() uint64 {
	return r.version
}

// Upload hands the raster data to a consumer if it is dirty, and clears the
// dirty flag. It returns a copy of the data and true, or nil and false if
// nothing has changed.
func (r *Raster) Upload() ([]float32, bool) {
	if !r.dirty {
		return nil, false
	}
	r.dirty = false
	return append([]float32(nil), r.data...), true
}

// Sample looks up row at normalized path parameter u the way the deformation
// stage does: column u⋅W, interpolating linearly between neighbouring
// columns. u wraps around, as does the column after the last one.
func (r *Raster) Sample(u float64, row Row) Texel {
	w := float32(r.width)
	x := float32(u) * w
	x = math32.Mod(x, w)
	if x < 0 {
		x += w
	}
	i := math32.Floor(x)
	f := x - i
	col := int(i) % r.width
	return lerp(r.Texel(col, row), r.Texel((col+1)%r.width, row), f)
}
