package raster

// Names of the uniforms handed to the deformation stage.
const (
	SpineOffset = "spineOffset" // mesh-space offset, -min along the dominant axis
	SpineLength = "spineLength" // mesh extent along the dominant axis
	PathSegment = "pathSegment" // mesh length ÷ spline length
	PathOffset  = "pathOffset"  // progress ∈ [0,1)
)

// UniformTarget receives scalar uniform values.
type UniformTarget interface {
	SetUniform(name string, v float64)
}

// Uniforms holds the scalar parameters of the deformation stage. Values set
// before a target is bound are buffered and flushed on Bind, in the order
// they were first set.
type Uniforms struct {
	values map[string]float64
	order  []string
	target UniformTarget
	queued map[string]bool
}

// NewUniforms creates an unbound uniform set.
func NewUniforms() *Uniforms {
	return &Uniforms{
		values: make(map[string]float64),
		queued: make(map[string]bool),
	}
}

// Set updates a uniform. Without a bound target, the value is buffered.
func (u *Uniforms) Set(name string, v float64) {
	if _, known := u.values[name]; !known {
		u.order = append(u.order, name)
	}
	u.values[name] = v
	if u.target == nil {
		if !u.queued[name] {
			tracer().Debugf("buffering uniform value %s", name)
		}
		u.queued[name] = true
		return
	}
	u.target.SetUniform(name, v)
}

// Value returns the current value of a uniform and whether it has been set.
func (u *Uniforms) Value(name string) (float64, bool) {
	v, ok := u.values[name]
	return v, ok
}

// Buffered returns the number of uniforms waiting for a target.
func (u *Uniforms) Buffered() int {
	return len(u.queued)
}

// Bind connects a target and flushes buffered values. Binding again replaces
// the target; nothing is flushed then, as the buffer is empty.
func (u *Uniforms) Bind(t UniformTarget) {
	u.target = t
	for _, name := range u.order {
		if u.queued[name] {
			t.SetUniform(name, u.values[name])
		}
	}
	u.queued = make(map[string]bool)
}

// Unbind disconnects the target.
func (u *Uniforms) Unbind() {
	u.target = nil
}
