package spline

import (
	"fmt"
	"strings"
)

// Mode is a parametrization mode, controlling how the curve parameter maps
// to knot spacing.
type Mode int8

// Parametrization modes. The zero value is Centripetal.
const (
	Centripetal Mode = iota
	Chordal
	Uniform
)

func (m Mode) String() string {
	switch m {
	case Centripetal:
		return "centripetal"
	case Chordal:
		return "chordal"
	case Uniform:
		return "uniform"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// ParseMode returns the mode for a name. Names are case-insensitive;
// "catmullrom" is accepted as an alias for Uniform.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "centripetal", "":
		return Centripetal, nil
	case "chordal":
		return Chordal, nil
	case "uniform", "catmullrom":
		return Uniform, nil
	}
	return Centripetal, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler, used by the configuration codecs.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// exponent applied to squared knot distances to get knot intervals.
func (m Mode) exponent() float64 {
	if m == Chordal {
		return 0.5
	}
	return 0.25
}
