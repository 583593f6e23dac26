package fractal

import (
	"fmt"
	"math"
	"strings"
)

type Kind int

const (
	Mandelbrot Kind = iota
	Julia
)

func (k Kind) String() string {
	switch k {
	case Mandelbrot:
		return "mandelbrot"
	case Julia:
		return "julia"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Other returns the kind SwitchFractalKind flips to.
func (k Kind) Other() Kind {
	if k == Julia {
		return Mandelbrot
	}
	return Julia
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mandelbrot", "m", "":
		return Mandelbrot, nil
	case "julia", "j":
		return Julia, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Escape is the smoothed iteration count at which an orbit left the escape
// radius, in [0, MaxIterations]. Points that never escaped hold Bounded.
type Escape float64

// Bounded marks a point presumed to lie in the set.
const Bounded Escape = -1

func (e Escape) Escaped() bool { return e >= 0 }

const (
	DefaultExponent      = 2.0
	DefaultMaxIterations = 100
	BaseEscapeRadius     = 2.0
)

// DefaultJuliaC is used when a Julia set is requested without a constant.
var DefaultJuliaC = complex(-0.8, 0.156)

// Params are the fractal parameters of one frame. The value is copied into
// each frame snapshot, so it must stay free of reference types.
type Params struct {
	Kind          Kind
	Exponent      float64
	JuliaC        complex128
	MaxIterations int
	Smoothing     bool
}

func DefaultParams() Params {
	return Params{
		Kind:          Mandelbrot,
		Exponent:      DefaultExponent,
		JuliaC:        DefaultJuliaC,
		MaxIterations: DefaultMaxIterations,
		Smoothing:     true,
	}
}

func (p Params) Validate() error {
	if math.IsNaN(p.Exponent) || math.IsInf(p.Exponent, 0) || p.Exponent <= 1 {
		return &BoundsError{Field: "exponent", Value: p.Exponent}
	}
	if p.MaxIterations <= 0 {
		return &BoundsError{Field: "max_iterations", Value: float64(p.MaxIterations)}
	}
	if p.Kind != Mandelbrot && p.Kind != Julia {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(p.Kind))
	}
	if p.Kind == Julia && !finite(p.JuliaC) {
		return &BoundsError{Field: "julia_c", Value: real(p.JuliaC)}
	}
	return nil
}

func finite(z complex128) bool {
	re, im := real(z), imag(z)
	return !math.IsNaN(re) && !math.IsInf(re, 0) && !math.IsNaN(im) && !math.IsInf(im, 0)
}
