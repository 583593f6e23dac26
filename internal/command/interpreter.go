package command

import (
	"fmt"
	"math"

	"github.com/san-kum/mandelterm/internal/fractal"
)

// Steps are the increments applied per command.
type Steps struct {
	Pan        float64 // fraction of the visible half-width
	Zoom       float64 // factor applied to Viewport.Zoom
	Iterations int
	Exponent   float64
}

func DefaultSteps() Steps {
	return Steps{
		Pan:        0.25,
		Zoom:       2,
		Iterations: 25,
		Exponent:   0.01,
	}
}

func (s Steps) Validate() error {
	if !(s.Pan > 0) {
		return fmt.Errorf("command: pan step must be positive, got %g", s.Pan)
	}
	if !(s.Zoom > 1) {
		return fmt.Errorf("command: zoom step must exceed 1, got %g", s.Zoom)
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("command: iteration step must be positive, got %d", s.Iterations)
	}
	if !(s.Exponent > 0) {
		return fmt.Errorf("command: exponent step must be positive, got %g", s.Exponent)
	}
	return nil
}

// Interpreter applies commands to a State. Initial is what Reset restores;
// the grid dimensions of the current state are kept.
type Interpreter struct {
	Steps   Steps
	Initial State
}

func NewInterpreter(steps Steps, initial State) *Interpreter {
	return &Interpreter{Steps: steps, Initial: initial}
}

// Apply returns the state after cmd. If the result would be invalid it
// returns s unchanged together with an error wrapping
// fractal.ErrParameterBounds.
func (in *Interpreter) Apply(cmd Command, s State) (State, error) {
	next := s
	vp := &next.Viewport
	p := &next.Params

	switch cmd {
	case PanLeft:
		*vp = vp.Pan(-in.Steps.Pan, 0)
	case PanRight:
		*vp = vp.Pan(in.Steps.Pan, 0)
	case PanUp:
		*vp = vp.Pan(0, in.Steps.Pan)
	case PanDown:
		*vp = vp.Pan(0, -in.Steps.Pan)
	case ZoomIn:
		*vp = vp.Zoomed(1 / in.Steps.Zoom)
	case ZoomOut:
		*vp = vp.Zoomed(in.Steps.Zoom)
	case IncreaseExponent:
		p.Exponent = snapToStep(p.Exponent+in.Steps.Exponent, in.Steps.Exponent)
	case DecreaseExponent:
		p.Exponent = snapToStep(p.Exponent-in.Steps.Exponent, in.Steps.Exponent)
	case IncreaseIterations:
		p.MaxIterations += in.Steps.Iterations
	case DecreaseIterations:
		p.MaxIterations -= in.Steps.Iterations
	case ToggleSmoothing:
		p.Smoothing = !p.Smoothing
	case SwitchFractalKind:
		// Mandelbrot to Julia keeps the view and takes c from the center;
		// Julia to Mandelbrot moves the center to c.
		if p.Kind == fractal.Julia {
			*vp = vp.MoveTo(p.JuliaC)
		} else {
			p.JuliaC = vp.Center
		}
		p.Kind = p.Kind.Other()
	case Reset:
		w, h := vp.Width, vp.Height
		next = in.Initial
		next.Viewport = next.Viewport.Resized(w, h)
	default:
		return s, nil
	}

	if err := next.Validate(); err != nil {
		return s, fmt.Errorf("command %s: %w", cmd, err)
	}
	return next, nil
}

// snapToStep rounds v to the nearest multiple of step so repeated steps do
// not accumulate error. Decimal steps like 0.01 divide by the integer 1/step,
// which lands on the same float as the decimal literal.
func snapToStep(v, step float64) float64 {
	inv := 1 / step
	if r := math.Round(inv); r >= 1 && math.Abs(inv-r) < 1e-9 {
		return math.Round(v*r) / r
	}
	return math.Round(v/step) * step
}
