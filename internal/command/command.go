// Package command turns user intent into state changes.
//
// Every drawing backend reduces its raw key events to a normalized key name,
// looks the name up in the shared KeyMap and hands the resulting Command to
// an Interpreter. The Interpreter is the only place Viewport and Params are
// changed; a change that would leave either invalid is rejected and the old
// state kept.
package command

import (
	"fmt"

	"github.com/san-kum/mandelterm/internal/fractal"
)

type Command int

const (
	None Command = iota
	PanLeft
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
	IncreaseExponent
	DecreaseExponent
	SwitchFractalKind
	ToggleSmoothing
	IncreaseIterations
	DecreaseIterations
	Reset
	Screenshot
	Quit
)

var names = [...]string{
	None:               "none",
	PanLeft:            "pan-left",
	PanRight:           "pan-right",
	PanUp:              "pan-up",
	PanDown:            "pan-down",
	ZoomIn:             "zoom-in",
	ZoomOut:            "zoom-out",
	IncreaseExponent:   "exponent+",
	DecreaseExponent:   "exponent-",
	SwitchFractalKind:  "switch-kind",
	ToggleSmoothing:    "toggle-smoothing",
	IncreaseIterations: "iterations+",
	DecreaseIterations: "iterations-",
	Reset:              "reset",
	Screenshot:         "screenshot",
	Quit:               "quit",
}

func (c Command) String() string {
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// AppLevel reports commands handled by the application loop rather than by
// the Interpreter.
func (c Command) AppLevel() bool {
	return c == Quit || c == Screenshot
}

// State is the mutable part of a render context.
type State struct {
	Viewport fractal.Viewport
	Params   fractal.Params
}

func (s State) Validate() error {
	if err := s.Viewport.Validate(); err != nil {
		return err
	}
	return s.Params.Validate()
}
