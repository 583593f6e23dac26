package rctx

import (
	"fmt"
	"time"

	"github.com/san-kum/mandelterm/internal/fractal"
)

// HUDField is one label/value pair of the status line.
type HUDField struct {
	Label string
	Value string
}

// HUD describes a frame for display. draw is the time the backend spent
// turning the grid into terminal output.
func HUD(f *Frame, draw time.Duration) []HUDField {
	if f == nil {
		return nil
	}
	p, vp := f.Params, f.Viewport

	fields := []HUDField{{"fn", p.Kind.String()}}
	if p.Kind == fractal.Julia {
		fields = append(fields, HUDField{"c", fmt.Sprintf("%.4f%+.4fi", real(p.JuliaC), imag(p.JuliaC))})
	}
	smooth := "off"
	if p.Smoothing {
		smooth = "on"
	}
	return append(fields,
		HUDField{"exp", fmt.Sprintf("%.3f", p.Exponent)},
		HUDField{"re", fmt.Sprintf("%.10f", real(vp.Center))},
		HUDField{"im", fmt.Sprintf("%.10f", imag(vp.Center))},
		HUDField{"zoom", fmt.Sprintf("%.3e", vp.Zoom)},
		HUDField{"iter", fmt.Sprintf("%d", p.MaxIterations)},
		HUDField{"smooth", smooth},
		HUDField{"render", fmt.Sprintf("%dms", f.Elapsed.Milliseconds())},
		HUDField{"draw", fmt.Sprintf("%dms", draw.Milliseconds())},
	)
}
