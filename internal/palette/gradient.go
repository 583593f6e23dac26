package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient walks a closed loop of color stops, blending neighbors in HCL so
// lightness changes evenly between stops.
type Gradient struct {
	name  string
	Cycle Cycle
	Stops []colorful.Color
}

func NewGradient(name string, c Cycle, hexStops ...string) (*Gradient, error) {
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		col, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette %s: stop %d: %w", name, i, err)
		}
		stops[i] = col
	}
	return &Gradient{name: name, Cycle: c, Stops: stops}, nil
}

// mustGradient is for the built-in palettes, whose stops are constants.
func mustGradient(name string, c Cycle, hexStops ...string) *Gradient {
	g, err := NewGradient(name, c, hexStops...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Gradient) Name() string { return g.name }

func (g *Gradient) Color(v float64) Color {
	if len(g.Stops) == 0 {
		return nearBlack
	}
	pos := g.Cycle.Phase(v) * float64(len(g.Stops))
	i := int(pos)
	if i >= len(g.Stops) {
		i = len(g.Stops) - 1
	}
	t := pos - float64(i)
	a := g.Stops[i]
	b := g.Stops[(i+1)%len(g.Stops)]
	r, gg, bb := a.BlendHcl(b, t).Clamped().RGB255()
	return Color{R: r, G: gg, B: bb}
}

func Ember(c Cycle) Palette {
	return mustGradient("ember", c, "#2b1a12", "#7a3b1d", "#c7772e", "#f2d08a", "#8c5a3c")
}

func Dusk(c Cycle) Palette {
	return mustGradient("dusk", c, "#1d2b4a", "#3f5e8c", "#a3b8c9", "#b08a6e", "#5a3b3b")
}
