// Package palette maps smoothed escape values to colors.
//
// A palette is a periodic function of the escape value itself: the phase
// frac(v*Frequency + Offset) selects a point on a color cycle. Because the
// phase never looks at the iteration budget, raising MaxIterations leaves
// the colors of already-escaped cells alone.
//
// Interior (black) is reserved for Bounded cells; Map never returns it for
// an escaped value.
package palette

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/mandelterm/internal/fractal"
)

var ErrUnknownPalette = errors.New("palette: unknown palette")

// Color is a 24-bit RGB cell color. It implements image/color.Color.
type Color struct {
	R, G, B uint8
}

// Interior is the color of cells that never escaped.
var Interior = Color{}

// nearBlack replaces a palette result that collides with Interior.
var nearBlack = Color{R: 8, G: 8, B: 8}

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex formats the color as #rrggbb, the form lipgloss accepts.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette colors a smoothed escape value.
type Palette interface {
	Name() string
	Color(v float64) Color
}

// Cycle controls how fast a palette wraps around.
type Cycle struct {
	Frequency float64 // cycles per unit of escape value
	Offset    float64 // phase shift, in cycles
}

func DefaultCycle() Cycle {
	return Cycle{Frequency: 0.025, Offset: 0}
}

// Phase returns frac(v*Frequency + Offset) in [0, 1).
func (c Cycle) Phase(v float64) float64 {
	p := math.Mod(v*c.Frequency+c.Offset, 1)
	if p < 0 {
		p++
	}
	if p >= 1 || math.IsNaN(p) {
		return 0
	}
	return p
}

// Map colors one escape. Bounded cells get Interior.
func Map(p Palette, e fractal.Escape) Color {
	if !e.Escaped() {
		return Interior
	}
	c := p.Color(float64(e))
	if c == Interior {
		return nearBlack
	}
	return c
}

var palettes = map[string]func(Cycle) Palette{
	"sunset": Sunset,
	"ocean":  Ocean,
	"ember":  Ember,
	"dusk":   Dusk,
	"mono":   Mono,
}

const DefaultName = "sunset"

// ByName builds a named palette. A zero cycle selects DefaultCycle.
func ByName(name string, cycle Cycle) (Palette, error) {
	if name == "" {
		name = DefaultName
	}
	build, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	if cycle.Frequency == 0 {
		cycle.Frequency = DefaultCycle().Frequency
	}
	return build(cycle), nil
}

func Default() Palette {
	return Sunset(DefaultCycle())
}

// Names lists the registered palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
