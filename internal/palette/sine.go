package palette

import "math"

// Channel is one sinusoidal color component: Base + Amplitude*sin(2πφ + Shift).
type Channel struct {
	Base      float64
	Amplitude float64
	Shift     float64
}

func (ch Channel) at(turn float64) uint8 {
	return saturate(ch.Base + ch.Amplitude*math.Sin(turn+ch.Shift))
}

// Sine is a palette built from three independent sine channels.
type Sine struct {
	name  string
	Cycle Cycle
	R     Channel
	G     Channel
	B     Channel
}

func (s *Sine) Name() string { return s.name }

func (s *Sine) Color(v float64) Color {
	turn := 2 * math.Pi * s.Cycle.Phase(v)
	return Color{R: s.R.at(turn), G: s.G.at(turn), B: s.B.at(turn)}
}

// Sunset cycles through muted browns, plums and dusty blues.
func Sunset(c Cycle) Palette {
	return &Sine{
		name:  "sunset",
		Cycle: c,
		R:     Channel{Base: 120, Amplitude: 100, Shift: 9 * math.Pi / 6},
		G:     Channel{Base: 110, Amplitude: 90, Shift: 10 * math.Pi / 6},
		B:     Channel{Base: 120, Amplitude: 100, Shift: 11 * math.Pi / 6},
	}
}

func Ocean(c Cycle) Palette {
	return &Sine{
		name:  "ocean",
		Cycle: c,
		R:     Channel{Base: 70, Amplitude: 60, Shift: 0},
		G:     Channel{Base: 120, Amplitude: 80, Shift: math.Pi / 3},
		B:     Channel{Base: 170, Amplitude: 80, Shift: 2 * math.Pi / 3},
	}
}

func Mono(c Cycle) Palette {
	ch := Channel{Base: 135, Amplitude: 110}
	return &Sine{name: "mono", Cycle: c, R: ch, G: ch, B: ch}
}

func saturate(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
