package analysis

import (
	"context"

	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/ematrix"
	"github.com/san-kum/mandelterm/internal/fractal"
)

type SweepPoint struct {
	Exponent    float64
	BoundedFrac float64
	MeanEscape  float64
}

// ExponentSweep renders the view at steps evenly spaced exponents in
// [lo, hi] and records how much of it stays bounded.
func ExponentSweep(ctx context.Context, backend compute.Backend, vp fractal.Viewport, params fractal.Params, lo, hi float64, steps int) ([]SweepPoint, error) {
	if steps < 2 {
		steps = 2
	}
	step := (hi - lo) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		p := params
		p.Exponent = lo + float64(i)*step
		m, err := ematrix.Build(ctx, backend, vp, p)
		if err != nil {
			return nil, err
		}
		s := Summarize(m)
		points = append(points, SweepPoint{
			Exponent:    p.Exponent,
			BoundedFrac: s.BoundedFrac,
			MeanEscape:  s.MeanEscape,
		})
	}
	return points, nil
}
