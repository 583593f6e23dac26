package ematrix

import (
	"context"
	"math"

	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/fractal"
)

// Blur is a separable Gaussian filter over escape values.
//
// Edge policy: taps outside the matrix and taps on Bounded cells are dropped
// and the remaining weights renormalized. An escaped cell therefore only
// averages escaped neighbors, and its value never depends on the iteration
// budget. Bounded cells stay Bounded.
type Blur struct {
	Radius int
	Sigma  float64
}

func DefaultBlur() Blur {
	return Blur{Radius: 1, Sigma: 0.6}
}

// Enabled is false for a zero radius or sigma, where Apply is an identity.
func (b Blur) Enabled() bool {
	return b.Radius > 0 && b.Sigma > 0
}

// Kernel returns the unnormalized 1D weights for offsets -Radius..Radius.
func (b Blur) Kernel() []float64 {
	if !b.Enabled() {
		return []float64{1}
	}
	k := make([]float64, 2*b.Radius+1)
	s2 := 2 * b.Sigma * b.Sigma
	for i := range k {
		d := float64(i - b.Radius)
		k[i] = math.Exp(-d * d / s2)
	}
	return k
}

// Apply returns a new blurred matrix; m is not modified.
func (b Blur) Apply(ctx context.Context, backend compute.Backend, m *EMatrix) (*EMatrix, error) {
	if !b.Enabled() {
		return m.Clone(), nil
	}
	if backend == nil {
		backend = compute.GetBackend()
	}

	w, h, r := m.Width, m.Height, b.Radius
	kernel := b.Kernel()

	// The horizontal pass keeps the weighted sum and the weight of the
	// escaped taps separately so the vertical pass can renormalize over
	// the full 2D window.
	sums := make([]float64, w*h)
	weights := make([]float64, w*h)
	err := backend.Rows(ctx, h, func(row int) {
		src := m.Row(row)
		for col := 0; col < w; col++ {
			var sum, wsum float64
			for k := -r; k <= r; k++ {
				c := col + k
				if c < 0 || c >= w || !src[c].Escaped() {
					continue
				}
				wt := kernel[k+r]
				sum += wt * float64(src[c])
				wsum += wt
			}
			sums[row*w+col] = sum
			weights[row*w+col] = wsum
		}
	})
	if err != nil {
		return nil, err
	}

	out := New(w, h)
	err = backend.Rows(ctx, h, func(row int) {
		src := m.Row(row)
		dst := out.Row(row)
		for col := range dst {
			if !src[col].Escaped() {
				dst[col] = fractal.Bounded
				continue
			}
			var sum, wsum float64
			for k := -r; k <= r; k++ {
				rr := row + k
				if rr < 0 || rr >= h {
					continue
				}
				wt := kernel[k+r]
				sum += wt * sums[rr*w+col]
				wsum += wt * weights[rr*w+col]
			}
			// wsum > 0: the cell itself is an escaped tap.
			dst[col] = clampEscape(sum/wsum, float64(src[col]))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// clampEscape keeps rounding from pushing a weighted mean below zero. own is
// returned for a degenerate window.
func clampEscape(v, own float64) fractal.Escape {
	if math.IsNaN(v) {
		return fractal.Escape(own)
	}
	if v < 0 {
		return 0
	}
	return fractal.Escape(v)
}
