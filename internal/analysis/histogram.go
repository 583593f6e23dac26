package analysis

import (
	"math"

	"github.com/san-kum/mandelterm/internal/ematrix"
)

type Histogram struct {
	Edges   []float64 // len(Counts)+1 bin edges
	Counts  []int
	Bounded int
}

// NewHistogram bins the escaped cells of m into equal-width bins over
// [0, maxIterations]. Bounded cells are counted separately.
func NewHistogram(m *ematrix.EMatrix, bins, maxIterations int) Histogram {
	if bins < 1 {
		bins = 1
	}
	h := Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	width := float64(maxIterations) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = float64(i) * width
	}

	for _, e := range m.Cells {
		if !e.Escaped() {
			h.Bounded++
			continue
		}
		i := int(float64(e) / width)
		if i >= bins {
			i = bins - 1
		}
		h.Counts[i]++
	}
	return h
}

// Series returns the counts as float64 values for plotting.
func (h Histogram) Series() []float64 {
	s := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		s[i] = float64(c)
	}
	return s
}

type MatrixStats struct {
	Cells       int
	Bounded     int
	BoundedFrac float64
	MinEscape   float64
	MaxEscape   float64
	MeanEscape  float64
}

func Summarize(m *ematrix.EMatrix) MatrixStats {
	s := MatrixStats{
		Cells:     len(m.Cells),
		MinEscape: math.Inf(1),
		MaxEscape: math.Inf(-1),
	}
	sum := 0.0
	for _, e := range m.Cells {
		if !e.Escaped() {
			s.Bounded++
			continue
		}
		v := float64(e)
		sum += v
		s.MinEscape = math.Min(s.MinEscape, v)
		s.MaxEscape = math.Max(s.MaxEscape, v)
	}
	escaped := s.Cells - s.Bounded
	if escaped > 0 {
		s.MeanEscape = sum / float64(escaped)
	} else {
		s.MinEscape, s.MaxEscape = 0, 0
	}
	if s.Cells > 0 {
		s.BoundedFrac = float64(s.Bounded) / float64(s.Cells)
	}
	return s
}
