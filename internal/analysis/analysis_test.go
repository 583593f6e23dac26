package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/ematrix"
	"github.com/san-kum/mandelterm/internal/fractal"
)

func matrixOf(values ...fractal.Escape) *ematrix.EMatrix {
	m := ematrix.New(len(values), 1)
	copy(m.Cells, values)
	return m
}

func TestHistogram(t *testing.T) {
	m := matrixOf(0, 5, 9.9, 10, 55, 100, fractal.Bounded, fractal.Bounded)
	h := NewHistogram(m, 10, 100)

	if len(h.Counts) != 10 || len(h.Edges) != 11 {
		t.Fatalf("unexpected shape %d counts %d edges", len(h.Counts), len(h.Edges))
	}
	if h.Bounded != 2 {
		t.Errorf("expected 2 bounded, got %d", h.Bounded)
	}
	want := []int{3, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i, c := range want {
		if h.Counts[i] != c {
			t.Errorf("bin %d: expected %d, got %d", i, c, h.Counts[i])
		}
	}
	if h.Edges[10] != 100 {
		t.Errorf("last edge should be 100, got %f", h.Edges[10])
	}
	if len(h.Series()) != 10 {
		t.Error("series length mismatch")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(matrixOf(2, 4, fractal.Bounded, 6))
	if s.Cells != 4 || s.Bounded != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.BoundedFrac != 0.25 || s.MinEscape != 2 || s.MaxEscape != 6 || s.MeanEscape != 4 {
		t.Errorf("unexpected stats %+v", s)
	}

	all := Summarize(matrixOf(fractal.Bounded, fractal.Bounded))
	if all.BoundedFrac != 1 || all.MinEscape != 0 || all.MaxEscape != 0 || all.MeanEscape != 0 {
		t.Errorf("all-bounded matrix should have zero escape stats, got %+v", all)
	}
}

func TestTimings(t *testing.T) {
	samples := make([]time.Duration, 0, 20)
	for i := 20; i >= 1; i-- {
		samples = append(samples, time.Duration(i)*time.Millisecond)
	}
	s := Timings(samples)

	if s.N != 20 || s.Min != time.Millisecond || s.Max != 20*time.Millisecond {
		t.Errorf("unexpected range %+v", s)
	}
	if s.P50 != 10*time.Millisecond {
		t.Errorf("expected p50 10ms, got %v", s.P50)
	}
	if s.P95 != 19*time.Millisecond {
		t.Errorf("expected p95 19ms, got %v", s.P95)
	}
	if s.Mean != 10500*time.Microsecond {
		t.Errorf("expected mean 10.5ms, got %v", s.Mean)
	}
	if samples[0] != 20*time.Millisecond {
		t.Error("Timings must not reorder its input")
	}

	if (Timings(nil) != TimingStats{}) {
		t.Error("no samples should give zero stats")
	}
	if ms := Millis([]time.Duration{1500 * time.Microsecond}); ms[0] != 1.5 {
		t.Errorf("expected 1.5ms, got %v", ms[0])
	}
}

func TestExponentSweep(t *testing.T) {
	vp := fractal.NewViewport(complex(-0.3, 0), 1, 40, 12)
	p := fractal.DefaultParams()

	points, err := ExponentSweep(context.Background(), compute.NewSerialBackend(), vp, p, 2, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, want := range []float64{2, 3, 4} {
		if math.Abs(points[i].Exponent-want) > 1e-12 {
			t.Errorf("point %d: exponent %f, want %f", i, points[i].Exponent, want)
		}
		if points[i].BoundedFrac <= 0 || points[i].BoundedFrac >= 1 {
			t.Errorf("point %d: bounded share %f should be strictly between 0 and 1", i, points[i].BoundedFrac)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExponentSweep(ctx, compute.NewSerialBackend(), vp, p, 2, 3, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
