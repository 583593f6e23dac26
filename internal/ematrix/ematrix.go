// Package ematrix builds escape matrices for a viewport and smooths them
// with a Gaussian blur.
package ematrix

import (
	"context"

	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/fractal"
)

// EMatrix maps the cells of a frame to their evaluated escapes, row-major.
type EMatrix struct {
	Width  int
	Height int
	Cells  []fractal.Escape
}

func New(width, height int) *EMatrix {
	return &EMatrix{
		Width:  width,
		Height: height,
		Cells:  make([]fractal.Escape, width*height),
	}
}

func (m *EMatrix) At(col, row int) fractal.Escape {
	return m.Cells[row*m.Width+col]
}

func (m *EMatrix) Set(col, row int, e fractal.Escape) {
	m.Cells[row*m.Width+col] = e
}

func (m *EMatrix) Row(row int) []fractal.Escape {
	return m.Cells[row*m.Width : (row+1)*m.Width]
}

func (m *EMatrix) Clone() *EMatrix {
	c := New(m.Width, m.Height)
	copy(c.Cells, m.Cells)
	return c
}

// Equal reports whether both matrices hold bit-identical escapes.
func (m *EMatrix) Equal(other *EMatrix) bool {
	if m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i, e := range m.Cells {
		if e != other.Cells[i] {
			return false
		}
	}
	return true
}

// Bounded counts the cells that never escaped.
func (m *EMatrix) Bounded() int {
	n := 0
	for _, e := range m.Cells {
		if !e.Escaped() {
			n++
		}
	}
	return n
}

// Build evaluates every cell of vp. Each row is independent and is handed to
// the backend as one work item. Past validation, the only error is a
// cancelled context.
func Build(ctx context.Context, backend compute.Backend, vp fractal.Viewport, params fractal.Params) (*EMatrix, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		backend = compute.GetBackend()
	}

	ev := params.Evaluator()
	m := New(vp.Width, vp.Height)

	err := backend.Rows(ctx, vp.Height, func(row int) {
		cells := m.Row(row)
		for col := range cells {
			cells[col] = ev.Escape(vp.PlanePoint(col, row))
		}
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
