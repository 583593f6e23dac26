package rctx

import (
	"context"
	"time"

	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/ematrix"
	"github.com/san-kum/mandelterm/internal/fractal"
	"github.com/san-kum/mandelterm/internal/palette"
)

// Grid is the colored cell grid handed to drawing surfaces, the screenshot
// store and the exporters. Row-major, row 0 at the top.
type Grid struct {
	Width  int
	Height int
	Cells  []palette.Color
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]palette.Color, width*height),
	}
}

func (g *Grid) At(col, row int) palette.Color {
	return g.Cells[row*g.Width+col]
}

func (g *Grid) Row(row int) []palette.Color {
	return g.Cells[row*g.Width : (row+1)*g.Width]
}

func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i, c := range g.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}

// Options carry the coloring configuration of a frame. A zero Options
// renders with the default palette, no blur and the active backend.
type Options struct {
	Palette palette.Palette
	Blur    ematrix.Blur
	Backend compute.Backend
}

func DefaultOptions() Options {
	return Options{
		Palette: palette.Default(),
		Blur:    ematrix.DefaultBlur(),
	}
}

// Frame is one finished render. It is never modified after RenderFrame
// returns it.
type Frame struct {
	Viewport fractal.Viewport
	Params   fractal.Params
	Grid     *Grid
	Matrix   *ematrix.EMatrix
	Elapsed  time.Duration
}

// RenderFrame runs the whole pipeline for one state: escape matrix, blur
// when smoothing is on, then color mapping. It keeps no state between calls;
// identical inputs give identical grids.
func RenderFrame(ctx context.Context, vp fractal.Viewport, params fractal.Params, opts Options) (*Frame, error) {
	start := time.Now()

	backend := opts.Backend
	if backend == nil {
		backend = compute.GetBackend()
	}
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}

	m, err := ematrix.Build(ctx, backend, vp, params)
	if err != nil {
		return nil, err
	}

	values := m
	if params.Smoothing && opts.Blur.Enabled() {
		values, err = opts.Blur.Apply(ctx, backend, m)
		if err != nil {
			return nil, err
		}
	}

	grid := NewGrid(vp.Width, vp.Height)
	err = backend.Rows(ctx, vp.Height, func(row int) {
		src := values.Row(row)
		dst := grid.Row(row)
		for col, e := range src {
			dst[col] = palette.Map(pal, e)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Frame{
		Viewport: vp,
		Params:   params,
		Grid:     grid,
		Matrix:   m,
		Elapsed:  time.Since(start),
	}, nil
}
