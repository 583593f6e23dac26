package fractal

import "math"

const (
	// BaseHalfWidth is the visible real half-width at zoom 1.
	BaseHalfWidth = 2.0

	// DefaultCellAspect is the vertical pitch of a terminal cell relative to
	// its width.
	DefaultCellAspect = 2.0
)

// Viewport maps a grid of Width x Height cells onto the complex plane.
// Row 0 is the top of the grid and the imaginary axis points up.
type Viewport struct {
	Center     complex128
	Zoom       float64
	Width      int
	Height     int
	CellAspect float64
}

func NewViewport(center complex128, zoom float64, width, height int) Viewport {
	return Viewport{
		Center:     center,
		Zoom:       zoom,
		Width:      width,
		Height:     height,
		CellAspect: DefaultCellAspect,
	}
}

func (v Viewport) Validate() error {
	if !(v.Zoom > 0) || math.IsInf(v.Zoom, 0) {
		return &BoundsError{Field: "zoom", Value: v.Zoom}
	}
	if v.Width <= 0 {
		return &BoundsError{Field: "width", Value: float64(v.Width)}
	}
	if v.Height <= 0 {
		return &BoundsError{Field: "height", Value: float64(v.Height)}
	}
	if !(v.CellAspect > 0) || math.IsInf(v.CellAspect, 0) {
		return &BoundsError{Field: "cell_aspect", Value: v.CellAspect}
	}
	if !finite(v.Center) {
		return &BoundsError{Field: "center", Value: real(v.Center)}
	}
	return nil
}

// HalfWidth is the visible real half-range; zoom multiplies it.
func (v Viewport) HalfWidth() float64 { return BaseHalfWidth * v.Zoom }

// Step is the real distance between adjacent column centers.
func (v Viewport) Step() float64 { return 2 * v.HalfWidth() / float64(v.Width) }

// RowStep is the imaginary distance between adjacent row centers. Cells are
// CellAspect times taller than wide, so each row covers that much more plane.
func (v Viewport) RowStep() float64 { return v.Step() * v.CellAspect }

// HalfHeight is the visible imaginary half-range.
func (v Viewport) HalfHeight() float64 { return v.RowStep() * float64(v.Height) / 2 }

// PlanePoint returns the plane value at the center of cell (col, row).
func (v Viewport) PlanePoint(col, row int) complex128 {
	re := real(v.Center) + (float64(col)+0.5-float64(v.Width)/2)*v.Step()
	im := imag(v.Center) - (float64(row)+0.5-float64(v.Height)/2)*v.RowStep()
	return complex(re, im)
}

// CellOf is the inverse of PlanePoint. ok is false when z falls outside the
// grid.
func (v Viewport) CellOf(z complex128) (col, row int, ok bool) {
	fc := (real(z)-real(v.Center))/v.Step() + float64(v.Width)/2
	fr := (imag(v.Center)-imag(z))/v.RowStep() + float64(v.Height)/2
	col = int(math.Floor(fc))
	row = int(math.Floor(fr))
	ok = col >= 0 && col < v.Width && row >= 0 && row < v.Height
	return col, row, ok
}

// Bounds returns the top-left and bottom-right corners of the visible region.
func (v Viewport) Bounds() (topLeft, bottomRight complex128) {
	hw, hh := v.HalfWidth(), v.HalfHeight()
	topLeft = complex(real(v.Center)-hw, imag(v.Center)+hh)
	bottomRight = complex(real(v.Center)+hw, imag(v.Center)-hh)
	return topLeft, bottomRight
}

// Pan moves the center by fractions of the visible half-width. Both axes use
// the same plane distance; positive dy moves up.
func (v Viewport) Pan(dx, dy float64) Viewport {
	d := v.HalfWidth()
	v.Center += complex(dx*d, dy*d)
	return v
}

func (v Viewport) Zoomed(factor float64) Viewport {
	v.Zoom *= factor
	return v
}

func (v Viewport) MoveTo(c complex128) Viewport {
	v.Center = c
	return v
}

func (v Viewport) Resized(width, height int) Viewport {
	v.Width = width
	v.Height = height
	return v
}

// Scaled returns a viewport covering the same plane region with width
// columns of the given aspect, e.g. square image pixels for a screenshot.
func (v Viewport) Scaled(width int, cellAspect float64) Viewport {
	span := 2 * v.HalfHeight()
	out := v
	out.Width = width
	out.CellAspect = cellAspect
	h := int(math.Round(span / out.RowStep()))
	if h < 1 {
		h = 1
	}
	out.Height = h
	return out
}
