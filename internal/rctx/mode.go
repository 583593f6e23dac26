package rctx

import (
	"fmt"
	"strings"

	"github.com/san-kum/mandelterm/internal/fractal"
)

// Mode selects how grid cells become terminal cells.
type Mode int

const (
	// ModeBlock paints one grid cell per terminal cell as a colored space.
	ModeBlock Mode = iota
	// ModeHalfBlock packs two grid rows into each line with '▀', the upper
	// row as foreground and the lower as background.
	ModeHalfBlock
	// ModeASCII draws a lightness glyph per cell in the cell color.
	ModeASCII
)

func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeHalfBlock:
		return "halfblock"
	case ModeASCII:
		return "ascii"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "block", "":
		return ModeBlock, nil
	case "halfblock", "half":
		return ModeHalfBlock, nil
	case "ascii":
		return ModeASCII, nil
	}
	return 0, fmt.Errorf("unknown draw mode %q", s)
}

// RowsPerLine is how many grid rows one terminal line shows.
func (m Mode) RowsPerLine() int {
	if m == ModeHalfBlock {
		return 2
	}
	return 1
}

// CellAspect is the plane aspect of one grid cell when a terminal cell has
// the given aspect. Half blocks split a terminal cell vertically.
func (m Mode) CellAspect(terminal float64) float64 {
	if terminal <= 0 {
		terminal = fractal.DefaultCellAspect
	}
	return terminal / float64(m.RowsPerLine())
}

// GridSize returns the grid dimensions for a drawing area of cols x lines
// terminal cells, at least 1x1.
func (m Mode) GridSize(cols, lines int) (int, int) {
	return max(cols, 1), max(lines, 1) * m.RowsPerLine()
}
