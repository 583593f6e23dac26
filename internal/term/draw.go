package term

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/mandelterm/internal/palette"
	"github.com/san-kum/mandelterm/internal/rctx"
)

var (
	cyan   = tcell.StyleDefault.Foreground(tcell.PaletteColor(86))
	white  = tcell.StyleDefault.Foreground(tcell.PaletteColor(255))
	dim    = tcell.StyleDefault.Foreground(tcell.PaletteColor(242))
	yellow = tcell.StyleDefault.Foreground(tcell.PaletteColor(220))
	red    = tcell.StyleDefault.Foreground(tcell.PaletteColor(203))
)

// cellColor maps a palette color to the screen, falling back to the xterm
// 256 palette on terminals without direct color.
func cellColor(c palette.Color, truecolor bool) tcell.Color {
	if truecolor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(palette.To256(c)))
}

// drawGrid paints g from the top-left corner, using at most lines
// terminal lines.
func drawGrid(s tcell.Screen, g *rctx.Grid, mode rctx.Mode, truecolor bool, lines int) {
	if g == nil {
		return
	}
	col := func(c palette.Color) tcell.Color { return cellColor(c, truecolor) }
	interior := col(palette.Interior)

	switch mode {
	case rctx.ModeHalfBlock:
		for y := 0; y < lines && 2*y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				bottom := interior
				if 2*y+1 < g.Height {
					bottom = col(g.At(x, 2*y+1))
				}
				st := tcell.StyleDefault.Foreground(col(g.At(x, 2*y))).Background(bottom)
				s.SetContent(x, y, '▀', nil, st)
			}
		}
	case rctx.ModeASCII:
		for y := 0; y < lines && y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := g.At(x, y)
				st := tcell.StyleDefault.Foreground(col(c)).Background(interior)
				s.SetContent(x, y, palette.Glyph(c), nil, st)
			}
		}
	default:
		for y := 0; y < lines && y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				s.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(col(g.At(x, y))))
			}
		}
	}
}

// drawText writes text on line y starting at column x and returns the
// column after it. Text past the right edge is cut.
func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) int {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

func helpText(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
