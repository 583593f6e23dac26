package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandelterm/internal/palette"
	"github.com/san-kum/mandelterm/internal/rctx"
)

func color(c palette.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// RenderGrid converts a grid to styled lines. Runs of identical cells share
// one style so the output stays small.
func RenderGrid(g *rctx.Grid, mode rctx.Mode) string {
	if g == nil || g.Width == 0 {
		return ""
	}

	var b strings.Builder
	switch mode {
	case rctx.ModeHalfBlock:
		for row := 0; row < g.Height; row += 2 {
			top := g.Row(row)
			var bottom []palette.Color
			if row+1 < g.Height {
				bottom = g.Row(row + 1)
			}
			writeHalfLine(&b, top, bottom)
			if row+2 < g.Height {
				b.WriteByte('\n')
			}
		}
	default:
		for row := 0; row < g.Height; row++ {
			writeLine(&b, g.Row(row), mode)
			if row+1 < g.Height {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []palette.Color, mode rctx.Mode) {
	for start := 0; start < len(cells); {
		c := cells[start]
		end := start + 1
		for end < len(cells) && cells[end] == c {
			end++
		}
		if mode == rctx.ModeASCII {
			glyphs := strings.Repeat(string(palette.Glyph(c)), end-start)
			b.WriteString(lipgloss.NewStyle().Foreground(color(c)).Render(glyphs))
		} else {
			b.WriteString(lipgloss.NewStyle().Background(color(c)).Render(strings.Repeat(" ", end-start)))
		}
		start = end
	}
}

func writeHalfLine(b *strings.Builder, top, bottom []palette.Color) {
	lower := func(i int) palette.Color {
		if bottom == nil {
			return palette.Interior
		}
		return bottom[i]
	}
	for start := 0; start < len(top); {
		t, u := top[start], lower(start)
		end := start + 1
		for end < len(top) && top[end] == t && lower(end) == u {
			end++
		}
		style := lipgloss.NewStyle().Foreground(color(t)).Background(color(u))
		b.WriteString(style.Render(strings.Repeat("▀", end-start)))
		start = end
	}
}
