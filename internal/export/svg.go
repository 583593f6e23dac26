package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/mandelterm/internal/palette"
	"github.com/san-kum/mandelterm/internal/rctx"
)

// GridToSVG draws every cell as a cellW x cellH rectangle. Horizontal runs
// of one color are merged into a single rect; interior cells are left to
// the black background.
func GridToSVG(g *rctx.Grid, cellW, cellH float64) string {
	if g == nil || g.Width == 0 || g.Height == 0 {
		return ""
	}

	width := float64(g.Width) * cellW
	height := float64(g.Height) * cellH

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, palette.Interior.Hex()))

	for row := 0; row < g.Height; row++ {
		cells := g.Row(row)
		for start := 0; start < len(cells); {
			c := cells[start]
			end := start + 1
			for end < len(cells) && cells[end] == c {
				end++
			}
			if c != palette.Interior {
				sb.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>
`, float64(start)*cellW, float64(row)*cellH, float64(end-start)*cellW, cellH, c.Hex()))
			}
			start = end
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// OrbitToSVG plots an orbit as a polyline over the square plane region
// [-extent, extent]², imaginary axis up.
func OrbitToSVG(orbit []complex128, extent float64, size int, strokeColor string) string {
	if len(orbit) < 2 || extent <= 0 || size <= 0 {
		return ""
	}

	scale := float64(size) / (2 * extent)
	toSVG := func(z complex128) (float64, float64) {
		return (real(z) + extent) * scale, (extent - imag(z)) * scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333"/>
<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#333333"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		size, size, size, size,
		extent*scale, size, extent*scale,
		extent*scale, extent*scale, size,
		strokeColor))

	for i, z := range orbit {
		x, y := toSVG(z)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
