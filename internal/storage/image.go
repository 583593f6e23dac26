package storage

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/san-kum/mandelterm/internal/rctx"
)

// CellPixels returns the pixel block one grid cell becomes, so terminal
// cells keep their shape in the image.
func CellPixels(cellAspect float64) (w, h int) {
	h = int(math.Round(cellAspect))
	if h < 1 {
		h = 1
	}
	return 1, h
}

// Image draws the grid with every cell as a cellW x cellH block.
func Image(g *rctx.Grid, cellW, cellH int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width*cellW, g.Height*cellH))
	for row := 0; row < g.Height; row++ {
		for col, c := range g.Row(row) {
			for dy := 0; dy < cellH; dy++ {
				off := img.PixOffset(col*cellW, row*cellH+dy)
				for dx := 0; dx < cellW; dx++ {
					px := img.Pix[off+4*dx : off+4*dx+4 : off+4*dx+4]
					px[0], px[1], px[2], px[3] = c.R, c.G, c.B, 0xff
				}
			}
		}
	}
	return img
}

func WritePNG(w io.Writer, g *rctx.Grid, cellW, cellH int) error {
	return png.Encode(w, Image(g, cellW, cellH))
}
