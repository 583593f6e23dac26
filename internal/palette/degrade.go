package palette

import colorful "github.com/lucasb-eyer/go-colorful"

// xterm color cube levels for indices 16-231.
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

func cubeStep(v uint8) int {
	best, bestDist := 0, 256
	for i, l := range cubeLevels {
		if d := absInt(int(v) - l); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// To256 returns the nearest xterm-256 palette index, preferring the
// grayscale ramp (232-255) for near-neutral colors when it is closer.
func To256(c Color) uint8 {
	r, g, b := cubeStep(c.R), cubeStep(c.G), cubeStep(c.B)
	cube := uint8(16 + 36*r + 6*g + b)

	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	spread := max(absInt(int(c.R)-gray), absInt(int(c.G)-gray), absInt(int(c.B)-gray))
	if spread >= 10 || gray < 4 || gray > 243 {
		return cube
	}

	step := (gray - 8) / 10
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	level := 8 + 10*step
	grayDist := absInt(int(c.R)-level) + absInt(int(c.G)-level) + absInt(int(c.B)-level)
	cubeDist := absInt(int(c.R)-cubeLevels[r]) + absInt(int(c.G)-cubeLevels[g]) + absInt(int(c.B)-cubeLevels[b])
	if grayDist < cubeDist {
		return uint8(232 + step)
	}
	return cube
}

// glyphRamp runs from faint to dense. The space is kept for Interior.
const glyphRamp = ".:-=+*#%@"

// Glyph picks a character for character-art rendering by perceptual
// lightness. Interior maps to a space.
func Glyph(c Color) rune {
	if c == Interior {
		return ' '
	}
	l, _, _ := toColorful(c).Lab()
	i := int(l * float64(len(glyphRamp)))
	if i < 0 {
		i = 0
	}
	if i >= len(glyphRamp) {
		i = len(glyphRamp) - 1
	}
	return rune(glyphRamp[i])
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
