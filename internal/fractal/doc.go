// Package fractal provides the escape-time primitives for power-iteration
// fractals.
//
// The package defines the value types every frame is computed from:
//
//   - [Params]: fractal kind, real exponent, Julia constant, iteration budget
//   - [Viewport]: mapping from terminal cells to the complex plane
//   - [Escape]: smoothed escape count of a single point, or [Bounded]
//
// # Example
//
//	p := fractal.DefaultParams()
//	vp := fractal.NewViewport(complex(-0.5, 0), 1, 80, 24)
//	e := p.EscapeAt(vp.PlanePoint(40, 12))
//
// # Determinism
//
// Every function in this package is pure. Identical Params and points always
// produce bit-identical escapes, and values derived from the exponent (escape
// radius, smoothing coefficients) are recomputed on each call rather than
// cached on the Params value.
package fractal
