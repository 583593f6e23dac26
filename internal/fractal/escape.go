package fractal

import (
	"math"
	"math/cmplx"
)

// maxIntExponent bounds the repeated-multiplication fast path.
const maxIntExponent = 8

// Radius returns the escape radius for the exponent and kind. Once |z|
// exceeds it, |z|^(p-1) > 2 and |z| >= |c| hold, so the orbit diverges.
func (p Params) Radius() float64 {
	r := math.Max(BaseEscapeRadius, math.Pow(2, 1/(p.Exponent-1)))
	if p.Kind == Julia {
		r = math.Max(r, cmplx.Abs(p.JuliaC))
	}
	return r
}

// Evaluator holds the constants derived from one Params value. Build a new
// one for every frame; it is read-only and safe for concurrent use.
type Evaluator struct {
	params  Params
	radius2 float64
	logR    float64
	logP    float64
	intExp  int
}

func (p Params) Evaluator() *Evaluator {
	r := p.Radius()
	ev := &Evaluator{
		params:  p,
		radius2: r * r,
		logR:    math.Log(r),
		logP:    math.Log(p.Exponent),
	}
	if p.Exponent == math.Trunc(p.Exponent) && p.Exponent <= maxIntExponent {
		ev.intExp = int(p.Exponent)
	}
	return ev
}

func (ev *Evaluator) Params() Params { return ev.params }

// EscapeAt evaluates a single plane point.
func (p Params) EscapeAt(point complex128) Escape {
	return p.Evaluator().Escape(point)
}

// Escape evaluates the point according to the fractal kind: the orbit of 0
// with c = point for Mandelbrot, the orbit of point with c = JuliaC for Julia.
func (ev *Evaluator) Escape(point complex128) Escape {
	if ev.params.Kind == Julia {
		return ev.Iterate(point, ev.params.JuliaC)
	}
	return ev.Iterate(0, point)
}

// Iterate runs z = z^p + c from z0 for at most MaxIterations steps.
func (ev *Evaluator) Iterate(z0, c complex128) Escape {
	z := z0
	limit := ev.params.MaxIterations
	for n := 1; n <= limit; n++ {
		z = ev.pow(z) + c
		re, im := real(z), imag(z)
		m2 := re*re + im*im
		if math.IsNaN(m2) || math.IsInf(m2, 0) {
			return ev.clamp(float64(n))
		}
		if m2 > ev.radius2 {
			return ev.smooth(n, m2)
		}
	}
	return Bounded
}

// smooth refines the integer escape step n with the normalized iteration
// count n - log(log|z| / log R) / log p.
func (ev *Evaluator) smooth(n int, m2 float64) Escape {
	if !ev.params.Smoothing {
		return ev.clamp(float64(n))
	}
	logZ := 0.5 * math.Log(m2)
	nu := float64(n) - math.Log(logZ/ev.logR)/ev.logP
	if math.IsNaN(nu) {
		nu = float64(n)
	}
	return ev.clamp(nu)
}

func (ev *Evaluator) clamp(v float64) Escape {
	if v < 0 {
		return 0
	}
	if hi := float64(ev.params.MaxIterations); v > hi {
		return Escape(hi)
	}
	return Escape(v)
}

func (ev *Evaluator) pow(z complex128) complex128 {
	switch ev.intExp {
	case 2:
		return z * z
	case 3:
		return z * z * z
	}
	if ev.intExp > 3 {
		w := z
		for i := 1; i < ev.intExp; i++ {
			w *= z
		}
		return w
	}

	re, im := real(z), imag(z)
	r2 := re*re + im*im
	if r2 == 0 {
		return 0
	}
	rp := math.Pow(r2, ev.params.Exponent/2)
	s, c := math.Sincos(math.Atan2(im, re) * ev.params.Exponent)
	return complex(rp*c, rp*s)
}

// Orbit returns the visited values z_0 .. z_n for point, ending with the
// first value outside the escape radius or after MaxIterations steps.
func (ev *Evaluator) Orbit(point complex128) []complex128 {
	z, c := complex128(0), point
	if ev.params.Kind == Julia {
		z, c = point, ev.params.JuliaC
	}
	orbit := []complex128{z}
	for n := 1; n <= ev.params.MaxIterations; n++ {
		z = ev.pow(z) + c
		orbit = append(orbit, z)
		re, im := real(z), imag(z)
		m2 := re*re + im*im
		if !(m2 <= ev.radius2) {
			break
		}
	}
	return orbit
}
