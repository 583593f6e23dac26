package config

import (
	"sort"

	"github.com/san-kum/mandelterm/internal/fractal"
)

// Preset is a named starting view.
type Preset struct {
	Description   string
	Re, Im        float64
	Zoom          float64
	JuliaRe       float64
	JuliaIm       float64
	MaxIterations int
}

// region converts a plane rectangle into a centered preset whose visible
// width matches the rectangle.
func region(desc string, xmin, xmax, ymin, ymax float64, iter int) *Preset {
	return &Preset{
		Description:   desc,
		Re:            (xmin + xmax) / 2,
		Im:            (ymin + ymax) / 2,
		Zoom:          (xmax - xmin) / 2 / fractal.BaseHalfWidth,
		MaxIterations: iter,
	}
}

func julia(desc string, re, im float64, iter int) *Preset {
	return &Preset{
		Description:   desc,
		Zoom:          0.8,
		JuliaRe:       re,
		JuliaIm:       im,
		MaxIterations: iter,
	}
}

var Presets = map[string]map[string]*Preset{
	"mandelbrot": {
		"home":               {Description: "whole set", Re: DefaultRe, Zoom: DefaultZoom, MaxIterations: 100},
		"seahorse":           region("seahorse valley, filaments and curls", -0.8, -0.7, 0.05, 0.15, 300),
		"elephant":           region("bulb with trunk-like tendrils", -1.85, -1.75, -0.10, -0.02, 300),
		"spiral-minibrot":    region("small copy with tight spiral arms", -0.7435, -0.7420, 0.1310, 0.1325, 800),
		"triple-spiral":      region("threefold spiral", -0.7480, -0.7450, 0.0950, 0.0980, 800),
		"dragon":             region("valley of the dragon", -0.7400, -0.7350, 0.1800, 0.1850, 600),
		"minibrot-in-spiral": region("minibrot inside a spiral arm", -1.7390, -1.7375, -0.0235, -0.0220, 800),
	},
	"julia": {
		"rabbit":    julia("douady rabbit", -0.123, 0.745, 200),
		"dendrite":  julia("dendrite", 0, 1, 200),
		"san-marco": julia("san marco", -0.75, 0, 200),
		"siegel":    julia("siegel disk", -0.391, -0.587, 300),
		"dust":      julia("fatou dust", 0.6, 0.4, 100),
		"spiral":    julia("spiral arms", -0.8, 0.156, 200),
	},
}

func GetPreset(kind, name string) *Preset {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	p, ok := kindPresets[name]
	if !ok {
		return nil
	}
	return p
}

// FindPreset looks a name up across every kind.
func FindPreset(name string) (kind string, p *Preset) {
	for _, k := range Kinds() {
		if p := GetPreset(k, name); p != nil {
			return k, p
		}
	}
	return "", nil
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// ApplyPreset overwrites the view and fractal sections the preset defines.
func (c *Config) ApplyPreset(kind string, p *Preset) {
	c.Fractal.Kind = kind
	c.View.Re = p.Re
	c.View.Im = p.Im
	c.View.Zoom = p.Zoom
	if kind == fractal.Julia.String() {
		c.Fractal.JuliaRe = p.JuliaRe
		c.Fractal.JuliaIm = p.JuliaIm
	}
	if p.MaxIterations > 0 {
		c.Fractal.MaxIterations = p.MaxIterations
	}
}
