package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelterm/internal/command"
	"github.com/san-kum/mandelterm/internal/ematrix"
	"github.com/san-kum/mandelterm/internal/fractal"
	"github.com/san-kum/mandelterm/internal/palette"
)

const (
	DefaultRe              = -0.5
	DefaultIm              = 0.0
	DefaultZoom            = 1.0
	DefaultScreenshotDir   = "screenshots"
	DefaultScreenshotWidth = 1920
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	View       ViewConfig       `yaml:"view"`
	Fractal    FractalConfig    `yaml:"fractal"`
	Blur       BlurConfig       `yaml:"blur"`
	Palette    PaletteConfig    `yaml:"palette"`
	Steps      StepsConfig      `yaml:"steps"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Workers    int              `yaml:"workers"`
}

type ViewConfig struct {
	Re         float64 `yaml:"re"`
	Im         float64 `yaml:"im"`
	Zoom       float64 `yaml:"zoom"`
	CellAspect float64 `yaml:"cell_aspect"`
}

type FractalConfig struct {
	Kind          string  `yaml:"kind"`
	Exponent      float64 `yaml:"exponent"`
	JuliaRe       float64 `yaml:"julia_re"`
	JuliaIm       float64 `yaml:"julia_im"`
	MaxIterations int     `yaml:"max_iterations"`
	Smoothing     bool    `yaml:"smoothing"`
}

type BlurConfig struct {
	Radius int     `yaml:"radius"`
	Sigma  float64 `yaml:"sigma"`
}

type PaletteConfig struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
	Offset    float64 `yaml:"offset"`
}

type StepsConfig struct {
	Pan        float64 `yaml:"pan"`
	Zoom       float64 `yaml:"zoom"`
	Iterations int     `yaml:"iterations"`
	Exponent   float64 `yaml:"exponent"`
}

type ScreenshotConfig struct {
	Dir   string `yaml:"dir"`
	Width int    `yaml:"width"`
}

func DefaultConfig() *Config {
	blur := ematrix.DefaultBlur()
	steps := command.DefaultSteps()
	cycle := palette.DefaultCycle()
	return &Config{
		View: ViewConfig{
			Re:         DefaultRe,
			Im:         DefaultIm,
			Zoom:       DefaultZoom,
			CellAspect: fractal.DefaultCellAspect,
		},
		Fractal: FractalConfig{
			Kind:          fractal.Mandelbrot.String(),
			Exponent:      fractal.DefaultExponent,
			JuliaRe:       real(fractal.DefaultJuliaC),
			JuliaIm:       imag(fractal.DefaultJuliaC),
			MaxIterations: fractal.DefaultMaxIterations,
			Smoothing:     true,
		},
		Blur: BlurConfig{Radius: blur.Radius, Sigma: blur.Sigma},
		Palette: PaletteConfig{
			Name:      palette.DefaultName,
			Frequency: cycle.Frequency,
			Offset:    cycle.Offset,
		},
		Steps: StepsConfig{
			Pan:        steps.Pan,
			Zoom:       steps.Zoom,
			Iterations: steps.Iterations,
			Exponent:   steps.Exponent,
		},
		Screenshot: ScreenshotConfig{
			Dir:   DefaultScreenshotDir,
			Width: DefaultScreenshotWidth,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, e.g. defaults with a preset
// already applied. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() (fractal.Params, error) {
	kind, err := fractal.ParseKind(c.Fractal.Kind)
	if err != nil {
		return fractal.Params{}, err
	}
	return fractal.Params{
		Kind:          kind,
		Exponent:      c.Fractal.Exponent,
		JuliaC:        complex(c.Fractal.JuliaRe, c.Fractal.JuliaIm),
		MaxIterations: c.Fractal.MaxIterations,
		Smoothing:     c.Fractal.Smoothing,
	}, nil
}

// Viewport sizes the configured view to a width x height cell grid.
func (c *Config) Viewport(width, height int) fractal.Viewport {
	vp := fractal.NewViewport(complex(c.View.Re, c.View.Im), c.View.Zoom, width, height)
	if c.View.CellAspect > 0 {
		vp.CellAspect = c.View.CellAspect
	}
	return vp
}

func (c *Config) State(width, height int) (command.State, error) {
	params, err := c.Params()
	if err != nil {
		return command.State{}, err
	}
	s := command.State{Viewport: c.Viewport(width, height), Params: params}
	if err := s.Validate(); err != nil {
		return command.State{}, err
	}
	return s, nil
}

func (c *Config) CommandSteps() command.Steps {
	return command.Steps{
		Pan:        c.Steps.Pan,
		Zoom:       c.Steps.Zoom,
		Iterations: c.Steps.Iterations,
		Exponent:   c.Steps.Exponent,
	}
}

func (c *Config) BlurFilter() ematrix.Blur {
	return ematrix.Blur{Radius: c.Blur.Radius, Sigma: c.Blur.Sigma}
}

func (c *Config) ColorPalette() (palette.Palette, error) {
	return palette.ByName(c.Palette.Name, palette.Cycle{
		Frequency: c.Palette.Frequency,
		Offset:    c.Palette.Offset,
	})
}

// Validate checks every section with a placeholder grid size.
func (c *Config) Validate() error {
	if _, err := c.State(1, 1); err != nil {
		return err
	}
	if err := c.CommandSteps().Validate(); err != nil {
		return err
	}
	if _, err := c.ColorPalette(); err != nil {
		return err
	}
	if c.Blur.Radius < 0 || c.Blur.Sigma < 0 {
		return fmt.Errorf("%w: blur radius and sigma must not be negative", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Screenshot.Width < 0 {
		return fmt.Errorf("%w: screenshot width must not be negative", ErrInvalidConfig)
	}
	return nil
}
