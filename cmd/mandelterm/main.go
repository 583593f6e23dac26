package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/san-kum/mandelterm/internal/analysis"
	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/config"
	"github.com/san-kum/mandelterm/internal/export"
	"github.com/san-kum/mandelterm/internal/fractal"
	"github.com/san-kum/mandelterm/internal/logs"
	"github.com/san-kum/mandelterm/internal/rctx"
	"github.com/san-kum/mandelterm/internal/storage"
	"github.com/san-kum/mandelterm/internal/term"
	"github.com/san-kum/mandelterm/internal/tui"
)

var (
	configFile string
	preset     string
	re         float64
	im         float64
	zoom       float64
	maxIter    int
	exponent   float64
	julia      bool
	juliaRe    float64
	juliaIm    float64
	noSmooth   bool
	paletteArg string
	workers    int
	shotsDir   string
	verbose    bool
	// Interactive mode
	frontend  string
	logFile   string
	halfBlock bool
	ascii     bool
	// render
	outFile      string
	renderWidth  int
	renderHeight int
	orbit        bool
	// bench
	benchFrames int
	benchWidth  int
	benchHeight int
	sweepLo     float64
	sweepHi     float64
	sweepSteps  int
)

// main runs the interactive explorer when no subcommand is given and exits
// with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mandelterm",
		Short:        "explore Mandelbrot and Julia sets in the terminal",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named view (see presets)")
	pf.Float64Var(&re, "re", config.DefaultRe, "real part of the view center")
	pf.Float64Var(&im, "im", config.DefaultIm, "imaginary part of the view center")
	pf.Float64Var(&zoom, "zoom", config.DefaultZoom, "zoom factor, smaller is deeper")
	pf.IntVar(&maxIter, "iter", fractal.DefaultMaxIterations, "maximum iterations")
	pf.Float64Var(&exponent, "exp", fractal.DefaultExponent, "exponent p in z^p + c")
	pf.BoolVar(&julia, "julia", false, "start with the Julia set")
	pf.Float64Var(&juliaRe, "julia-re", real(fractal.DefaultJuliaC), "real part of the Julia constant")
	pf.Float64Var(&juliaIm, "julia-im", imag(fractal.DefaultJuliaC), "imaginary part of the Julia constant")
	pf.BoolVar(&noSmooth, "no-smooth", false, "disable smoothing and blur")
	pf.StringVar(&paletteArg, "palette", "", "color palette")
	pf.IntVar(&workers, "workers", 0, "render workers (0 = one per CPU)")
	pf.StringVar(&shotsDir, "shots", config.DefaultScreenshotDir, "screenshot directory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.Flags().StringVar(&frontend, "tui", "bubbletea", "terminal front end: bubbletea or tcell")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")
	rootCmd.Flags().BoolVar(&halfBlock, "halfblock", false, "two fractal rows per terminal line")
	rootCmd.Flags().BoolVar(&ascii, "ascii", false, "character-art rendering")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a view to a PNG or SVG file",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "mandelterm.png", "output file (.png or .svg)")
	renderCmd.Flags().IntVar(&renderWidth, "width", config.DefaultScreenshotWidth, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "image height in pixels (0 = 9:16 of width)")
	renderCmd.Flags().BoolVar(&orbit, "orbit", false, "plot the orbit of the view center as SVG instead")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time frame renders and summarize escape values",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 20, "frames to render")
	benchCmd.Flags().IntVar(&benchWidth, "width", 160, "grid width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 48, "grid height")
	benchCmd.Flags().Float64Var(&sweepLo, "sweep-lo", 2, "lowest exponent of the sweep")
	benchCmd.Flags().Float64Var(&sweepHi, "sweep-hi", 4, "highest exponent of the sweep")
	benchCmd.Flags().IntVar(&sweepSteps, "sweep", 0, "exponents to sweep (0 = skip)")

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list named views",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	shotsCmd := &cobra.Command{
		Use:   "shots",
		Short: "list saved screenshots",
		Args:  cobra.NoArgs,
		RunE:  listShots,
	}

	rootCmd.AddCommand(renderCmd, benchCmd, presetsCmd, shotsCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		kind, p := config.FindPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(allPresets(), ", "))
		}
		cfg.ApplyPreset(kind, p)
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("re") {
		cfg.View.Re = re
	}
	if fl.Changed("im") {
		cfg.View.Im = im
	}
	if fl.Changed("zoom") {
		cfg.View.Zoom = zoom
	}
	if fl.Changed("iter") {
		cfg.Fractal.MaxIterations = maxIter
	}
	if fl.Changed("exp") {
		cfg.Fractal.Exponent = exponent
	}
	if fl.Changed("julia") {
		if julia {
			cfg.Fractal.Kind = fractal.Julia.String()
		} else {
			cfg.Fractal.Kind = fractal.Mandelbrot.String()
		}
	}
	if fl.Changed("julia-re") {
		cfg.Fractal.JuliaRe = juliaRe
	}
	if fl.Changed("julia-im") {
		cfg.Fractal.JuliaIm = juliaIm
	}
	if fl.Changed("no-smooth") {
		cfg.Fractal.Smoothing = !noSmooth
	}
	if fl.Changed("palette") {
		cfg.Palette.Name = paletteArg
	}
	if fl.Changed("workers") {
		cfg.Workers = workers
	}
	if fl.Changed("shots") {
		cfg.Screenshot.Dir = shotsDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logs.SetVerbose(verbose)
	compute.SetBackend(compute.AutoSelectBackend(cfg.Workers))
	return cfg, nil
}

func allPresets() []string {
	var names []string
	for _, kind := range config.Kinds() {
		names = append(names, config.ListPresets(kind)...)
	}
	return names
}

func renderOptions(cfg *config.Config) (rctx.Options, error) {
	pal, err := cfg.ColorPalette()
	if err != nil {
		return rctx.Options{}, err
	}
	return rctx.Options{
		Palette: pal,
		Blur:    cfg.BlurFilter(),
		Backend: compute.GetBackend(),
	}, nil
}

func drawMode() (rctx.Mode, error) {
	switch {
	case halfBlock && ascii:
		return 0, errors.New("--halfblock and --ascii are mutually exclusive")
	case halfBlock:
		return rctx.ModeHalfBlock, nil
	case ascii:
		return rctx.ModeASCII, nil
	}
	return rctx.ModeBlock, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdout.Fd())
	if !xterm.IsTerminal(fd) {
		return errors.New("interactive mode needs a terminal; use 'mandelterm render' instead")
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := drawMode()
	if err != nil {
		return err
	}

	width, height, err := xterm.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}
	cfg.View.CellAspect = mode.CellAspect(cfg.View.CellAspect)
	state, err := cfg.State(mode.GridSize(width, height-2))
	if err != nil {
		return err
	}
	opts, err := renderOptions(cfg)
	if err != nil {
		return err
	}
	rc, err := rctx.New(state, cfg.CommandSteps(), opts)
	if err != nil {
		return err
	}

	closer, err := logs.Setup(logFile, "mandelterm ")
	if err != nil {
		return err
	}
	defer closer.Close()

	store := storage.New(cfg.Screenshot.Dir)
	switch frontend {
	case "bubbletea", "tea":
		return tui.Run(rc, tui.Options{
			Mode:            mode,
			Store:           store,
			PaletteName:     opts.Palette.Name(),
			ScreenshotWidth: cfg.Screenshot.Width,
		})
	case "tcell":
		return term.Run(rc, term.Options{
			Mode:            mode,
			Store:           store,
			PaletteName:     opts.Palette.Name(),
			ScreenshotWidth: cfg.Screenshot.Width,
		})
	}
	return fmt.Errorf("unknown front end: %s (use bubbletea or tcell)", frontend)
}

func runRender(cmd *cobra.Command, args []string) error {
	logs.Stderr("mandelterm ")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if renderWidth <= 0 {
		return fmt.Errorf("invalid width: %d", renderWidth)
	}
	if renderHeight <= 0 {
		renderHeight = renderWidth * 9 / 16
	}

	state, err := cfg.State(renderWidth, renderHeight)
	if err != nil {
		return err
	}
	state.Viewport.CellAspect = 1

	if orbit {
		ev := state.Params.Evaluator()
		points := ev.Orbit(state.Viewport.Center)
		svg := export.OrbitToSVG(points, state.Params.Radius(), renderWidth, "#ffb000")
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("orbit of %v: %d points -> %s\n", state.Viewport.Center, len(points), outFile)
		return nil
	}

	opts, err := renderOptions(cfg)
	if err != nil {
		return err
	}
	f, err := rctx.RenderFrame(context.Background(), state.Viewport, state.Params, opts)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(outFile)) {
	case ".svg":
		err = os.WriteFile(outFile, []byte(export.GridToSVG(f.Grid, 1, 1)), 0644)
	case ".png", "":
		var out *os.File
		if out, err = os.Create(outFile); err != nil {
			return err
		}
		defer out.Close()
		err = storage.WritePNG(out, f.Grid, 1, 1)
	default:
		return fmt.Errorf("unsupported output format: %s", outFile)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%dx%d %s rendered in %v -> %s\n", f.Grid.Width, f.Grid.Height, f.Params.Kind, f.Elapsed.Round(time.Millisecond), outFile)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	logs.Stderr("mandelterm ")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if benchFrames < 1 {
		return fmt.Errorf("invalid frame count: %d", benchFrames)
	}
	state, err := cfg.State(benchWidth, benchHeight)
	if err != nil {
		return err
	}
	opts, err := renderOptions(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	samples := make([]time.Duration, 0, benchFrames)
	var last *rctx.Frame
	for i := 0; i < benchFrames; i++ {
		f, err := rctx.RenderFrame(ctx, state.Viewport, state.Params, opts)
		if err != nil {
			return err
		}
		samples = append(samples, f.Elapsed)
		last = f
	}

	stats := analysis.Timings(samples)
	fmt.Printf("%s %dx%d, %d iterations, exponent %.3f, backend %s\n\n",
		state.Params.Kind, benchWidth, benchHeight, state.Params.MaxIterations, state.Params.Exponent, opts.Backend.Name())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tMIN\tMEAN\tP50\tP95\tMAX")
	fmt.Fprintf(w, "%d\t%v\t%v\t%v\t%v\t%v\n", stats.N,
		stats.Min.Round(time.Microsecond), stats.Mean.Round(time.Microsecond),
		stats.P50.Round(time.Microsecond), stats.P95.Round(time.Microsecond),
		stats.Max.Round(time.Microsecond))
	w.Flush()

	if len(samples) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(analysis.Millis(samples),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("frame time (ms)"),
		))
	}

	summary := analysis.Summarize(last.Matrix)
	hist := analysis.NewHistogram(last.Matrix, 40, state.Params.MaxIterations)
	fmt.Printf("\nbounded %.1f%%, escape min %.2f mean %.2f max %.2f\n\n",
		100*summary.BoundedFrac, summary.MinEscape, summary.MeanEscape, summary.MaxEscape)
	fmt.Println(asciigraph.Plot(hist.Series(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("escape histogram"),
	))

	if sweepSteps > 1 {
		points, err := analysis.ExponentSweep(ctx, opts.Backend, state.Viewport, state.Params, sweepLo, sweepHi, sweepSteps)
		if err != nil {
			return err
		}
		bounded := make([]float64, len(points))
		for i, p := range points {
			bounded[i] = 100 * p.BoundedFrac
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(bounded,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("bounded %% for exponent %.2f..%.2f", sweepLo, sweepHi)),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := config.Kinds()
	if len(args) > 0 {
		kinds = []string{args[0]}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tRE\tIM\tZOOM\tDESCRIPTION")
	found := 0
	for _, kind := range kinds {
		for _, name := range config.ListPresets(kind) {
			p := config.GetPreset(kind, name)
			fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%.3g\t%s\n", kind, name, p.Re, p.Im, p.Zoom, p.Description)
			found++
		}
	}
	w.Flush()
	if found == 0 {
		return fmt.Errorf("no presets for kind: %s", args[0])
	}
	return nil
}

func listShots(cmd *cobra.Command, args []string) error {
	dir := config.DefaultScreenshotDir
	if cmd.Flags().Changed("shots") {
		dir = shotsDir
	} else if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		dir = cfg.Screenshot.Dir
	}

	shots, err := storage.New(dir).List()
	if err != nil {
		return err
	}
	if len(shots) == 0 {
		fmt.Printf("no screenshots in %s\n", dir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tKIND\tCENTER\tZOOM\tEXP\tITER\tSIZE")
	for _, s := range shots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6f%+.6fi\t%.3e\t%.3f\t%d\t%dx%d\n",
			s.ID, s.Timestamp.Format("2006-01-02 15:04:05"), s.Kind, s.Re, s.Im,
			s.Zoom, s.Exponent, s.MaxIterations, s.ImageWidth, s.ImageHeight)
	}
	return w.Flush()
}
