package rctx_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelterm/internal/command"
	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/ematrix"
	"github.com/san-kum/mandelterm/internal/fractal"
	"github.com/san-kum/mandelterm/internal/palette"
	"github.com/san-kum/mandelterm/internal/rctx"
)

func scenarioState() command.State {
	p := fractal.DefaultParams()
	p.Smoothing = false
	return command.State{
		Viewport: fractal.NewViewport(complex(-0.5, 0), 1, 80, 24),
		Params:   p,
	}
}

var _ = Describe("RenderFrame", func() {
	var (
		ctx  context.Context
		opts rctx.Options
	)

	BeforeEach(func() {
		ctx = context.Background()
		opts = rctx.DefaultOptions()
		opts.Backend = compute.NewCPUBackend(4)
	})

	It("is deterministic", func() {
		s := scenarioState()
		s.Params.Smoothing = true
		s.Params.Exponent = 2.5

		a, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())
		b, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Grid.Equal(b.Grid)).To(BeTrue())
		Expect(a.Matrix.Equal(b.Matrix)).To(BeTrue())
	})

	It("produces one color per viewport cell", func() {
		s := scenarioState()
		f, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.Grid.Width).To(Equal(80))
		Expect(f.Grid.Height).To(Equal(24))
		Expect(f.Grid.Cells).To(HaveLen(80 * 24))
		Expect(f.Viewport).To(Equal(s.Viewport))
		Expect(f.Params).To(Equal(s.Params))
	})

	It("colors bounded cells with the interior color and nothing else", func() {
		for _, smoothing := range []bool{false, true} {
			s := scenarioState()
			s.Params.Smoothing = smoothing
			f, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
			Expect(err).NotTo(HaveOccurred())

			for i, e := range f.Matrix.Cells {
				if e.Escaped() {
					Expect(e).To(BeNumerically(">=", 0))
					Expect(e).To(BeNumerically("<=", s.Params.MaxIterations))
					Expect(f.Grid.Cells[i]).NotTo(Equal(palette.Interior))
				} else {
					Expect(f.Grid.Cells[i]).To(Equal(palette.Interior))
				}
			}
			Expect(f.Grid.At(40, 12)).To(Equal(palette.Interior))
		}
	})

	It("keeps escaped colors when the iteration budget grows", func() {
		s := scenarioState()
		low, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())

		s.Params.MaxIterations = 400
		high, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())

		for i, e := range low.Matrix.Cells {
			if e.Escaped() {
				Expect(high.Matrix.Cells[i]).To(Equal(e))
				Expect(high.Grid.Cells[i]).To(Equal(low.Grid.Cells[i]))
			}
		}
	})

	It("keeps smoothed colors when the iteration budget grows", func() {
		s := scenarioState()
		s.Params.Smoothing = true
		low, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())

		s.Params.MaxIterations += 25
		high, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())

		// A cell only keeps its blurred value if no cell in its window
		// changed class; newly escaped neighbors legitimately join the mean.
		sameWindow := func(col, row int) bool {
			r := opts.Blur.Radius
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					c, rr := col+dx, row+dy
					if c < 0 || rr < 0 || c >= low.Matrix.Width || rr >= low.Matrix.Height {
						continue
					}
					if low.Matrix.At(c, rr).Escaped() != high.Matrix.At(c, rr).Escaped() {
						return false
					}
				}
			}
			return true
		}

		checked := 0
		for row := 0; row < low.Grid.Height; row++ {
			for col := 0; col < low.Grid.Width; col++ {
				if !low.Matrix.At(col, row).Escaped() || !sameWindow(col, row) {
					continue
				}
				checked++
				Expect(high.Grid.At(col, row)).To(Equal(low.Grid.At(col, row)), "cell (%d,%d)", col, row)
			}
		}
		Expect(checked).To(BeNumerically(">", 0))
	})

	It("skips the blur when smoothing is off", func() {
		s := scenarioState()
		plain := opts
		plain.Blur = ematrix.Blur{}

		blurred, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).NotTo(HaveOccurred())
		unblurred, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, plain)
		Expect(err).NotTo(HaveOccurred())

		Expect(blurred.Grid.Equal(unblurred.Grid)).To(BeTrue())
	})

	It("returns the cancellation error", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := scenarioState()
		_, err := rctx.RenderFrame(cctx, s.Viewport, s.Params, opts)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("rejects invalid parameters", func() {
		s := scenarioState()
		s.Params.MaxIterations = 0
		_, err := rctx.RenderFrame(ctx, s.Viewport, s.Params, opts)
		Expect(err).To(MatchError(fractal.ErrParameterBounds))
	})
})

var _ = Describe("Rctx", func() {
	var (
		ctx context.Context
		r   *rctx.Rctx
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		r, err = rctx.New(scenarioState(), command.DefaultSteps(), rctx.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts dirty and renders lazily", func() {
		Expect(r.Dirty()).To(BeTrue())
		Expect(r.Last()).To(BeNil())

		first, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Dirty()).To(BeFalse())

		second, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(BeIdenticalTo(first))
	})

	It("marks itself dirty after a state change", func() {
		_, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Apply(command.ZoomIn)).To(Succeed())
		Expect(r.Dirty()).To(BeTrue())
		Expect(r.State().Viewport.Zoom).To(Equal(0.5))
	})

	It("stays clean on app-level commands", func() {
		_, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Apply(command.Screenshot)).To(Succeed())
		Expect(r.Apply(command.Quit)).To(Succeed())
		Expect(r.Dirty()).To(BeFalse())
	})

	It("keeps the previous state on a rejected command", func() {
		_, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 3; i++ {
			Expect(r.Apply(command.DecreaseIterations)).To(Succeed())
		}
		before := r.State()
		_, err = r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())

		err = r.Apply(command.DecreaseIterations)
		Expect(err).To(MatchError(fractal.ErrParameterBounds))
		Expect(r.State()).To(Equal(before))
		Expect(r.Dirty()).To(BeFalse())
	})

	It("only marks dirty on real resizes", func() {
		_, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())

		r.Resize(80, 24)
		Expect(r.Dirty()).To(BeFalse())
		r.Resize(0, 10)
		Expect(r.Dirty()).To(BeFalse())

		r.Resize(100, 30)
		Expect(r.Dirty()).To(BeTrue())
		f, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Grid.Width).To(Equal(100))
		Expect(f.Grid.Height).To(Equal(30))
	})

	It("rejects stale frames on commit", func() {
		snap := r.Snapshot()
		Expect(r.Apply(command.PanLeft)).To(Succeed())

		stale, err := snap.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Commit(stale)).To(BeFalse())
		Expect(r.Dirty()).To(BeTrue())

		fresh, err := r.Snapshot().Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Commit(fresh)).To(BeTrue())
		Expect(r.Dirty()).To(BeFalse())
		Expect(r.Last()).To(BeIdenticalTo(fresh))
	})

	It("reproduces a julia matrix when an exponent is replayed", func() {
		Expect(r.Apply(command.SwitchFractalKind)).To(Succeed())
		before, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		replay := r.Snapshot()

		Expect(r.Apply(command.IncreaseExponent)).To(Succeed())
		changed, err := r.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(changed.Matrix.Equal(before.Matrix)).To(BeFalse())

		after, err := replay.Render(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(after.Matrix.Equal(before.Matrix)).To(BeTrue())
		Expect(after.Grid.Equal(before.Grid)).To(BeTrue())
	})

	It("resets to the initial state", func() {
		Expect(r.Apply(command.ZoomIn)).To(Succeed())
		Expect(r.Apply(command.SwitchFractalKind)).To(Succeed())
		Expect(r.Apply(command.Reset)).To(Succeed())
		Expect(r.State()).To(Equal(scenarioState()))
	})

	It("refuses an invalid initial state", func() {
		s := scenarioState()
		s.Viewport.Zoom = -1
		_, err := rctx.New(s, command.DefaultSteps(), rctx.Options{})
		Expect(err).To(MatchError(fractal.ErrParameterBounds))
	})
})

var _ = Describe("HUD", func() {
	It("lists the frame parameters", func() {
		s := scenarioState()
		f, err := rctx.RenderFrame(context.Background(), s.Viewport, s.Params, rctx.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		fields := rctx.HUD(f, 0)
		labels := make([]string, len(fields))
		for i, fl := range fields {
			labels[i] = fl.Label
		}
		Expect(labels).To(Equal([]string{"fn", "exp", "re", "im", "zoom", "iter", "smooth", "render", "draw"}))
		Expect(fields[1].Value).To(Equal("2.000"))
		Expect(fields[5].Value).To(Equal("100"))
		Expect(fields[6].Value).To(Equal("off"))
	})

	It("shows the julia constant", func() {
		s := scenarioState()
		s.Params.Kind = fractal.Julia
		s.Params.JuliaC = complex(-0.8, 0.156)
		f, err := rctx.RenderFrame(context.Background(), s.Viewport, s.Params, rctx.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		fields := rctx.HUD(f, 0)
		Expect(fields[1]).To(Equal(rctx.HUDField{Label: "c", Value: "-0.8000+0.1560i"}))
	})

	It("is empty without a frame", func() {
		Expect(rctx.HUD(nil, 0)).To(BeEmpty())
	})
})

var _ = Describe("Mode", func() {
	It("parses names", func() {
		for _, m := range []rctx.Mode{rctx.ModeBlock, rctx.ModeHalfBlock, rctx.ModeASCII} {
			got, err := rctx.ParseMode(m.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(m))
		}
		_, err := rctx.ParseMode("sixel")
		Expect(err).To(HaveOccurred())
	})

	It("packs two rows per line in half-block mode", func() {
		w, h := rctx.ModeHalfBlock.GridSize(80, 22)
		Expect(w).To(Equal(80))
		Expect(h).To(Equal(44))
		Expect(rctx.ModeHalfBlock.CellAspect(2)).To(Equal(1.0))
		Expect(rctx.ModeBlock.CellAspect(0)).To(Equal(fractal.DefaultCellAspect))
	})

	It("never returns an empty grid", func() {
		w, h := rctx.ModeBlock.GridSize(0, -3)
		Expect(w).To(Equal(1))
		Expect(h).To(Equal(1))
	})
})
