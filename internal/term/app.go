// Package term is the tcell front end. It shares the keymap, render
// context and screenshot store with the Bubble Tea front end in package tui.
package term

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/mandelterm/internal/command"
	"github.com/san-kum/mandelterm/internal/logs"
	"github.com/san-kum/mandelterm/internal/rctx"
	"github.com/san-kum/mandelterm/internal/storage"
)

// chromeLines is the number of lines below the fractal: HUD and status/help.
const chromeLines = 2

type Options struct {
	Mode            rctx.Mode
	Store           *storage.Store
	PaletteName     string
	ScreenshotWidth int
}

type frameResult struct {
	gen   uint64
	frame *rctx.Frame
	err   error
}

type shotResult struct {
	id  string
	err error
}

// App drives a render context from a tcell screen. All state is owned by
// the goroutine running Loop; renders and screenshots report back over
// channels.
type App struct {
	screen tcell.Screen
	rc     *rctx.Rctx
	keys   command.KeyMap
	opts   Options

	gen    uint64
	cancel context.CancelFunc
	frames chan frameResult
	shots  chan shotResult
	done   chan struct{}
	once   sync.Once

	frame    *rctx.Frame
	drawTime time.Duration
	status   string
	isError  bool
	showHelp bool
}

// New wraps an initialized screen.
func New(screen tcell.Screen, rc *rctx.Rctx, opts Options) *App {
	return &App{
		screen: screen,
		rc:     rc,
		keys:   command.DefaultKeyMap(),
		opts:   opts,
		frames: make(chan frameResult, 1),
		shots:  make(chan shotResult, 1),
		done:   make(chan struct{}),
	}
}

func Run(rc *rctx.Rctx, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return New(screen, rc, opts).Loop()
}

// Loop processes events until a quit command.
func (a *App) Loop() error {
	defer a.stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.done:
				return
			}
		}
	}()

	a.resize(a.screen.Size())
	a.draw()
	for {
		select {
		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}
		case r := <-a.frames:
			a.handleFrame(r)
		case r := <-a.shots:
			a.handleShot(r)
		}
		a.draw()
	}
}

func (a *App) stop() {
	a.once.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		close(a.done)
	})
}

// handleEvent reports whether the app should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize(ev.Size())
	case *tcell.EventKey:
		return a.handleKey(KeyName(ev))
	}
	return false
}

func (a *App) handleKey(name command.Name) bool {
	if key.Matches(name, a.keys.Help) {
		a.showHelp = !a.showHelp
		return false
	}

	cmd := a.keys.Lookup(name)
	switch cmd {
	case command.None:
		return false
	case command.Quit:
		return true
	case command.Screenshot:
		if err := a.screenshot(); err != nil {
			a.setError(err)
		} else {
			a.setStatus("saving screenshot...")
		}
		return false
	}

	if err := a.rc.Apply(cmd); err != nil {
		a.setError(err)
		return false
	}
	a.status = ""
	a.schedule()
	return false
}

func (a *App) resize(width, height int) {
	a.rc.Resize(a.opts.Mode.GridSize(width, height-chromeLines))
	a.schedule()
}

// schedule starts rendering the current state unless the last frame is
// already up to date. A frame still in flight is cancelled.
func (a *App) schedule() {
	if !a.rc.Dirty() {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	gen, snap := a.gen, a.rc.Snapshot()
	go func() {
		f, err := snap.Render(ctx)
		select {
		case a.frames <- frameResult{gen: gen, frame: f, err: err}:
		case <-a.done:
		}
	}()
}

func (a *App) handleFrame(r frameResult) {
	if r.gen != a.gen {
		logs.V("dropping stale frame %d (current %d)", r.gen, a.gen)
		return
	}
	if r.err != nil {
		if !errors.Is(r.err, context.Canceled) {
			a.setError(r.err)
		}
		return
	}
	if !a.rc.Commit(r.frame) {
		a.schedule()
		return
	}
	a.frame = r.frame
	logs.V("frame %d: %dx%d render %v", r.gen, r.frame.Grid.Width, r.frame.Grid.Height, r.frame.Elapsed)
}

// screenshot renders the current view again at image resolution with square
// pixels and stores it in the background.
func (a *App) screenshot() error {
	store := a.opts.Store
	if store == nil {
		return errors.New("screenshots are disabled")
	}
	snap := a.rc.Snapshot()
	if a.opts.ScreenshotWidth > 0 {
		snap.State.Viewport = snap.State.Viewport.Scaled(a.opts.ScreenshotWidth, 1)
	}
	name := a.opts.PaletteName
	go func() {
		var r shotResult
		f, err := snap.Render(context.Background())
		if err != nil {
			r.err = err
		} else {
			r.id, r.err = store.Save(f, name)
		}
		if r.err == nil {
			log.Printf("screenshot %s saved", r.id)
		}
		select {
		case a.shots <- r:
		case <-a.done:
		}
	}()
	return nil
}

func (a *App) handleShot(r shotResult) {
	if r.err != nil {
		a.setError(fmt.Errorf("screenshot: %w", r.err))
		return
	}
	a.setStatus("saved " + r.id)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.isError = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.isError = true
	log.Printf("error: %v", err)
}

func (a *App) truecolor() bool {
	return a.screen.Colors() >= 1<<24
}

func (a *App) draw() {
	a.screen.Clear()
	_, h := a.screen.Size()
	lines := max(h-chromeLines, 1)

	if a.frame != nil {
		start := time.Now()
		drawGrid(a.screen, a.frame.Grid, a.opts.Mode, a.truecolor(), lines)
		a.drawTime = time.Since(start)
	} else {
		drawText(a.screen, 0, 0, "rendering...", dim)
	}

	a.drawHUD(lines)

	switch {
	case a.status != "" && a.isError:
		drawText(a.screen, 0, lines+1, a.status, red)
	case a.status != "":
		drawText(a.screen, 0, lines+1, a.status, yellow)
	case a.showHelp:
		var all []key.Binding
		for _, group := range a.keys.FullHelp() {
			all = append(all, group...)
		}
		drawText(a.screen, 0, lines+1, helpText(all), dim)
	default:
		drawText(a.screen, 0, lines+1, helpText(a.keys.ShortHelp()), dim)
	}
	a.screen.Show()
}

func (a *App) drawHUD(y int) {
	x := 0
	for i, f := range rctx.HUD(a.frame, a.drawTime) {
		if i == 0 {
			x = drawText(a.screen, x, y, f.Value, cyan)
			continue
		}
		x = drawText(a.screen, x, y, "  "+f.Label+" ", dim)
		x = drawText(a.screen, x, y, f.Value, white)
	}
}
