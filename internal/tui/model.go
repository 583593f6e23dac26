package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

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

type model struct {
	rc   *rctx.Rctx
	keys command.KeyMap
	help help.Model
	opts Options

	width  int
	height int

	// gen identifies the newest requested frame; results carrying an older
	// generation are dropped.
	gen    uint64
	cancel context.CancelFunc

	frame    *rctx.Frame
	canvas   string
	drawTime time.Duration
	status   string
	isError  bool
}

type frameMsg struct {
	gen   uint64
	frame *rctx.Frame
	err   error
}

type shotMsg struct {
	id  string
	err error
}

func newModel(rc *rctx.Rctx, opts Options) model {
	return model{
		rc:     rc,
		keys:   command.DefaultKeyMap(),
		help:   help.New(),
		opts:   opts,
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rc.Resize(m.gridSize())
		return m.schedule()
	case frameMsg:
		return m.handleFrame(msg)
	case shotMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("screenshot: %w", msg.err))
		} else {
			m.setStatus("saved " + msg.id)
		}
		return m, nil
	}
	return m, nil
}

func (m model) gridSize() (int, int) {
	return m.opts.Mode.GridSize(m.width, m.height-chromeLines)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	cmd := m.keys.Lookup(msg)
	switch cmd {
	case command.None:
		return m, nil
	case command.Quit:
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case command.Screenshot:
		shot, err := m.screenshot()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("saving screenshot...")
		return m, shot
	}

	if err := m.rc.Apply(cmd); err != nil {
		m.setError(err)
		return m, nil
	}
	m.status = ""
	return m.schedule()
}

// schedule starts rendering the current state unless the last frame is
// already up to date. A frame still in flight is cancelled.
func (m model) schedule() (model, tea.Cmd) {
	if !m.rc.Dirty() {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.gen++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	gen, snap := m.gen, m.rc.Snapshot()
	return m, func() tea.Msg {
		f, err := snap.Render(ctx)
		return frameMsg{gen: gen, frame: f, err: err}
	}
}

func (m model) handleFrame(msg frameMsg) (model, tea.Cmd) {
	if msg.gen != m.gen {
		logs.V("dropping stale frame %d (current %d)", msg.gen, m.gen)
		return m, nil
	}
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.setError(msg.err)
		}
		return m, nil
	}
	if !m.rc.Commit(msg.frame) {
		return m.schedule()
	}

	start := time.Now()
	m.frame = msg.frame
	m.canvas = RenderGrid(msg.frame.Grid, m.opts.Mode)
	m.drawTime = time.Since(start)
	logs.V("frame %d: %dx%d render %v draw %v", msg.gen, msg.frame.Grid.Width, msg.frame.Grid.Height, msg.frame.Elapsed, m.drawTime)
	return m, nil
}

// screenshot renders the current view again at image resolution with square
// pixels and stores it.
func (m model) screenshot() (tea.Cmd, error) {
	store := m.opts.Store
	if store == nil {
		return nil, errors.New("screenshots are disabled")
	}
	snap := m.rc.Snapshot()
	if m.opts.ScreenshotWidth > 0 {
		snap.State.Viewport = snap.State.Viewport.Scaled(m.opts.ScreenshotWidth, 1)
	}
	name := m.opts.PaletteName
	return func() tea.Msg {
		f, err := snap.Render(context.Background())
		if err != nil {
			return shotMsg{err: err}
		}
		id, err := store.Save(f, name)
		if err == nil {
			log.Printf("screenshot %s saved", id)
		}
		return shotMsg{id: id, err: err}
	}, nil
}

func (m *model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *model) setError(err error) {
	m.status = err.Error()
	m.isError = true
	log.Printf("error: %v", err)
}

func (m model) View() string {
	var b strings.Builder

	if m.canvas == "" {
		b.WriteString(dim.Render("rendering..."))
	} else {
		b.WriteString(m.canvas)
	}
	b.WriteString("\n")
	b.WriteString(m.hudLine())
	b.WriteString("\n")

	switch {
	case m.status != "" && m.isError:
		b.WriteString(red.Render(m.status))
	case m.status != "":
		b.WriteString(yellow.Render(m.status))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m model) hudLine() string {
	fields := rctx.HUD(m.frame, m.drawTime)
	parts := make([]string, 0, len(fields))
	for i, f := range fields {
		if i == 0 {
			parts = append(parts, cyan.Render(f.Value))
			continue
		}
		parts = append(parts, dim.Render(f.Label+" ")+white.Render(f.Value))
	}
	return strings.Join(parts, "  ")
}

func Run(rc *rctx.Rctx, opts Options) error {
	m := newModel(rc, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
