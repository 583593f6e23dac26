package term

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/mandelterm/internal/command"
	"github.com/san-kum/mandelterm/internal/compute"
	"github.com/san-kum/mandelterm/internal/fractal"
	"github.com/san-kum/mandelterm/internal/palette"
	"github.com/san-kum/mandelterm/internal/rctx"
	"github.com/san-kum/mandelterm/internal/storage"
)

func TestKeysMatchBubbleTea(t *testing.T) {
	keys := command.DefaultKeyMap()
	tests := []struct {
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		msg  tea.KeyMsg
		want command.Command
	}{
		{tcell.KeyRune, 'w', 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, command.PanUp},
		{tcell.KeyRune, '+', 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, command.ZoomIn},
		{tcell.KeyRune, '_', 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'_'}}, command.ZoomOut},
		{tcell.KeyRune, 'x', 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, command.SwitchFractalKind},
		{tcell.KeyUp, 0, 0, tea.KeyMsg{Type: tea.KeyUp}, command.PanUp},
		{tcell.KeyLeft, 0, 0, tea.KeyMsg{Type: tea.KeyLeft}, command.PanLeft},
		{tcell.KeyEscape, 0, 0, tea.KeyMsg{Type: tea.KeyEsc}, command.Quit},
		{tcell.KeyCtrlC, 0, 0, tea.KeyMsg{Type: tea.KeyCtrlC}, command.Quit},
		{tcell.KeyRune, 'c', tcell.ModCtrl, tea.KeyMsg{Type: tea.KeyCtrlC}, command.Quit},
		{tcell.KeyRune, 'z', 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, command.None},
	}

	for _, tt := range tests {
		name := keyName(tt.key, tt.r, tt.mod)
		got := keys.Lookup(name)
		if got != tt.want {
			t.Errorf("tcell %q: expected %v, got %v", name, tt.want, got)
		}
		if bt := keys.Lookup(tt.msg); bt != got {
			t.Errorf("%q: bubbletea resolves to %v, tcell to %v", tt.msg.String(), bt, got)
		}
	}
}

func TestKeyNameControlKeys(t *testing.T) {
	if got := keyName(tcell.KeyCtrlA, 0, 0); got != "ctrl+a" {
		t.Errorf("expected ctrl+a, got %q", got)
	}
	if got := keyName(tcell.KeyEnter, 0, 0); got != "enter" {
		t.Errorf("expected enter, got %q", got)
	}
	if got := keyName(tcell.KeyRune, 'x', tcell.ModAlt); got != "alt+x" {
		t.Errorf("expected alt+x, got %q", got)
	}
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(100, 12)
	t.Cleanup(screen.Fini)

	s := command.State{
		Viewport: fractal.NewViewport(complex(-0.5, 0), 1, 80, 24),
		Params:   fractal.DefaultParams(),
	}
	ro := rctx.DefaultOptions()
	ro.Backend = compute.NewSerialBackend()
	rc, err := rctx.New(s, command.DefaultSteps(), ro)
	if err != nil {
		t.Fatal(err)
	}
	a := New(screen, rc, opts)
	t.Cleanup(a.stop)
	return a
}

func line(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestResizeRendersAndDraws(t *testing.T) {
	a := newTestApp(t, Options{})
	a.resize(a.screen.Size())
	a.handleFrame(<-a.frames)
	a.draw()

	if a.frame == nil {
		t.Fatal("expected a committed frame")
	}
	if a.frame.Grid.Width != 100 || a.frame.Grid.Height != 10 {
		t.Errorf("expected a 100x10 grid, got %dx%d", a.frame.Grid.Width, a.frame.Grid.Height)
	}

	_, _, st, _ := a.screen.GetContent(0, 0)
	_, bg, _ := st.Decompose()
	if want := cellColor(a.frame.Grid.At(0, 0), a.truecolor()); bg != want {
		t.Errorf("corner background %v, want %v", bg, want)
	}
	if hud := line(a.screen, 10); !strings.Contains(hud, "mandelbrot") || !strings.Contains(hud, "iter") {
		t.Errorf("unexpected HUD line %q", hud)
	}
	if help := line(a.screen, 11); !strings.Contains(help, "quit") {
		t.Errorf("expected key help, got %q", help)
	}
}

func TestHalfBlockDrawing(t *testing.T) {
	a := newTestApp(t, Options{Mode: rctx.ModeHalfBlock})
	a.resize(a.screen.Size())
	a.handleFrame(<-a.frames)
	a.draw()

	if a.frame.Grid.Height != 20 {
		t.Fatalf("expected 20 grid rows, got %d", a.frame.Grid.Height)
	}
	r, _, st, _ := a.screen.GetContent(3, 2)
	if r != '▀' {
		t.Fatalf("expected a half block, got %q", r)
	}
	fg, bg, _ := st.Decompose()
	tc := a.truecolor()
	if fg != cellColor(a.frame.Grid.At(3, 4), tc) || bg != cellColor(a.frame.Grid.At(3, 5), tc) {
		t.Error("half block colors do not match the grid rows")
	}
}

func TestStaleFrameDropped(t *testing.T) {
	a := newTestApp(t, Options{})
	a.resize(a.screen.Size())
	first := <-a.frames

	a.handleKey("d")
	a.handleFrame(first)
	if a.frame != nil {
		t.Error("frame of an older generation must be dropped")
	}

	a.handleFrame(<-a.frames)
	if a.frame == nil || a.frame.Viewport != a.rc.State().Viewport {
		t.Error("expected the frame for the current state")
	}
}

func TestHandleKey(t *testing.T) {
	a := newTestApp(t, Options{})
	if !a.handleKey("q") || !a.handleKey("ctrl+c") {
		t.Error("quit keys should stop the app")
	}
	if a.handleKey("?"); !a.showHelp {
		t.Error("? should toggle help")
	}
	if a.handleKey("p"); !a.isError {
		t.Error("screenshot without a store should report an error")
	}

	for i := 0; i < 4; i++ {
		a.handleKey("g")
	}
	if !a.isError || !strings.Contains(a.status, "max_iterations") {
		t.Errorf("expected iteration bounds error, got %q", a.status)
	}
	if got := a.rc.State().Params.MaxIterations; got != 25 {
		t.Errorf("expected 25 iterations after the rejected step, got %d", got)
	}
}

func TestScreenshot(t *testing.T) {
	store := storage.New(t.TempDir())
	a := newTestApp(t, Options{Store: store, PaletteName: palette.DefaultName, ScreenshotWidth: 48})

	a.handleKey("p")
	a.handleShot(<-a.shots)
	if a.isError {
		t.Fatalf("screenshot failed: %s", a.status)
	}

	shots, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) != 1 || shots[0].Width != 48 {
		t.Errorf("expected one 48 wide shot, got %+v", shots)
	}
}

func TestCellColorFallback(t *testing.T) {
	c := palette.Color{R: 255}
	if got := cellColor(c, false); got != tcell.PaletteColor(196) {
		t.Errorf("expected palette index 196, got %v", got)
	}
	if got := cellColor(c, true); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("expected direct red, got %v", got)
	}
}
