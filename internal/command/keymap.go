package command

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// Name is a normalized key name in Bubble Tea's notation ("a", "up",
// "ctrl+c", "+"). Backends other than Bubble Tea convert their events to
// a Name before lookup.
type Name string

func (n Name) String() string { return string(n) }

// KeyMap binds key names to commands. Both backends share one KeyMap.
type KeyMap struct {
	PanLeft            key.Binding
	PanRight           key.Binding
	PanUp              key.Binding
	PanDown            key.Binding
	ZoomIn             key.Binding
	ZoomOut            key.Binding
	IncreaseExponent   key.Binding
	DecreaseExponent   key.Binding
	SwitchFractalKind  key.Binding
	ToggleSmoothing    key.Binding
	IncreaseIterations key.Binding
	DecreaseIterations key.Binding
	Reset              key.Binding
	Screenshot         key.Binding
	Help               key.Binding
	Quit               key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PanLeft: key.NewBinding(
			key.WithKeys("a", "left", "h"),
			key.WithHelp("a/←", "left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d/→", "right"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("w/↑", "up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("s/↓", "down"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		IncreaseExponent: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "exp+"),
		),
		DecreaseExponent: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "exp-"),
		),
		SwitchFractalKind: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "mandelbrot/julia"),
		),
		ToggleSmoothing: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "smoothing"),
		),
		IncreaseIterations: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "iter+"),
		),
		DecreaseIterations: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "iter-"),
		),
		Reset: key.NewBinding(
			key.WithKeys("m", "r"),
			key.WithHelp("m", "reset"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (km KeyMap) bindings() []struct {
	b   key.Binding
	cmd Command
} {
	return []struct {
		b   key.Binding
		cmd Command
	}{
		{km.PanLeft, PanLeft},
		{km.PanRight, PanRight},
		{km.PanUp, PanUp},
		{km.PanDown, PanDown},
		{km.ZoomIn, ZoomIn},
		{km.ZoomOut, ZoomOut},
		{km.IncreaseExponent, IncreaseExponent},
		{km.DecreaseExponent, DecreaseExponent},
		{km.SwitchFractalKind, SwitchFractalKind},
		{km.ToggleSmoothing, ToggleSmoothing},
		{km.IncreaseIterations, IncreaseIterations},
		{km.DecreaseIterations, DecreaseIterations},
		{km.Reset, Reset},
		{km.Screenshot, Screenshot},
		{km.Quit, Quit},
	}
}

// Lookup returns the command bound to k, or None. k is anything whose
// String is a normalized key name, e.g. tea.KeyMsg or Name.
func (km KeyMap) Lookup(k fmt.Stringer) Command {
	for _, e := range km.bindings() {
		if key.Matches(k, e.b) {
			return e.cmd
		}
	}
	return None
}

// ShortHelp and FullHelp implement help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.PanLeft, km.ZoomIn, km.ZoomOut, km.SwitchFractalKind, km.Help, km.Quit}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.PanLeft, km.PanRight, km.PanUp, km.PanDown},
		{km.ZoomIn, km.ZoomOut, km.IncreaseIterations, km.DecreaseIterations},
		{km.IncreaseExponent, km.DecreaseExponent, km.SwitchFractalKind, km.ToggleSmoothing},
		{km.Reset, km.Screenshot, km.Help, km.Quit},
	}
}
