package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/mandelterm/internal/command"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdown",
	tcell.KeyDelete:     "delete",
	tcell.KeyEscape:     "esc",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace2: "backspace",
}

// KeyName converts a tcell key event to the name the shared keymap matches
// against, so both front ends resolve a key to the same command.
func KeyName(ev *tcell.EventKey) command.Name {
	return keyName(ev.Key(), ev.Rune(), ev.Modifiers())
}

func keyName(k tcell.Key, r rune, mod tcell.ModMask) command.Name {
	if k == tcell.KeyRune {
		switch {
		case mod&tcell.ModCtrl != 0:
			return command.Name("ctrl+" + string(unicode.ToLower(r)))
		case mod&tcell.ModAlt != 0:
			return command.Name("alt+" + string(r))
		}
		return command.Name(string(r))
	}
	if name, ok := specialKeys[k]; ok {
		if mod&tcell.ModAlt != 0 {
			name = "alt+" + name
		}
		return command.Name(name)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return command.Name("ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA))))
	}
	return ""
}
