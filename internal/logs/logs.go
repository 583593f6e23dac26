// Package logs routes the standard logger away from the terminal while a
// full-screen backend owns it.
package logs

import (
	"io"
	"log"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var verbose atomic.Bool

func SetVerbose(v bool) { verbose.Store(v) }
func Verbose() bool     { return verbose.Load() }

// V prints a formatted log message only when verbose logging is enabled.
func V(format string, args ...any) {
	if verbose.Load() {
		log.Printf(format, args...)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup sends log output to path with the given prefix. An empty path
// discards it. The returned Closer closes the file.
func Setup(path, prefix string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Stderr restores logging to standard error for non-interactive commands.
func Stderr(prefix string) {
	log.SetOutput(os.Stderr)
	log.SetPrefix(prefix)
}
