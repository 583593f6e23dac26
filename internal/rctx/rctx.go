// Package rctx owns the render state of an interactive session.
//
// An Rctx holds the current Viewport and Params, the state Reset returns to,
// a dirty flag and the last finished Frame. It is meant to be driven from a
// single goroutine (the UI loop). Work that runs elsewhere takes a Snapshot
// first; a snapshot never changes after it is taken, so a frame rendered
// from it cannot mix two states.
package rctx

import (
	"context"

	"github.com/san-kum/mandelterm/internal/command"
	"github.com/san-kum/mandelterm/internal/palette"
)

type Rctx struct {
	interp *command.Interpreter
	state  command.State
	opts   Options
	dirty  bool
	frame  *Frame
}

func New(initial command.State, steps command.Steps, opts Options) (*Rctx, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if err := steps.Validate(); err != nil {
		return nil, err
	}
	if opts.Palette == nil {
		opts.Palette = palette.Default()
	}
	return &Rctx{
		interp: command.NewInterpreter(steps, initial),
		state:  initial,
		opts:   opts,
		dirty:  true,
	}, nil
}

func (r *Rctx) State() command.State { return r.state }
func (r *Rctx) Options() Options      { return r.opts }
func (r *Rctx) Dirty() bool           { return r.dirty }

// Last returns the most recent frame, or nil before the first render.
func (r *Rctx) Last() *Frame { return r.frame }

// Apply runs cmd through the interpreter. A rejected command leaves the
// state and the dirty flag untouched.
func (r *Rctx) Apply(cmd command.Command) error {
	next, err := r.interp.Apply(cmd, r.state)
	if err != nil {
		return err
	}
	if next != r.state {
		r.state = next
		r.dirty = true
	}
	return nil
}

// Resize adopts new grid dimensions. Non-positive sizes are ignored.
func (r *Rctx) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == r.state.Viewport.Width && height == r.state.Viewport.Height {
		return
	}
	r.state.Viewport = r.state.Viewport.Resized(width, height)
	r.dirty = true
}

func (r *Rctx) SetPalette(p palette.Palette) {
	r.opts.Palette = p
	r.dirty = true
}

// Snapshot is an immutable copy of everything a frame depends on.
type Snapshot struct {
	State   command.State
	Options Options
}

func (r *Rctx) Snapshot() Snapshot {
	return Snapshot{State: r.state, Options: r.opts}
}

func (s Snapshot) Render(ctx context.Context) (*Frame, error) {
	return RenderFrame(ctx, s.State.Viewport, s.State.Params, s.Options)
}

// Render returns the last frame when nothing changed since it was made,
// otherwise renders the current state synchronously.
func (r *Rctx) Render(ctx context.Context) (*Frame, error) {
	if !r.dirty && r.frame != nil {
		return r.frame, nil
	}
	f, err := r.Snapshot().Render(ctx)
	if err != nil {
		return nil, err
	}
	r.frame = f
	r.dirty = false
	return f, nil
}

// Commit records a frame rendered elsewhere from a snapshot. It reports
// whether the frame still matches the current state; stale frames are not
// stored and leave the context dirty.
func (r *Rctx) Commit(f *Frame) bool {
	if f == nil || f.Viewport != r.state.Viewport || f.Params != r.state.Params {
		return false
	}
	r.frame = f
	r.dirty = false
	return true
}
