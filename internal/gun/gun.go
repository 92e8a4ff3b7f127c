// Package gun models a bolt-action chamber: the latch must be opened and
// closed to chamber a round before the gun can fire once.
package gun

import (
	"errors"
	"log/slog"
)

// LatchState is the position of the latch.
type LatchState int

const (
	Closed LatchState = iota
	Open
)

func (s LatchState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

var (
	// ErrLatchWasOpen means a shot was attempted with the latch open.
	ErrLatchWasOpen = errors.New("latch was open")
	// ErrNotLoaded means a shot was attempted on an empty chamber.
	ErrNotLoaded = errors.New("not loaded")
)

// Gun is the latch/chamber state machine. The zero value is a closed, empty
// gun.
type Gun struct {
	loaded bool
	latch  LatchState
}

// New returns a closed, empty gun.
func New() *Gun { return &Gun{} }

// Loaded reports whether a round is chambered.
func (g *Gun) Loaded() bool { return g.loaded }

// Latch returns the latch position.
func (g *Gun) Latch() LatchState { return g.latch }

// CanShoot reports whether TryConsume would succeed.
func (g *Gun) CanShoot() bool { return g.loaded && g.latch == Closed }

// SetLatchState moves the latch. Closing an open latch chambers a round;
// every other transition leaves the chamber untouched.
func (g *Gun) SetLatchState(s LatchState) {
	if g.latch == Open && s == Closed {
		g.loaded = true
	}
	g.latch = s
	slog.Debug("gun: latch state", "latch", g.latch, "loaded", g.loaded)
}

// TryConsume fires the chambered round. It fails with ErrLatchWasOpen if the
// latch is open, else with ErrNotLoaded if the chamber is empty.
func (g *Gun) TryConsume() error {
	if g.latch == Open {
		return ErrLatchWasOpen
	}
	if !g.loaded {
		return ErrNotLoaded
	}
	g.loaded = false
	return nil
}
