// Package game hosts the boot and play states on an ebiten game loop.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// State is one screen of the game.
type State interface {
	// OnEnter runs once when the state becomes current.
	OnEnter(s *Shared) error
	// OnUpdate advances one frame. A non-nil command switches state.
	OnUpdate(dt float64, s *Shared) (*Command, error)
	OnDraw(dst *ebiten.Image, s *Shared)
}

// Command asks the Manager to change state.
type Command struct {
	Next State
	// Transition is how long the slide-in of Next lasts. Zero switches
	// without a transition.
	Transition time.Duration
}

// Manager owns the current state and runs transitions between states.
type Manager struct {
	shared  *Shared
	current State
	entered bool

	transition float64
	remaining  float64
}

// NewManager starts on initial. initial is entered on the first Update.
func NewManager(initial State, shared *Shared) *Manager {
	return &Manager{shared: shared, current: initial}
}

// Current returns the active state.
func (m *Manager) Current() State { return m.current }

// Transitioning reports whether a slide transition is still running.
func (m *Manager) Transitioning() bool { return m.remaining > 0 }

// Update enters the current state if needed, advances it and applies any
// command it returns.
func (m *Manager) Update(dt float64) error {
	if !m.entered {
		if err := m.enter(); err != nil {
			return err
		}
	}
	if m.remaining > 0 {
		m.remaining -= dt
	}

	cmd, err := m.current.OnUpdate(dt, m.shared)
	if err != nil {
		return fmt.Errorf("update %T: %w", m.current, err)
	}
	if cmd == nil || cmd.Next == nil {
		return nil
	}

	slog.Info("game: change state", "from", fmt.Sprintf("%T", m.current), "to", fmt.Sprintf("%T", cmd.Next), "transition", cmd.Transition)
	m.current = cmd.Next
	m.entered = false
	m.transition = cmd.Transition.Seconds()
	m.remaining = m.transition
	return m.enter()
}

func (m *Manager) enter() error {
	if err := m.current.OnEnter(m.shared); err != nil {
		return fmt.Errorf("enter %T: %w", m.current, err)
	}
	m.entered = true
	return nil
}

// Draw renders the current state and, during a transition, the sliding
// curtain that uncovers it.
func (m *Manager) Draw(dst *ebiten.Image) {
	if !m.entered {
		return
	}
	m.current.OnDraw(dst, m.shared)
	if m.remaining <= 0 || m.transition <= 0 {
		return
	}
	b := dst.Bounds()
	w := float32(b.Dx()) * float32(m.remaining/m.transition)
	vector.DrawFilledRect(dst, float32(b.Dx())-w, 0, w, float32(b.Dy()), color.Black, false)
}
