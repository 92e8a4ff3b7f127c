// Package input bridges an asynchronous MIDI controller to a frame-synchronous
// polling API.
//
// A single listener goroutine writes control-change samples into the current
// frame buffer. The game loop reads buttons and sliders during the frame and
// calls Flush once at the end of it, which moves every current sample into the
// previous-frame buffer and empties the current one. Edge and threshold
// queries compare the two buffers.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ButtonOn is the value a controller sends for a pressed button.
const ButtonOn = 127

const maxValue = 127

var (
	// ErrNoDeviceFound is returned by New when there is no port to listen on.
	ErrNoDeviceFound = errors.New("no MIDI device found")
	// ErrAlreadyConnected is returned by a second call to Connect.
	ErrAlreadyConnected = errors.New("input already connected")
)

// Sample is the most recent control-change value seen for one controller id.
type Sample struct {
	Timestamp uint64
	Value     uint8
}

// Direction selects which way FractionReachedLimit watches a level crossing.
type Direction int

const (
	// Higher fires when a slider rises to or past the threshold.
	Higher Direction = iota
	// Lower fires when a slider falls to or past the threshold.
	Lower
)

func (d Direction) String() string {
	switch d {
	case Higher:
		return "higher"
	case Lower:
		return "lower"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Handler receives one control change. It is called from the port's listener
// goroutine.
type Handler func(id, value uint8, timestamp uint64)

// Port is an input endpoint that can deliver control changes.
type Port interface {
	String() string
	// Listen opens the port and starts delivering control changes to h from
	// a background goroutine. It runs until the process exits.
	Listen(h Handler) error
}

// Hub owns the connection to one controller and the two frame buffers.
//
// Lock order is always curMu then prevMu. The listener only takes curMu.
type Hub struct {
	port Port
	name string

	connMu    sync.Mutex
	connected bool

	curMu   sync.Mutex
	current map[uint8]Sample

	prevMu   sync.Mutex
	previous map[uint8]Sample
}

// New selects the first of ports and resolves its name. It does not start
// listening; call Connect for that.
func New(ports []Port) (*Hub, error) {
	if len(ports) == 0 {
		return nil, ErrNoDeviceFound
	}
	p := ports[0]
	h := &Hub{
		port:     p,
		name:     p.String(),
		current:  make(map[uint8]Sample, 16),
		previous: make(map[uint8]Sample, 16),
	}
	slog.Info("input: device selected", "device", h.name, "available", len(ports))
	return h, nil
}

// DeviceName is the name of the selected port.
func (h *Hub) DeviceName() string { return h.name }

// Connect starts the listener. It may succeed only once per Hub.
func (h *Hub) Connect() error {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.connected {
		return ErrAlreadyConnected
	}
	if err := h.port.Listen(h.record); err != nil {
		return fmt.Errorf("connect %q: %w", h.name, err)
	}
	h.connected = true
	slog.Info("input: connected", "device", h.name)
	return nil
}

// record is the only writer of current. A newer event for the same id
// replaces the older one.
func (h *Hub) record(id, value uint8, timestamp uint64) {
	h.curMu.Lock()
	h.current[id] = Sample{Timestamp: timestamp, Value: value}
	h.curMu.Unlock()
	slog.Debug("input: control change", "id", id, "value", value, "ts", timestamp)
}

// Current returns this frame's sample for id, if one arrived.
func (h *Hub) Current(id uint8) (Sample, bool) {
	h.curMu.Lock()
	defer h.curMu.Unlock()
	s, ok := h.current[id]
	return s, ok
}

// Previous returns the sample carried over from earlier frames for id.
func (h *Hub) Previous(id uint8) (Sample, bool) {
	h.prevMu.Lock()
	defer h.prevMu.Unlock()
	s, ok := h.previous[id]
	return s, ok
}

// both snapshots the current and previous samples for id under the
// documented lock order.
func (h *Hub) both(id uint8) (cur Sample, curOK bool, prev Sample, prevOK bool) {
	h.curMu.Lock()
	defer h.curMu.Unlock()
	h.prevMu.Lock()
	defer h.prevMu.Unlock()
	cur, curOK = h.current[id]
	prev, prevOK = h.previous[id]
	return
}

// IsButtonPressed reports whether id sent ButtonOn this frame. Values are not
// carried forward: no event this frame means not pressed.
func (h *Hub) IsButtonPressed(id uint8) bool {
	s, ok := h.Current(id)
	return ok && s.Value == ButtonOn
}

// IsButtonHeld reports whether id read ButtonOn on two consecutive polls.
// If only one of the two buffers has a sample for id, that sample decides.
func (h *Hub) IsButtonHeld(id uint8) bool {
	cur, curOK, prev, prevOK := h.both(id)
	switch {
	case curOK && prevOK:
		return cur.Value == ButtonOn && prev.Value == ButtonOn
	case curOK:
		return cur.Value == ButtonOn
	case prevOK:
		return prev.Value == ButtonOn
	}
	return false
}

// IsButtonReleased is the negation of IsButtonPressed. It does not require the
// button to have been pressed before.
func (h *Hub) IsButtonReleased(id uint8) bool {
	return !h.IsButtonPressed(id)
}

// Fraction maps a raw 0..127 value onto 0..1.
func Fraction(v uint8) float64 {
	return float64(v) / maxValue
}

// GetFraction returns the slider position for id from this frame, else from
// the last frame that had one, else 0.
func (h *Hub) GetFraction(id uint8) float64 {
	cur, curOK, prev, prevOK := h.both(id)
	switch {
	case curOK:
		return Fraction(cur.Value)
	case prevOK:
		return Fraction(prev.Value)
	}
	return 0
}

// FractionReachedLimit reports whether the slider id crossed threshold in
// direction dir between the previous and the current poll. Both samples must
// exist.
func (h *Hub) FractionReachedLimit(id uint8, threshold float64, dir Direction) bool {
	cur, curOK, prev, prevOK := h.both(id)
	if !curOK || !prevOK {
		return false
	}
	return crossed(Fraction(prev.Value), Fraction(cur.Value), threshold, dir)
}

func crossed(prev, cur, threshold float64, dir Direction) bool {
	switch dir {
	case Higher:
		return cur >= threshold && prev < threshold
	case Lower:
		return cur <= threshold && prev > threshold
	}
	return false
}

// Flush ends the frame: every current sample overwrites its previous entry
// and current is cleared. Ids without a new sample keep their previous value
// indefinitely.
func (h *Hub) Flush() {
	h.curMu.Lock()
	defer h.curMu.Unlock()
	h.prevMu.Lock()
	defer h.prevMu.Unlock()
	for id, s := range h.current {
		h.previous[id] = s
	}
	clear(h.current)
}
