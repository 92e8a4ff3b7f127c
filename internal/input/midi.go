package input

import (
	"fmt"
	"log/slog"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DefaultExcludedPatterns are virtual/system ports that never count as a
// controller.
var DefaultExcludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// Lister enumerates MIDI input ports. *rtmididrv.Driver satisfies it.
type Lister interface {
	Ins() ([]drivers.In, error)
}

// Ports lists candidate controllers in preference order: serial first when
// it is non-nil, then the MIDI inputs of drv. A nil drv contributes nothing. A
// failed listing is logged and leaves only the serial port.
func Ports(serial Port, drv Lister, excluded []string) []Port {
	var ports []Port
	if serial != nil {
		ports = append(ports, serial)
	}
	if drv == nil {
		return ports
	}
	midiPorts, err := MIDIPorts(drv, excluded)
	if err != nil {
		slog.Warn("midi: list inputs failed", "err", err)
		return ports
	}
	return append(ports, midiPorts...)
}

// MIDIPorts lists the driver's inputs in driver order, skipping any whose name
// matches one of excluded (case-insensitive substring).
func MIDIPorts(drv Lister, excluded []string) ([]Port, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list MIDI inputs: %w", err)
	}
	var ports []Port
	for _, in := range ins {
		name := in.String()
		if matchesAny(name, excluded) {
			slog.Debug("midi: input excluded", "device", name)
			continue
		}
		ports = append(ports, &midiPort{in: in})
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	slog.Debug("midi: inputs found", "count", len(ports), "devices", strings.Join(names, ", "))
	return ports, nil
}

type midiPort struct {
	in drivers.In
}

func (p *midiPort) String() string { return p.in.String() }

func (p *midiPort) Listen(h Handler) error {
	name := p.in.String()
	if err := p.in.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}
	_, err := midi.ListenTo(p.in, func(msg midi.Message, timestampms int32) {
		dispatch(msg, uint64(uint32(timestampms)), h)
	}, midi.HandleError(func(listenErr error) {
		slog.Warn("midi: listener error", "device", name, "err", listenErr)
	}))
	if err != nil {
		_ = p.in.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}
	return nil
}

// dispatch forwards control changes to h and drops everything else.
func dispatch(msg midi.Message, timestamp uint64, h Handler) {
	var ch, controller, value uint8
	if msg.GetControlChange(&ch, &controller, &value) {
		h(controller, value, timestamp)
		return
	}
	slog.Debug("midi: unhandled message", "msg", msg.String())
}

// -------------------- utility --------------------

func matchesAny(name string, patterns []string) bool {
	for _, pat := range patterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
