package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.bug.st/serial"
)

// DefaultSerialBaud is the DIN MIDI line rate.
const DefaultSerialBaud = 31250

// SerialPort reads a raw MIDI byte stream from a serial device, e.g. a
// controller behind a USB-serial bridge.
type SerialPort struct {
	device string
	baud   int
}

// NewSerialPort returns a port for device. A non-positive baud selects
// DefaultSerialBaud.
func NewSerialPort(device string, baud int) *SerialPort {
	if baud <= 0 {
		baud = DefaultSerialBaud
	}
	return &SerialPort{device: device, baud: baud}
}

func (p *SerialPort) String() string { return "serial:" + p.device }

// Listen opens the device and parses it on a background goroutine until a
// read fails.
func (p *SerialPort) Listen(h Handler) error {
	port, err := serial.Open(p.device, &serial.Mode{BaudRate: p.baud})
	if err != nil {
		return fmt.Errorf("serial open %q: %w", p.device, err)
	}
	slog.Info("serial: port opened", "device", p.device, "baud", p.baud)
	go func() {
		if err := readStream(port, time.Now(), h); err != nil {
			slog.Warn("serial: listener stopped", "device", p.device, "err", err)
		}
	}()
	return nil
}

// readStream runs r through a gomidi stream reader, which tracks running
// status and skips SysEx, and forwards control changes to h with a
// millisecond timestamp relative to start. It returns nil on EOF.
func readStream(r io.Reader, start time.Time, h Handler) error {
	rd := drivers.NewReader(drivers.ListenConfig{}, func(b []byte, _ int32) {
		dispatch(midi.Message(b), uint64(time.Since(start).Milliseconds()), h)
	})
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			rd.EachMessage(buf[:n], 0)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
