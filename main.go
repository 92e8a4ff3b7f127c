package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/chase3718/latchgun/internal/config"
	"github.com/chase3718/latchgun/internal/game"
	"github.com/chase3718/latchgun/internal/input"
)

const defaultConfigPath = "latchgun.toml"

var logger = slog.Default()

// setupLogging writes text logs to stderr. Debug mode lowers the level and
// adds source positions. The logger becomes the slog default, which is what
// the internal packages log through.
func setupLogging(debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(l)
	return l
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging (adds source location)")
	cfgPath := flag.String("config", defaultConfigPath, "TOML config file")
	serialDev := flag.String("serial", "", "serial MIDI device, overrides [serial].device")
	baud := flag.Int("baud", 0, "serial baud rate, overrides [serial].baud")
	flag.Parse()

	logger = setupLogging(*debug)

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := config.Load(*cfgPath, explicit)
	if err != nil {
		logger.Error("config: load failed", "path", *cfgPath, "err", err)
		os.Exit(1)
	}
	if *serialDev != "" {
		cfg.Serial.Device = *serialDev
	}
	if *baud > 0 {
		cfg.Serial.Baud = *baud
	}

	logger.Info("latchgun starting",
		"config", *cfgPath,
		"debug", *debug,
		"serial", cfg.Serial.Device,
		"rise", cfg.Thresholds.Rise,
		"fall", cfg.Thresholds.Fall,
	)

	hub, err := openController(cfg)
	if err != nil {
		logger.Error("input: no controller", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(game.New(cfg, hub)); err != nil {
		logger.Error("game: stopped", "err", err)
		os.Exit(1)
	}
}

// openController picks the first usable port: the serial device if one is
// configured, else the first rtmidi input that is not excluded. The rtmidi
// driver stays open for the life of the process.
func openController(cfg config.Config) (*input.Hub, error) {
	var serialPort input.Port
	if cfg.Serial.Device != "" {
		serialPort = input.NewSerialPort(cfg.Serial.Device, cfg.Serial.Baud)
	}

	var lister input.Lister
	drv, err := rtmididrv.New()
	if err != nil {
		logger.Warn("midi: rtmidi driver unavailable", "err", err)
	} else {
		lister = drv
	}

	hub, err := input.New(input.Ports(serialPort, lister, cfg.MIDI.Exclude))
	if errors.Is(err, input.ErrNoDeviceFound) && lister != nil {
		drv.Close()
	}
	return hub, err
}
