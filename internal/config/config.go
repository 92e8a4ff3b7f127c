// Package config loads the game's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/chase3718/latchgun/internal/input"
)

// Config is the full runtime configuration.
type Config struct {
	MIDI       MIDI       `toml:"midi"`
	Serial     Serial     `toml:"serial"`
	Controls   Controls   `toml:"controls"`
	Thresholds Thresholds `toml:"thresholds"`
	Physics    Physics    `toml:"physics"`
	Window     Window     `toml:"window"`
	Assets     Assets     `toml:"assets"`
}

// MIDI holds port selection settings.
type MIDI struct {
	// Exclude lists case-insensitive name fragments of ports that are never
	// selected.
	Exclude []string `toml:"exclude"`
}

// Serial describes an optional serial-attached controller. An empty Device
// disables it.
type Serial struct {
	Device string `toml:"device"`
	Baud   int    `toml:"baud"`
}

// Controls is the controller layout: which MIDI controller id drives what.
type Controls struct {
	MoveLeft      uint8 `toml:"move_left"`
	MoveRight     uint8 `toml:"move_right"`
	Jump          uint8 `toml:"jump"`
	Fire          uint8 `toml:"fire"`
	JumpStrength  uint8 `toml:"jump_strength"`
	Latch         uint8 `toml:"latch"`
	Crouch        uint8 `toml:"crouch"`
	WaterStrength uint8 `toml:"water_strength"`
	WaterSpeed    uint8 `toml:"water_speed"`
	CameraX       uint8 `toml:"camera_x"`
	CameraY       uint8 `toml:"camera_y"`
}

// Thresholds are the slider levels that count as a rising or falling edge.
type Thresholds struct {
	Rise float64 `toml:"rise"`
	Fall float64 `toml:"fall"`
}

// Physics holds the player movement constants.
type Physics struct {
	Gravity         float64 `toml:"gravity"`
	MoveSpeed       float64 `toml:"move_speed"`
	MaxJumpStrength float64 `toml:"max_jump_strength"`
	// GroundLine is the ground height as a fraction of the game height.
	GroundLine   float64 `toml:"ground_line"`
	JumpStrength float64 `toml:"initial_jump_strength"`
}

// Window holds presentation settings.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Scale  int    `toml:"scale"`
}

// Assets locates textures and sounds.
type Assets struct {
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MIDI:   MIDI{Exclude: append([]string(nil), input.DefaultExcludedPatterns...)},
		Serial: Serial{Baud: input.DefaultSerialBaud},
		Controls: Controls{
			MoveLeft:      41,
			MoveRight:     45,
			Jump:          64,
			Fire:          65,
			JumpStrength:  0,
			Latch:         1,
			Crouch:        2,
			WaterStrength: 3,
			WaterSpeed:    4,
			CameraX:       6,
			CameraY:       7,
		},
		Thresholds: Thresholds{Rise: 0.7, Fall: 0.3},
		Physics: Physics{
			Gravity:         30,
			MoveSpeed:       200,
			MaxJumpStrength: 12,
			GroundLine:      0.4,
			JumpStrength:    0.05,
		},
		Window: Window{Title: "latchgun", Width: 514, Height: 256, Scale: 2},
		Assets: Assets{Dir: "resources"},
	}
}

// Load decodes path over the defaults. When required is false a missing file
// yields the defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that the rest of the program relies on.
func (c Config) Validate() error {
	ids := map[string]uint8{
		"move_left":      c.Controls.MoveLeft,
		"move_right":     c.Controls.MoveRight,
		"jump":           c.Controls.Jump,
		"fire":           c.Controls.Fire,
		"jump_strength":  c.Controls.JumpStrength,
		"latch":          c.Controls.Latch,
		"crouch":         c.Controls.Crouch,
		"water_strength": c.Controls.WaterStrength,
		"water_speed":    c.Controls.WaterSpeed,
		"camera_x":       c.Controls.CameraX,
		"camera_y":       c.Controls.CameraY,
	}
	for name, id := range ids {
		if id > 127 {
			return fmt.Errorf("controls.%s: id %d out of range 0..127", name, id)
		}
	}

	t := c.Thresholds
	if t.Rise < 0 || t.Rise > 1 || t.Fall < 0 || t.Fall > 1 {
		return fmt.Errorf("thresholds must be within 0..1, got rise=%v fall=%v", t.Rise, t.Fall)
	}
	if t.Fall >= t.Rise {
		return fmt.Errorf("thresholds.fall (%v) must be below thresholds.rise (%v)", t.Fall, t.Rise)
	}

	p := c.Physics
	if p.Gravity <= 0 || p.MoveSpeed <= 0 || p.MaxJumpStrength <= 0 {
		return errors.New("physics constants must be positive")
	}
	if p.GroundLine <= 0 || p.GroundLine > 1 {
		return fmt.Errorf("physics.ground_line must be within (0,1], got %v", p.GroundLine)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.Scale <= 0 {
		return errors.New("window size and scale must be positive")
	}
	if c.Serial.Device != "" && c.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud)
	}
	return nil
}

