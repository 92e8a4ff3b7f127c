package game

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/chase3718/latchgun/internal/config"
	"github.com/chase3718/latchgun/internal/player"
)

// Input is the controller as the states use it. *input.Hub satisfies it.
type Input interface {
	player.Controls
	Connect() error
	Flush()
}

// Camera is the world point shown at the centre of the screen.
type Camera struct {
	X, Y float64
}

// Offset converts a world position to screen space for a w by h view.
func (c Camera) Offset(w, h int) (dx, dy float64) {
	return float64(w)/2 - c.X, float64(h)/2 - c.Y
}

// Shared is the data every state can reach.
type Shared struct {
	Config config.Config
	Input  Input
	// AudioContext is nil when sound is disabled.
	AudioContext *audio.Context
	// Assets and Audio are filled in by the boot state.
	Assets *Assets
	Audio  player.Audio
	Camera Camera
}

// Size returns the logical screen size.
func (s *Shared) Size() (int, int) {
	return s.Config.Window.Width, s.Config.Window.Height
}
