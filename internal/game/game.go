package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/chase3718/latchgun/internal/config"
)

// Game adapts the state manager to ebiten.Game.
type Game struct {
	mgr    *Manager
	width  int
	height int
}

// New builds the boot state, the play state after it, and the audio context.
// in must not be connected yet; the boot state connects it.
func New(cfg config.Config, in Input) *Game {
	shared := &Shared{
		Config:       cfg,
		Input:        in,
		AudioContext: audio.NewContext(SampleRate),
		Camera:       Camera{X: float64(cfg.Window.Width) / 2, Y: float64(cfg.Window.Height) / 2},
	}
	boot := NewBootState(NewPlayState(), NewLoader(cfg.Assets.Dir))
	return &Game{
		mgr:    NewManager(boot, shared),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
}

// Update advances one tick at ebiten's fixed rate.
func (g *Game) Update() error {
	return g.mgr.Update(1 / float64(ebiten.TPS()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.mgr.Draw(screen)
}

// Layout keeps the logical resolution fixed; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
