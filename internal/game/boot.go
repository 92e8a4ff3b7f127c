package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const bootTransition = 300 * time.Millisecond

// BootState connects the controller and loads assets, then hands over to
// the next state.
type BootState struct {
	next   State
	loader *Loader
}

// NewBootState returns a boot state that continues with next.
func NewBootState(next State, loader *Loader) *BootState {
	return &BootState{next: next, loader: loader}
}

// OnEnter connects the controller.
func (b *BootState) OnEnter(s *Shared) error {
	return s.Input.Connect()
}

// OnUpdate loads one asset per frame.
func (b *BootState) OnUpdate(_ float64, s *Shared) (*Command, error) {
	done, err := b.loader.LoadNext()
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, nil
	}
	s.Assets = b.loader.Assets()
	s.Audio = NewMixer(s.AudioContext, s.Assets.Sounds)
	return &Command{Next: b.next, Transition: bootTransition}, nil
}

// OnDraw shows loading progress.
func (b *BootState) OnDraw(dst *ebiten.Image, s *Shared) {
	w, h := s.Size()
	msg := fmt.Sprintf("BOOTING UP... %.0f%%", b.loader.Progress()*100)
	ebitenutil.DebugPrintAt(dst, msg, w/2-len(msg)*3, h/2)
}
