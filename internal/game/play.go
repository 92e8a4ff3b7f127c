package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/chase3718/latchgun/internal/player"
	"github.com/chase3718/latchgun/internal/sprite"
)

// PlayState runs the player and the scene.
type PlayState struct {
	player *player.Player
	anim   *sprite.Animator[player.Animation]
	scene  Scene
}

// NewPlayState returns an empty play state; the player spawns on enter.
func NewPlayState() *PlayState { return &PlayState{} }

// Player is the spawned player, nil before OnEnter.
func (p *PlayState) Player() *player.Player { return p.player }

// OnEnter spawns the player at the centre of the screen.
func (p *PlayState) OnEnter(s *Shared) error {
	var sheet *ebiten.Image
	if s.Assets != nil {
		sheet = s.Assets.Player
	}
	p.anim = sprite.New(sheet, player.SheetColumns, player.SheetRows, player.Idle.In(player.Standing))
	for k, c := range player.Clips() {
		p.anim.Add(k, sprite.Clip(c))
	}

	if s.Audio == nil {
		s.Audio = NewMixer(nil, nil)
	}

	w, h := s.Size()
	p.player = player.New(float64(w)*0.5, float64(h)*0.5, p.anim, player.Settings{
		Controls:   s.Config.Controls,
		Thresholds: s.Config.Thresholds,
		Physics:    s.Config.Physics,
		GameHeight: float64(h),
	})
	return nil
}

// OnUpdate runs physics, then input, then the scene sliders, and finally
// ends the input frame.
func (p *PlayState) OnUpdate(dt float64, s *Shared) (*Command, error) {
	p.player.Update(dt)
	p.player.ProcessInput(dt, s.Input, s.Audio)

	p.scene.Read(s.Input, s.Config.Controls)
	p.scene.Update(dt)
	s.Camera = p.scene.Camera

	s.Input.Flush()
	return nil, nil
}

// OnDraw draws scenery, player and water through the camera.
func (p *PlayState) OnDraw(dst *ebiten.Image, s *Shared) {
	w, h := s.Size()
	dx, dy := s.Camera.Offset(w, h)
	dst.Fill(color.White)

	if s.Assets != nil && s.Assets.Scenery != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1.5, 1.5)
		op.GeoM.Translate(-300+dx, -87+dy)
		dst.DrawImage(s.Assets.Scenery, op)
	}

	p.anim.Draw(dst, p.player.X+dx, p.player.Y+dy, !p.player.FacingRight)

	fw, fh := float64(w), float64(h)
	p.scene.DrawWater(dst, fw*-4+dx, fh*0.7+10+dy, fw*7, fh*0.5)
}
