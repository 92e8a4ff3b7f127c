// Package player turns controller input into player movement, gun actions,
// animations and sound cues.
package player

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chase3718/latchgun/internal/config"
	"github.com/chase3718/latchgun/internal/gun"
	"github.com/chase3718/latchgun/internal/input"
)

// Controls is the frame-synchronous view of the controller.
// *input.Hub satisfies it.
type Controls interface {
	IsButtonPressed(id uint8) bool
	IsButtonHeld(id uint8) bool
	GetFraction(id uint8) float64
	FractionReachedLimit(id uint8, threshold float64, dir input.Direction) bool
}

// Animator plays player animations. It owns animation timing.
type Animator interface {
	Play(a Animation)
	// PlayThen plays a once and then switches to fallback.
	PlayThen(a, fallback Animation)
	Current() Animation
	Update(dt float64)
}

// Audio plays fire-and-forget sound effects.
type Audio interface {
	PlayOnce(s Sound)
}

// Settings are the parts of the configuration the player reads.
type Settings struct {
	Controls   config.Controls
	Thresholds config.Thresholds
	Physics    config.Physics
	// GameHeight is the logical screen height the ground line is relative to.
	GameHeight float64
}

// Player is the controllable character.
type Player struct {
	// ID tags this spawn's log lines. Gameplay never reads it.
	ID           uuid.UUID
	X, Y         float64
	YVel         float64
	JumpStrength float64
	Grounded     bool
	Crouching    bool
	FacingRight  bool
	Gun          *gun.Gun

	anim Animator
	set  Settings
}

// New spawns a player at (x, y) with an empty gun, standing idle.
func New(x, y float64, anim Animator, set Settings) *Player {
	p := &Player{
		ID:           uuid.New(),
		X:            x,
		Y:            y,
		JumpStrength: set.Physics.JumpStrength,
		Gun:          gun.New(),
		anim:         anim,
		set:          set,
	}
	anim.Play(Idle.In(Standing))
	slog.Info("player: spawned", "id", p.ID, "x", x, "y", y)
	return p
}

// Stance returns the current posture.
func (p *Player) Stance() Stance {
	if p.Crouching {
		return Crouching
	}
	return Standing
}

func (p *Player) groundY() float64 {
	return p.set.GameHeight * p.set.Physics.GroundLine
}

// Update integrates gravity and advances the animation.
func (p *Player) Update(dt float64) {
	ground := p.groundY()
	if p.Y < ground {
		p.YVel += dt * p.set.Physics.Gravity
	}
	p.Y += p.YVel
	if p.Y >= ground {
		p.Grounded = true
		p.YVel = 0
		p.Y = ground
	} else {
		p.Grounded = false
	}
	p.anim.Update(dt)
}

// Jump launches the player if grounded, scaled by the current jump strength.
func (p *Player) Jump() {
	if p.Grounded {
		p.YVel = -p.JumpStrength * p.set.Physics.MaxJumpStrength
	}
}

// ProcessInput applies one frame of controller input. Several intents may
// fire in one frame; the last one evaluated picks the animation.
func (p *Player) ProcessInput(dt float64, in Controls, sfx Audio) {
	c := p.set.Controls
	th := p.set.Thresholds

	var (
		next    Action
		hasNext bool
	)
	want := func(a Action) { next, hasNext = a, true }

	if in.IsButtonHeld(c.MoveLeft) {
		p.X -= p.set.Physics.MoveSpeed * dt
		p.FacingRight = false
		want(Run)
	} else if in.IsButtonHeld(c.MoveRight) {
		p.FacingRight = true
		p.X += p.set.Physics.MoveSpeed * dt
		want(Run)
	}

	if in.IsButtonHeld(c.Jump) {
		p.Jump()
	}
	if in.IsButtonPressed(c.Jump) {
		p.Jump()
		sfx.PlayOnce(SoundJump)
	}

	if in.IsButtonPressed(c.Fire) {
		err := p.Gun.TryConsume()
		switch {
		case err == nil:
			want(Shoot)
			sfx.PlayOnce(SoundShoot)
		case errors.Is(err, gun.ErrLatchWasOpen):
			slog.Debug("player: fired with latch open", "id", p.ID)
			want(Jammed)
			sfx.PlayOnce(SoundJammed)
		case errors.Is(err, gun.ErrNotLoaded):
			slog.Debug("player: fired empty chamber", "id", p.ID)
			want(Jammed)
			sfx.PlayOnce(SoundJammed)
		}
	}

	if in.FractionReachedLimit(c.Latch, th.Rise, input.Higher) {
		p.Gun.SetLatchState(gun.Open)
		want(HatchOpen)
		sfx.PlayOnce(SoundLatchOpen)
	}
	if in.FractionReachedLimit(c.Latch, th.Fall, input.Lower) {
		p.Gun.SetLatchState(gun.Closed)
		want(HatchClose)
		sfx.PlayOnce(SoundLatchClose)
	}

	if in.FractionReachedLimit(c.Crouch, th.Rise, input.Higher) {
		p.Crouching = false
		want(Idle)
		sfx.PlayOnce(SoundUncrouch)
	}
	if in.FractionReachedLimit(c.Crouch, th.Fall, input.Lower) {
		p.Crouching = true
		want(Idle)
		sfx.PlayOnce(SoundCrouch)
	}

	p.JumpStrength = in.GetFraction(c.JumpStrength)

	if !hasNext {
		return
	}
	stance := p.Stance()
	if wanted := next.In(stance); p.anim.Current() != wanted {
		p.anim.PlayThen(wanted, Idle.In(stance))
	}
}
