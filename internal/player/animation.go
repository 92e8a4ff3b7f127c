package player

import "fmt"

// Action is what the player is doing, independent of stance.
type Action int

const (
	Idle Action = iota
	Run
	Shoot
	HatchOpen
	HatchClose
	Jammed
)

var actionNames = [...]string{"idle", "run", "shoot", "hatch_open", "hatch_close", "jammed"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Stance is the player's body posture.
type Stance int

const (
	Standing Stance = iota
	Crouching
)

func (s Stance) String() string {
	if s == Crouching {
		return "crouch"
	}
	return "stand"
}

// In pairs an action with a stance.
func (a Action) In(s Stance) Animation { return Animation{Action: a, Stance: s} }

// Animation identifies one clip on the player sprite sheet.
type Animation struct {
	Action Action
	Stance Stance
}

func (a Animation) String() string { return a.Stance.String() + "/" + a.Action.String() }

// Clip is a run of frames on the sprite sheet, first and last inclusive.
type Clip struct {
	First, Last int
	FPS         float64
}

// Sheet layout of the player texture, in cells.
const (
	SheetColumns = 10
	SheetRows    = 13
)

// Clips returns the frame table for every player animation.
func Clips() map[Animation]Clip {
	return map[Animation]Clip{
		Idle.In(Standing):       {0, 3, 10},
		Run.In(Standing):        {10, 16, 10},
		Shoot.In(Standing):      {20, 24, 10},
		HatchOpen.In(Standing):  {36, 46, 20},
		Jammed.In(Standing):     {50, 55, 10},
		HatchClose.In(Standing): {60, 64, 10},

		Idle.In(Crouching):       {70, 73, 10},
		Run.In(Crouching):        {80, 83, 10},
		HatchOpen.In(Crouching):  {90, 94, 10},
		HatchClose.In(Crouching): {100, 103, 10},
		Jammed.In(Crouching):     {110, 113, 10},
		Shoot.In(Crouching):      {120, 124, 10},
	}
}

// Sound names a one-shot sound effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundShoot
	SoundJammed
	SoundLatchOpen
	SoundLatchClose
	SoundCrouch
	SoundUncrouch
)

var soundNames = [...]string{"jump", "shoot", "jammed", "latch_open", "latch_close", "crouch", "uncrouch"}

func (s Sound) String() string {
	if s < 0 || int(s) >= len(soundNames) {
		return fmt.Sprintf("Sound(%d)", int(s))
	}
	return soundNames[s]
}

// AllSounds lists every sound effect.
func AllSounds() []Sound {
	return []Sound{SoundJump, SoundShoot, SoundJammed, SoundLatchOpen, SoundLatchClose, SoundCrouch, SoundUncrouch}
}
