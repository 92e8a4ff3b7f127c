package player

import (
	"testing"

	"github.com/google/uuid"

	"github.com/chase3718/latchgun/internal/config"
	"github.com/chase3718/latchgun/internal/gun"
	"github.com/chase3718/latchgun/internal/input"
)

type crossing struct {
	id        uint8
	threshold float64
	dir       input.Direction
}

// fakeControls reports a crossing only when asked with the exact id,
// threshold and direction it was given. Every query is recorded.
type fakeControls struct {
	pressed   map[uint8]bool
	held      map[uint8]bool
	fractions map[uint8]float64
	crossings map[crossing]bool
	queries   []crossing
}

func newFakeControls() *fakeControls {
	return &fakeControls{
		pressed:   map[uint8]bool{},
		held:      map[uint8]bool{},
		fractions: map[uint8]float64{},
		crossings: map[crossing]bool{},
	}
}

func (f *fakeControls) IsButtonPressed(id uint8) bool { return f.pressed[id] }
func (f *fakeControls) IsButtonHeld(id uint8) bool    { return f.held[id] }
func (f *fakeControls) GetFraction(id uint8) float64  { return f.fractions[id] }
func (f *fakeControls) FractionReachedLimit(id uint8, threshold float64, dir input.Direction) bool {
	c := crossing{id, threshold, dir}
	f.queries = append(f.queries, c)
	return f.crossings[c]
}

type playThen struct{ anim, fallback Animation }

type fakeAnimator struct {
	current Animation
	plays   []Animation
	thens   []playThen
	elapsed float64
}

func (f *fakeAnimator) Play(a Animation) {
	f.current = a
	f.plays = append(f.plays, a)
}

func (f *fakeAnimator) PlayThen(a, fallback Animation) {
	f.current = a
	f.thens = append(f.thens, playThen{a, fallback})
}

func (f *fakeAnimator) Current() Animation { return f.current }
func (f *fakeAnimator) Update(dt float64)  { f.elapsed += dt }

type fakeAudio struct{ played []Sound }

func (f *fakeAudio) PlayOnce(s Sound) { f.played = append(f.played, s) }

func (f *fakeAudio) count(s Sound) int {
	n := 0
	for _, p := range f.played {
		if p == s {
			n++
		}
	}
	return n
}

func testSettings() Settings {
	cfg := config.Default()
	return Settings{
		Controls:   cfg.Controls,
		Thresholds: cfg.Thresholds,
		Physics:    cfg.Physics,
		GameHeight: 256,
	}
}

func newTestPlayer() (*Player, *fakeAnimator, *fakeAudio) {
	anim := &fakeAnimator{}
	p := New(257, 50, anim, testSettings())
	return p, anim, &fakeAudio{}
}

func TestNewPlaysIdle(t *testing.T) {
	p, anim, _ := newTestPlayer()
	if len(anim.plays) != 1 || anim.plays[0] != Idle.In(Standing) {
		t.Errorf("expected idle on spawn, got %v", anim.plays)
	}
	if p.Gun.Loaded() {
		t.Error("new player must have an empty gun")
	}
	if p.JumpStrength != 0.05 {
		t.Errorf("expected initial jump strength 0.05, got %v", p.JumpStrength)
	}
}

func TestSpawnsHaveDistinctIDs(t *testing.T) {
	a, _, _ := newTestPlayer()
	b, _, _ := newTestPlayer()
	if a.ID == uuid.Nil || a.ID == b.ID {
		t.Errorf("expected distinct non-nil ids, got %v and %v", a.ID, b.ID)
	}
}

func TestGravityAndLanding(t *testing.T) {
	p, anim, _ := newTestPlayer()
	ground := 256 * 0.4

	p.Update(0.1)
	if p.Grounded {
		t.Fatal("player above ground must not be grounded")
	}
	if p.YVel <= 0 {
		t.Errorf("expected gravity to accelerate downwards, got %v", p.YVel)
	}

	for i := 0; i < 200 && !p.Grounded; i++ {
		p.Update(0.1)
	}
	if !p.Grounded {
		t.Fatal("player never landed")
	}
	if p.Y != ground || p.YVel != 0 {
		t.Errorf("expected to rest at %v with no velocity, got y=%v vel=%v", ground, p.Y, p.YVel)
	}
	if anim.elapsed == 0 {
		t.Error("update must advance the animation")
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	p, _, _ := newTestPlayer()
	p.Jump()
	if p.YVel != 0 {
		t.Fatal("airborne jump must do nothing")
	}

	p.Y = 256 * 0.4
	p.Update(0)
	p.JumpStrength = 0.5
	p.Jump()
	if want := -0.5 * 12.0; p.YVel != want {
		t.Errorf("expected velocity %v, got %v", want, p.YVel)
	}
}

func TestJumpButton(t *testing.T) {
	p, _, sfx := newTestPlayer()
	p.Y = 256 * 0.4
	p.Update(0)

	in := newFakeControls()
	in.pressed[64] = true
	in.fractions[0] = 1
	p.ProcessInput(0.016, in, sfx)

	if p.YVel >= 0 {
		t.Error("expected an upward velocity")
	}
	if sfx.count(SoundJump) != 1 {
		t.Errorf("expected one jump sound, got %v", sfx.played)
	}
	if p.JumpStrength != 1 {
		t.Errorf("expected jump strength from slider, got %v", p.JumpStrength)
	}

	// Held alone jumps silently.
	p.Y, p.YVel = 256*0.4, 0
	p.Update(0)
	sfx.played = nil
	in = newFakeControls()
	in.held[64] = true
	in.fractions[0] = 1
	p.ProcessInput(0.016, in, sfx)
	if p.YVel != -12 {
		t.Errorf("expected full-strength jump, got %v", p.YVel)
	}
	if len(sfx.played) != 0 {
		t.Errorf("held jump must not play a sound, got %v", sfx.played)
	}
}

func TestMovement(t *testing.T) {
	p, anim, sfx := newTestPlayer()
	in := newFakeControls()
	in.held[41] = true
	p.ProcessInput(0.5, in, sfx)
	if p.X != 257-100 {
		t.Errorf("expected x=157, got %v", p.X)
	}
	if p.FacingRight {
		t.Error("expected to face left")
	}
	if anim.current != Run.In(Standing) {
		t.Errorf("expected run, got %v", anim.current)
	}

	in = newFakeControls()
	in.held[45] = true
	p.ProcessInput(0.5, in, sfx)
	if p.X != 257 || !p.FacingRight {
		t.Errorf("expected to move back right, got x=%v right=%v", p.X, p.FacingRight)
	}
}

func TestFireEmptyIsJammed(t *testing.T) {
	p, anim, sfx := newTestPlayer()
	in := newFakeControls()
	in.pressed[65] = true
	p.ProcessInput(0.016, in, sfx)

	if sfx.count(SoundJammed) != 1 {
		t.Errorf("expected jammed sound, got %v", sfx.played)
	}
	want := playThen{Jammed.In(Standing), Idle.In(Standing)}
	if len(anim.thens) != 1 || anim.thens[0] != want {
		t.Errorf("expected %v, got %v", want, anim.thens)
	}
}

func TestLatchCycleThenFire(t *testing.T) {
	p, anim, sfx := newTestPlayer()

	open := newFakeControls()
	open.crossings[crossing{1, 0.7, input.Higher}] = true
	p.ProcessInput(0.016, open, sfx)
	if p.Gun.Latch() != gun.Open {
		t.Fatal("expected latch open")
	}
	if anim.current != HatchOpen.In(Standing) || sfx.count(SoundLatchOpen) != 1 {
		t.Errorf("expected hatch open cue, got %v %v", anim.current, sfx.played)
	}

	fire := newFakeControls()
	fire.pressed[65] = true
	p.ProcessInput(0.016, fire, sfx)
	if sfx.count(SoundJammed) != 1 {
		t.Errorf("firing with latch open should jam, got %v", sfx.played)
	}

	closeLatch := newFakeControls()
	closeLatch.crossings[crossing{1, 0.3, input.Lower}] = true
	p.ProcessInput(0.016, closeLatch, sfx)
	if !p.Gun.Loaded() || p.Gun.Latch() != gun.Closed {
		t.Fatal("closing the latch should chamber a round")
	}
	if sfx.count(SoundLatchClose) != 1 {
		t.Errorf("expected latch close sound, got %v", sfx.played)
	}

	p.ProcessInput(0.016, fire, sfx)
	if sfx.count(SoundShoot) != 1 {
		t.Errorf("expected a shot, got %v", sfx.played)
	}
	if anim.current != Shoot.In(Standing) {
		t.Errorf("expected shoot animation, got %v", anim.current)
	}

	p.ProcessInput(0.016, fire, sfx)
	if sfx.count(SoundJammed) != 2 {
		t.Errorf("second shot should jam, got %v", sfx.played)
	}
}

func TestCrouchSwitchesStance(t *testing.T) {
	p, anim, sfx := newTestPlayer()

	down := newFakeControls()
	down.crossings[crossing{2, 0.3, input.Lower}] = true
	p.ProcessInput(0.016, down, sfx)
	if !p.Crouching || p.Stance() != Crouching {
		t.Fatal("expected to crouch")
	}
	want := playThen{Idle.In(Crouching), Idle.In(Crouching)}
	if len(anim.thens) != 1 || anim.thens[0] != want {
		t.Errorf("expected %v, got %v", want, anim.thens)
	}

	fire := newFakeControls()
	fire.pressed[65] = true
	p.ProcessInput(0.016, fire, sfx)
	if anim.current != Jammed.In(Crouching) {
		t.Errorf("expected crouched jam, got %v", anim.current)
	}

	up := newFakeControls()
	up.crossings[crossing{2, 0.7, input.Higher}] = true
	p.ProcessInput(0.016, up, sfx)
	if p.Crouching {
		t.Error("expected to stand")
	}
	if sfx.count(SoundCrouch) != 1 || sfx.count(SoundUncrouch) != 1 {
		t.Errorf("expected crouch and uncrouch sounds, got %v", sfx.played)
	}
}

func TestLastIntentWins(t *testing.T) {
	p, anim, sfx := newTestPlayer()
	in := newFakeControls()
	in.held[41] = true
	in.pressed[65] = true
	in.crossings[crossing{1, 0.7, input.Higher}] = true
	p.ProcessInput(0.016, in, sfx)

	if anim.current != HatchOpen.In(Standing) {
		t.Errorf("expected the latch intent to win, got %v", anim.current)
	}
	if sfx.count(SoundJammed) != 1 || sfx.count(SoundLatchOpen) != 1 {
		t.Errorf("every intent still plays its sound, got %v", sfx.played)
	}
}

func TestSameAnimationNotRestarted(t *testing.T) {
	p, anim, sfx := newTestPlayer()
	in := newFakeControls()
	in.held[45] = true
	p.ProcessInput(0.016, in, sfx)
	p.ProcessInput(0.016, in, sfx)
	if len(anim.thens) != 1 {
		t.Errorf("expected run to start once, got %v", anim.thens)
	}
}

func TestNoIntentKeepsAnimation(t *testing.T) {
	p, anim, sfx := newTestPlayer()
	p.ProcessInput(0.016, newFakeControls(), sfx)
	if len(anim.thens) != 0 {
		t.Errorf("expected no animation change, got %v", anim.thens)
	}
	if p.JumpStrength != 0 {
		t.Errorf("jump strength follows the slider every frame, got %v", p.JumpStrength)
	}
}

func TestSlidersUseConfiguredThresholds(t *testing.T) {
	p, _, sfx := newTestPlayer()
	in := newFakeControls()
	p.ProcessInput(0.016, in, sfx)

	want := []crossing{
		{1, 0.7, input.Higher},
		{1, 0.3, input.Lower},
		{2, 0.7, input.Higher},
		{2, 0.3, input.Lower},
	}
	if len(in.queries) != len(want) {
		t.Fatalf("expected queries %v, got %v", want, in.queries)
	}
	for i := range want {
		if in.queries[i] != want[i] {
			t.Errorf("query %d: expected %v, got %v", i, want[i], in.queries[i])
		}
	}

	// A crossing reported for the wrong threshold is ignored.
	swapped := newFakeControls()
	swapped.crossings[crossing{1, 0.3, input.Higher}] = true
	swapped.crossings[crossing{1, 0.7, input.Lower}] = true
	p.ProcessInput(0.016, swapped, sfx)
	if p.Gun.Latch() != gun.Closed || p.Gun.Loaded() {
		t.Errorf("latch must not move on mismatched thresholds, got %v loaded=%v", p.Gun.Latch(), p.Gun.Loaded())
	}
}

type sliderPort struct{ h input.Handler }

func (s *sliderPort) String() string { return "slider" }

func (s *sliderPort) Listen(h input.Handler) error {
	s.h = h
	return nil
}

func TestLatchSliderThroughHub(t *testing.T) {
	port := &sliderPort{}
	hub, err := input.New([]input.Port{port})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := hub.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	p, _, sfx := newTestPlayer()

	steps := []struct {
		value  uint8 // fraction value/127
		latch  gun.LatchState
		loaded bool
	}{
		{25, gun.Closed, false}, // 0.20
		{76, gun.Closed, false}, // 0.60
		{100, gun.Open, false},  // 0.79 crosses rise
		{50, gun.Open, false},   // 0.39 still above fall
		{20, gun.Closed, true},  // 0.16 crosses fall
	}
	for i, s := range steps {
		port.h(1, s.value, uint64(i))
		p.ProcessInput(0.016, hub, sfx)
		hub.Flush()
		if p.Gun.Latch() != s.latch || p.Gun.Loaded() != s.loaded {
			t.Errorf("step %d (value %d): expected %v loaded=%v, got %v loaded=%v",
				i, s.value, s.latch, s.loaded, p.Gun.Latch(), p.Gun.Loaded())
		}
	}
	if sfx.count(SoundLatchOpen) != 1 || sfx.count(SoundLatchClose) != 1 {
		t.Errorf("expected one open and one close, got %v", sfx.played)
	}
}
