// Package sprite plays frame animations from a sprite sheet laid out as a grid
// of equally sized cells, numbered row by row from the top left.
package sprite

import (
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clip is a run of cells, first and last inclusive, played at FPS.
type Clip struct {
	First, Last int
	FPS         float64
}

// Animator plays clips keyed by K. A clip loops until another is played,
// unless it was started with PlayThen.
type Animator[K comparable] struct {
	sheet      *ebiten.Image
	cols, rows int
	clips      map[K]Clip

	current     K
	fallback    K
	hasFallback bool
	frame       int
	elapsed     float64
}

// New returns an animator over sheet positioned on initial. sheet may be nil
// when nothing is drawn.
func New[K comparable](sheet *ebiten.Image, cols, rows int, initial K) *Animator[K] {
	return &Animator[K]{
		sheet:   sheet,
		cols:    cols,
		rows:    rows,
		clips:   make(map[K]Clip),
		current: initial,
	}
}

// Add registers the clip for k.
func (a *Animator[K]) Add(k K, c Clip) {
	a.clips[k] = c
}

// Play loops k from its first frame.
func (a *Animator[K]) Play(k K) {
	a.start(k)
	a.hasFallback = false
}

// PlayThen plays k once and then loops fallback.
func (a *Animator[K]) PlayThen(k, fallback K) {
	a.start(k)
	a.fallback = fallback
	a.hasFallback = true
}

func (a *Animator[K]) start(k K) {
	if _, ok := a.clips[k]; !ok {
		slog.Warn("sprite: no clip registered", "anim", k)
	}
	a.current = k
	a.frame = 0
	a.elapsed = 0
}

// Current is the clip being played.
func (a *Animator[K]) Current() K { return a.current }

// Frame is the sheet cell currently shown.
func (a *Animator[K]) Frame() int {
	return a.clips[a.current].First + a.frame
}

// Update advances playback by dt seconds.
func (a *Animator[K]) Update(dt float64) {
	clip, ok := a.clips[a.current]
	if !ok || clip.FPS <= 0 {
		return
	}
	a.elapsed += dt
	step := 1 / clip.FPS
	for a.elapsed >= step {
		a.elapsed -= step
		a.frame++
		if clip.First+a.frame <= clip.Last {
			continue
		}
		a.frame = 0
		if a.hasFallback {
			a.current = a.fallback
			a.hasFallback = false
			clip, ok = a.clips[a.current]
			if !ok || clip.FPS <= 0 {
				a.elapsed = 0
				return
			}
			step = 1 / clip.FPS
		}
	}
}

// Draw renders the current cell with its top left corner at (x, y),
// mirrored horizontally when flipX is set.
func (a *Animator[K]) Draw(dst *ebiten.Image, x, y float64, flipX bool) {
	if a.sheet == nil || a.cols <= 0 || a.rows <= 0 {
		return
	}
	b := a.sheet.Bounds()
	w, h := b.Dx()/a.cols, b.Dy()/a.rows
	f := a.Frame()
	cx, cy := b.Min.X+(f%a.cols)*w, b.Min.Y+(f/a.cols)*h
	cell := a.sheet.SubImage(image.Rect(cx, cy, cx+w, cy+h)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	if flipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(w), 0)
	}
	op.GeoM.Translate(x, y)
	dst.DrawImage(cell, op)
}
