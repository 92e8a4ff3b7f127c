package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/chase3718/latchgun/internal/config"
	"github.com/chase3718/latchgun/internal/player"
)

var waterColor = color.RGBA{R: 0x2a, G: 0x6f, B: 0xb0, A: 0xb0}

// Scene holds the ambient parameters driven by the spare sliders.
type Scene struct {
	WaterSpeed    float64
	WaterStrength float64
	Camera        Camera

	phase float64
}

// Read samples the water and camera sliders.
func (sc *Scene) Read(in player.Controls, c config.Controls) {
	sc.WaterSpeed = in.GetFraction(c.WaterSpeed) * 0.5
	sc.WaterStrength = in.GetFraction(c.WaterStrength) * 0.3
	sc.Camera = Camera{
		X: in.GetFraction(c.CameraX) * 500,
		Y: 50 + in.GetFraction(c.CameraY)*130,
	}
}

// Update scrolls the water.
func (sc *Scene) Update(dt float64) {
	sc.phase += dt * sc.WaterSpeed * 2 * math.Pi
}

// DrawWater draws a wave band of size w by h with its top left corner at
// (x, y) in screen space. Only the visible columns are drawn.
func (sc *Scene) DrawWater(dst *ebiten.Image, x, y, w, h float64) {
	const column = 4
	amp := sc.WaterStrength * 20
	start := math.Max(0, math.Floor(-x/column)*column)
	end := math.Min(w, float64(dst.Bounds().Dx())-x)
	for cx := start; cx < end; cx += column {
		top := y + math.Sin(sc.phase+(x+cx)*0.05)*amp
		vector.DrawFilledRect(dst, float32(x+cx), float32(top), column, float32(h-(top-y)), waterColor, false)
	}
}
