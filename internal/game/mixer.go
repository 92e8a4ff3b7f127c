package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/chase3718/latchgun/internal/player"
)

// Mixer plays sound effects on an ebiten audio context. Each call starts a
// new player so effects can overlap.
type Mixer struct {
	ctx *audio.Context
	pcm map[player.Sound][]byte
}

// NewMixer returns a mixer over decoded PCM. A nil ctx mutes it.
func NewMixer(ctx *audio.Context, pcm map[player.Sound][]byte) *Mixer {
	return &Mixer{ctx: ctx, pcm: pcm}
}

// PlayOnce starts s and forgets about it.
func (m *Mixer) PlayOnce(s player.Sound) {
	if m.ctx == nil {
		return
	}
	b, ok := m.pcm[s]
	if !ok {
		slog.Warn("audio: sound not loaded", "sound", s)
		return
	}
	m.ctx.NewPlayerFromBytes(b).Play()
}
