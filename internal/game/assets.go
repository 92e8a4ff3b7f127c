package game

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/chase3718/latchgun/internal/player"
)

// SampleRate is the audio context rate every sound is resampled to.
const SampleRate = 44100

// Assets holds everything the play state draws and plays.
type Assets struct {
	Player  *ebiten.Image
	Scenery *ebiten.Image
	// Sounds holds decoded 16-bit stereo PCM per effect.
	Sounds map[player.Sound][]byte
}

var soundFiles = map[player.Sound]string{
	player.SoundJump:       "jump.wav",
	player.SoundJammed:     "jammed.wav",
	player.SoundShoot:      "shoot.wav",
	player.SoundLatchClose: "latch_close.wav",
	player.SoundLatchOpen:  "latch_open.wav",
	player.SoundCrouch:     "crouch.wav",
	player.SoundUncrouch:   "Uncrouch.wav",
}

type loadStep struct {
	path string
	load func(path string, a *Assets) error
}

// Loader loads assets one file per call so a progress screen can be drawn
// in between.
type Loader struct {
	steps  []loadStep
	next   int
	assets *Assets
}

// NewLoader prepares loading of textures and sounds from dir.
func NewLoader(dir string) *Loader {
	l := &Loader{assets: &Assets{Sounds: make(map[player.Sound][]byte)}}
	l.add(filepath.Join(dir, "textures", "CartoonDetective.png"), func(path string, a *Assets) (err error) {
		a.Player, err = loadImage(path)
		return err
	})
	l.add(filepath.Join(dir, "textures", "magic_cliffs_preview.png"), func(path string, a *Assets) (err error) {
		a.Scenery, err = loadImage(path)
		return err
	})
	for _, s := range player.AllSounds() {
		s := s
		l.add(filepath.Join(dir, "sounds", soundFiles[s]), func(path string, a *Assets) error {
			pcm, err := loadWAV(path)
			if err != nil {
				return err
			}
			a.Sounds[s] = pcm
			return nil
		})
	}
	return l
}

func (l *Loader) add(path string, load func(string, *Assets) error) {
	l.steps = append(l.steps, loadStep{path: path, load: load})
}

// LoadNext loads one pending file and reports whether everything is loaded.
func (l *Loader) LoadNext() (bool, error) {
	if l.next < len(l.steps) {
		st := l.steps[l.next]
		if err := st.load(st.path, l.assets); err != nil {
			return false, fmt.Errorf("load %s: %w", st.path, err)
		}
		slog.Debug("assets: loaded", "path", st.path)
		l.next++
	}
	return l.next >= len(l.steps), nil
}

// Progress is the loaded fraction, 0..1.
func (l *Loader) Progress() float64 {
	if len(l.steps) == 0 {
		return 1
	}
	return float64(l.next) / float64(len(l.steps))
}

// Assets returns what has been loaded so far.
func (l *Loader) Assets() *Assets { return l.assets }

func loadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

func loadWAV(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stream, err := wav.DecodeWithSampleRate(SampleRate, f)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}
