//go:build !headless

package dossier

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenAudio streams a Synth to the sound card through ebiten's audio
// context.
type EbitenAudio struct {
	ctx    *audio.Context
	player *audio.Player
	synth  *Synth
}

// NewAudioBackend creates the sound output for synth.
func NewAudioBackend(synth *Synth) (AudioBackend, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(synth.SampleRate())
	}
	if ctx.SampleRate() != synth.SampleRate() {
		return nil, fmt.Errorf("audio: context runs at %d Hz, synth at %d Hz", ctx.SampleRate(), synth.SampleRate())
	}
	p, err := ctx.NewPlayer(synth)
	if err != nil {
		return nil, fmt.Errorf("audio: new player: %w", err)
	}
	return &EbitenAudio{ctx: ctx, player: p, synth: synth}, nil
}

func (a *EbitenAudio) Start() error {
	a.player.Play()
	return nil
}

func (a *EbitenAudio) Close() error {
	return a.player.Close()
}
