package dossier

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DumpMusicWAV renders seconds of the two-segment score offline and writes
// it to w as 16-bit mono WAV. Ticks and samples are interleaved at the
// default tick rate, so the result matches live playback.
func DumpMusicWAV(w io.WriteSeeker, segA, segB []byte, seconds int) error {
	synth := NewSynth(SynthSampleRate)
	seq := NewSequencer(synth)
	seq.Play(segA, segB)
	timer := NewTimer(DefaultTickRate, nil, seq, nil)

	total := SynthSampleRate * seconds
	data := make([]int, 0, total)
	chunk := make([]float32, 0, SynthSampleRate/DefaultTickRate+1)

	var rendered int
	for tick := 0; rendered < total; tick++ {
		timer.Tick()
		next := (tick + 1) * SynthSampleRate / DefaultTickRate
		n := min(next-rendered, total-rendered)
		chunk = chunk[:n]
		synth.Render(chunk)
		for _, x := range chunk {
			data = append(data, int(x*32767))
		}
		rendered += n
	}

	enc := wav.NewEncoder(w, SynthSampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: SynthSampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("dump music: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("dump music: %w", err)
	}
	return nil
}
