//go:build headless

package dossier

type silentAudio struct{}

// NewAudioBackend returns a backend that never opens a sound device.
func NewAudioBackend(*Synth) (AudioBackend, error) {
	return silentAudio{}, nil
}

func (silentAudio) Start() error { return nil }
func (silentAudio) Close() error { return nil }
