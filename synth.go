package dossier

import (
	"encoding/binary"
	"math"
	"sync"
)

// SynthSampleRate is the output rate of Synth.
const SynthSampleRate = 44100

const oplClock = 49716.0

var multTable = [16]float64{0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 12, 12, 15, 15}

type synthVoice struct {
	modPhase float64
	carPhase float64
	env      float64
	keyed    bool
	fb       [2]float64
}

// Synth is a small two-operator FM tone generator driven by OPL2 register
// writes. It models frequency and key-on (A0/B0), multipliers (20),
// attenuation (40), release (80), feedback and connection (C0) and the
// four waveforms (E0). Attack, decay and sustain are instantaneous.
//
// A write made while a buffer is rendering is queued and applied before the
// next one, so a writer never waits on rendering.
type Synth struct {
	mu     sync.Mutex
	rate   int
	regs   [256]byte
	voices [9]synthVoice
	mono   []float32

	qmu     sync.Mutex
	queue   []regWrite
	applied []regWrite
}

type regWrite struct{ reg, val byte }

// NewSynth creates a synth rendering at rate Hz (SynthSampleRate when zero).
func NewSynth(rate int) *Synth {
	if rate <= 0 {
		rate = SynthSampleRate
	}
	return &Synth{rate: rate}
}

// SampleRate returns the output rate.
func (s *Synth) SampleRate() int { return s.rate }

// Write implements SoundChip.
func (s *Synth) Write(reg, val byte) {
	s.qmu.Lock()
	s.queue = append(s.queue, regWrite{reg, val})
	s.qmu.Unlock()
	if s.mu.TryLock() {
		s.drain()
		s.mu.Unlock()
	}
}

// drain applies queued writes in order. s.mu must be held.
func (s *Synth) drain() {
	s.qmu.Lock()
	s.queue, s.applied = s.applied[:0], s.queue
	s.qmu.Unlock()
	for _, w := range s.applied {
		s.apply(w.reg, w.val)
	}
}

func (s *Synth) apply(reg, val byte) {
	s.regs[reg] = val
	if reg >= 0xB0 && reg <= 0xB8 {
		v := &s.voices[reg-0xB0]
		on := val&0x20 != 0
		if on && !v.keyed {
			v.env = 1
			v.modPhase, v.carPhase = 0, 0
			v.fb = [2]float64{}
		}
		v.keyed = on
	}
}

// Reg returns the last value written to reg.
func (s *Synth) Reg(reg byte) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drain()
	return s.regs[reg]
}

// KeyOn reports whether voice v is keyed on.
func (s *Synth) KeyOn(v int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drain()
	return s.voices[v].keyed
}

func wave(form byte, phase float64) float64 {
	x := math.Sin(2 * math.Pi * phase)
	switch form & 3 {
	case 1:
		if x < 0 {
			return 0
		}
	case 2:
		return math.Abs(x)
	case 3:
		if math.Mod(phase, 0.5) >= 0.25 {
			return 0
		}
		return math.Abs(x)
	}
	return x
}

func attenuation(tl byte) float64 {
	return math.Pow(10, -float64(tl&0x3F)*0.75/20)
}

// Render fills out with mono samples in [-1, 1].
func (s *Synth) Render(out []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drain()
	for i := range out {
		out[i] = 0
	}
	for vi := range s.voices {
		v := &s.voices[vi]
		if v.env < 1e-4 {
			continue
		}
		bv := s.regs[0xB0+vi]
		fnum := int(s.regs[0xA0+vi]) | int(bv&3)<<8
		block := int(bv>>2) & 7
		freq := float64(fnum) * oplClock / float64(int(1)<<(20-block))
		mod := voiceOfs(vi)
		car := mod + 3
		modStep := freq * multTable[s.regs[0x20+mod]&0x0F] / float64(s.rate)
		carStep := freq * multTable[s.regs[0x20+car]&0x0F] / float64(s.rate)
		modAmp := attenuation(s.regs[0x40+mod])
		carAmp := attenuation(s.regs[0x40+car])
		modForm, carForm := s.regs[0xE0+mod], s.regs[0xE0+car]
		c0 := s.regs[0xC0+vi]
		feedback := float64((c0>>1)&7) / 16
		additive := c0&1 != 0

		release := 1.0
		if !v.keyed {
			rr := s.regs[0x80+car] & 0x0F
			if rr > 0 {
				secs := 0.004 * math.Pow(2, float64(15-rr)/1.5)
				release = math.Exp(-1 / (secs * float64(s.rate)))
			}
		}

		for i := range out {
			m := wave(modForm, v.modPhase+feedback*(v.fb[0]+v.fb[1])/2) * modAmp
			v.fb[1], v.fb[0] = v.fb[0], m
			var smp float64
			if additive {
				smp = m + wave(carForm, v.carPhase)*carAmp
			} else {
				smp = wave(carForm, v.carPhase+m) * carAmp
			}
			out[i] += float32(smp * v.env / 4)
			v.modPhase += modStep
			v.carPhase += carStep
			v.env *= release
		}
		v.modPhase -= math.Floor(v.modPhase)
		v.carPhase -= math.Floor(v.carPhase)
	}
	for i, x := range out {
		out[i] = max(-1, min(1, x))
	}
}

// Read renders 16-bit little-endian stereo PCM, the format ebiten's audio
// players consume.
func (s *Synth) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if cap(s.mono) < frames {
		s.mono = make([]float32, frames)
	}
	mono := s.mono[:frames]
	s.Render(mono)
	for i, x := range mono {
		v := uint16(int16(x * math.MaxInt16))
		binary.LittleEndian.PutUint16(p[i*4:], v)
		binary.LittleEndian.PutUint16(p[i*4+2:], v)
	}
	return frames * 4, nil
}
