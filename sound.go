package dossier

import (
	"sync"
	"sync/atomic"
)

// SoundChip receives register writes for an OPL2-style FM chip.
type SoundChip interface {
	Write(reg, val byte)
}

// Instrument is the register image of one FM voice as stored in an SBI
// file after its 36-byte header. Only the first 11 bytes are used.
type Instrument [16]byte

// instrumentRegs are the operator registers an Instrument programs, in
// file order; the 11th byte goes to the voice's feedback register.
var instrumentRegs = [10]byte{0x20, 0x23, 0x40, 0x43, 0x60, 0x63, 0x80, 0x83, 0xE0, 0xE3}

// voiceOfs maps a voice to its operator register offset.
func voiceOfs(v int) byte {
	return byte(v%3 + (v/3)<<3)
}

// SfxID names a sound effect.
type SfxID int

const (
	SfxMove SfxID = iota
	SfxLook
	SfxDrop
	SfxClue
	SfxWon
	numSfx
)

type sfxDef struct {
	instrument int
	freq       int
	duration   int // ticks
}

var sfxTable = [numSfx]sfxDef{
	SfxMove: {0, 220, 280},
	SfxLook: {1, 440, 250},
	SfxDrop: {2, 220, 280},
	SfxClue: {3, 880, 280},
	SfxWon:  {4, 523, 25},
}

// InstrumentFiles lists the instrument asset of each sound effect.
var InstrumentFiles = [numSfx]string{
	SfxMove: `SOUND\PIZZI.SBI`,
	SfxLook: `SOUND\BREATH.SBI`,
	SfxDrop: `SOUND\WOODBLOC.SBI`,
	SfxClue: `SOUND\PIZZ.SBI`,
	SfxWon:  `SOUND\VIBES.SBI`,
}

// fanfare is the rising scale queued after the won effect.
var fanfare = [7]int{293 * 2, 329 * 2, 349 * 2, 392 * 2, 440 * 2, 493 * 2, 523 * 2}

// freqMap converts a frequency below stop into an F-number with
// freq*mult/100; the entry index is the block.
var freqMap = [8]struct{ stop, mult int }{
	{48, 2109}, {97, 1054}, {194, 527}, {388, 263},
	{776, 131}, {1552, 65}, {3104, 32}, {6208, 16},
}

const sfxVoice = 0

type note struct {
	freq, hold int
}

// Sound programs the FM chip for the game's sound effects. Effects are
// fire-and-forget: PlaySfx starts a note on voice 0 and the timer tick
// silences it when its hold expires, or moves on to the next queued note.
type Sound struct {
	mu          sync.Mutex
	chip        SoundChip
	instruments [numSfx]Instrument
	queue       []note
	hold        atomic.Int32
}

// NewSound wraps chip. A nil chip makes every call a no-op.
func NewSound(chip SoundChip) *Sound {
	return &Sound{chip: chip}
}

func (s *Sound) out(reg, val byte) {
	if s.chip != nil {
		s.chip.Write(reg, val)
	}
}

// Reset silences every voice and clears all registers.
func (s *Sound) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out(0x01, 0x20)
	s.out(0x08, 0)
	s.out(0xBD, 0)
	for v := 0; v < 9; v++ {
		ofs := voiceOfs(v)
		s.out(0xB0+byte(v), 0)
		s.out(0xA0+byte(v), 0)
		for _, base := range []byte{0xE0, 0x60, 0x80, 0x40} {
			val := byte(0xFF)
			if base == 0xE0 {
				val = 0
			}
			s.out(base+ofs, val)
			s.out(base+ofs+3, val)
		}
	}
	for r := 0; r < 256; r++ {
		s.out(byte(r), 0)
	}
	s.out(0x01, 0x20)
	s.queue = s.queue[:0]
	s.hold.Store(0)
}

// Stop releases the key of voice v.
func (s *Sound) Stop(v int) {
	s.mu.Lock()
	s.out(0xB0+byte(v), 0)
	s.mu.Unlock()
}

// Play keys voice v on at F-number fnum in octave block.
func (s *Sound) Play(v, fnum, block int) {
	s.mu.Lock()
	s.play(v, fnum, block)
	s.mu.Unlock()
}

func (s *Sound) play(v, fnum, block int) {
	s.out(0xA0+byte(v), byte(fnum))
	s.out(0xB0+byte(v), byte(fnum>>8)|byte(block<<2)|0x20)
}

// PlayFreq keys voice v on at freq Hz.
func (s *Sound) PlayFreq(v, freq int) {
	s.mu.Lock()
	s.playFreq(v, freq)
	s.mu.Unlock()
}

func (s *Sound) playFreq(v, freq int) {
	fnum, block, ok := FreqToFnum(freq)
	if ok {
		s.play(v, fnum, block)
	}
}

// FreqToFnum converts a frequency in Hz to an F-number and block. Frequencies
// above the top of the table report false.
func FreqToFnum(freq int) (fnum, block int, ok bool) {
	for i, m := range freqMap {
		if freq < m.stop {
			return freq * m.mult / 100, i, true
		}
	}
	return 0, 0, false
}

// SetInstrument programs voice v with ins.
func (s *Sound) SetInstrument(v int, ins Instrument) {
	s.mu.Lock()
	s.setInstrument(v, ins)
	s.mu.Unlock()
}

func (s *Sound) setInstrument(v int, ins Instrument) {
	ofs := voiceOfs(v)
	for i, r := range instrumentRegs {
		s.out(r+ofs, ins[i])
	}
	s.out(0xC0+byte(v), ins[10])
}

// Volume sets the carrier attenuation of voice v.
func (s *Sound) Volume(v int, vol byte) {
	s.mu.Lock()
	s.out(0x43+voiceOfs(v), vol)
	s.mu.Unlock()
}

// SetEffectInstrument installs the instrument used by effect id.
func (s *Sound) SetEffectInstrument(id SfxID, ins Instrument) {
	s.mu.Lock()
	s.instruments[id] = ins
	s.mu.Unlock()
}

// LoadInstruments reads every effect's SBI file from src.
func (s *Sound) LoadInstruments(src AssetSource) {
	for id, name := range InstrumentFiles {
		var ins Instrument
		buf := make([]byte, len(ins))
		src.Load(name, len(ins), buf)
		copy(ins[:], buf)
		s.SetEffectInstrument(SfxID(id), ins)
	}
}

// PlaySfx starts effect id on voice 0. The won effect queues the fanfare,
// which the timer tick plays note by note.
func (s *Sound) PlaySfx(id SfxID) {
	def := sfxTable[id]
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out(0xB0+sfxVoice, 0)
	s.setInstrument(sfxVoice, s.instruments[def.instrument])
	s.playFreq(sfxVoice, def.freq)
	s.queue = s.queue[:0]
	if id == SfxWon {
		for i, f := range fanfare {
			hold := def.duration
			if i == len(fanfare)-1 {
				hold *= 2
			}
			s.queue = append(s.queue, note{freq: f, hold: hold})
		}
	}
	s.hold.Store(int32(def.duration))
}

// Busy reports whether an effect or fanfare note is still held.
func (s *Sound) Busy() bool { return s.hold.Load() > 0 }

// tick counts down the effect hold. At zero it starts the next queued note
// or releases voice 0.
func (s *Sound) tick() {
	if s.hold.Load() <= 0 {
		return
	}
	if s.hold.Add(-1) > 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		n := s.queue[0]
		s.queue = s.queue[1:]
		s.playFreq(sfxVoice, n.freq)
		s.hold.Store(int32(n.hold))
		return
	}
	s.out(0xB0+sfxVoice, 0)
}
