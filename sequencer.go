package dossier

import (
	"encoding/binary"
	"sync/atomic"
)

// MusicCommandSize is the size of one score command: register, value and a
// little-endian uint16 delay in ticks until the next command.
const MusicCommandSize = 4

// Segment identifiers of the two-part looping score.
const (
	SegmentA = 0
	SegmentB = 1
)

// score is the playback state of one loaded song. Everything except the
// atomics is touched only from Tick.
type score struct {
	seg     [2][]byte
	cur     int
	pos     int
	nextDue int64

	counter atomic.Int64
	segment atomic.Int32
}

// Sequencer plays a two-segment score into a SoundChip. Segment A runs
// first and hands over to B without touching the tick counter; when B is
// exhausted playback returns to A and the counter restarts at zero.
type Sequencer struct {
	chip SoundChip
	cur  atomic.Pointer[score]
}

// NewSequencer creates a sequencer writing to chip.
func NewSequencer(chip SoundChip) *Sequencer {
	return &Sequencer{chip: chip}
}

// Play starts the score made of segments a and b from the beginning.
// Trailing bytes that do not form a whole command are ignored.
func (s *Sequencer) Play(a, b []byte) {
	sc := &score{}
	sc.seg[SegmentA] = a[:len(a)/MusicCommandSize*MusicCommandSize]
	sc.seg[SegmentB] = b[:len(b)/MusicCommandSize*MusicCommandSize]
	if len(sc.seg[SegmentA]) == 0 && len(sc.seg[SegmentB]) == 0 {
		s.cur.Store(nil)
		return
	}
	s.cur.Store(sc)
}

// Stop ends playback.
func (s *Sequencer) Stop() { s.cur.Store(nil) }

// Playing reports whether a score is loaded.
func (s *Sequencer) Playing() bool { return s.cur.Load() != nil }

// Segment returns the segment currently playing.
func (s *Sequencer) Segment() int {
	if sc := s.cur.Load(); sc != nil {
		return int(sc.segment.Load())
	}
	return SegmentA
}

// Counter returns the sequencer tick counter.
func (s *Sequencer) Counter() int64 {
	if sc := s.cur.Load(); sc != nil {
		return sc.counter.Load()
	}
	return 0
}

// Tick advances the score by one timer tick and writes every command that
// has come due.
func (s *Sequencer) Tick() {
	sc := s.cur.Load()
	if sc == nil {
		return
	}
	counter := sc.counter.Add(1)
	switches := 0
	for counter >= sc.nextDue {
		cmds := sc.seg[sc.cur]
		if sc.pos >= len(cmds) {
			// Two switches without a command means the delays are all
			// zero; stop here rather than spin.
			if switches == 2 {
				return
			}
			switches++
			if sc.cur == SegmentA {
				sc.cur = SegmentB
			} else {
				sc.cur = SegmentA
				sc.nextDue = 0
				sc.counter.Store(0)
				counter = 0
			}
			sc.pos = 0
			sc.segment.Store(int32(sc.cur))
			continue
		}
		reg, val := cmds[sc.pos], cmds[sc.pos+1]
		delay := binary.LittleEndian.Uint16(cmds[sc.pos+2:])
		if s.chip != nil {
			s.chip.Write(reg, val)
		}
		sc.nextDue += int64(delay)
		sc.pos += MusicCommandSize
	}
}

// EncodeScore packs (register, value, delay) triples into score bytes.
func EncodeScore(cmds [][3]int) []byte {
	out := make([]byte, 0, len(cmds)*MusicCommandSize)
	for _, c := range cmds {
		out = append(out, byte(c[0]), byte(c[1]), byte(c[2]), byte(c[2]>>8))
	}
	return out
}
