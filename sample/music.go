package sample

import "github.com/phanxgames/dossier"

// Voices the score plays on. Voice 0 is left to the sound effects.
const (
	melodyVoice = 1
	bassVoice   = 2

	// beat is an eighth note at the default timer rate.
	beat = dossier.DefaultTickRate / 4
)

// voice programs a soft organ on voice v.
func voice(v int) [][3]int {
	ofs := v%3 + (v/3)<<3
	return [][3]int{
		{0x20 + ofs, 0x01, 0}, {0x23 + ofs, 0x01, 0},
		{0x40 + ofs, 0x18, 0}, {0x43 + ofs, 0x00, 0},
		{0x60 + ofs, 0xF4, 0}, {0x63 + ofs, 0xF3, 0},
		{0x80 + ofs, 0x55, 0}, {0x83 + ofs, 0x45, 0},
		{0xC0 + v, 0x04, 0},
	}
}

// keyOn starts freq on voice v and waits delay ticks.
func keyOn(v, freq, delay int) [][3]int {
	fnum, block, ok := dossier.FreqToFnum(freq)
	if !ok {
		return nil
	}
	return [][3]int{
		{0xA0 + v, fnum & 0xFF, 0},
		{0xB0 + v, 0x20 | block<<2 | fnum>>8, delay},
	}
}

// tone holds freq on voice v for the given number of beats, releasing it
// on the last tick. A zero freq rests.
func tone(v, freq, beats int) [][3]int {
	if freq == 0 {
		return [][3]int{{0xB0 + v, 0, beats * beat}}
	}
	out := keyOn(v, freq, beats*beat-1)
	if out == nil {
		return nil
	}
	return append(out, [3]int{0xA0 + v, 0, 1}, [3]int{0xB0 + v, 0, 0})
}

// phrase plays a melody over a bass line that changes every two melody
// notes. Bass notes sustain until the next one.
func phrase(melody, bass []int) [][3]int {
	var out [][3]int
	for i, f := range melody {
		if i%2 == 0 && i/2 < len(bass) {
			out = append(out, [3]int{0xB0 + bassVoice, 0, 0})
			out = append(out, keyOn(bassVoice, bass[i/2], 0)...)
		}
		out = append(out, tone(melodyVoice, f, 1)...)
	}
	return out
}

func introScore() []byte {
	cmds := append(voice(melodyVoice), voice(bassVoice)...)
	cmds = append(cmds, phrase(
		[]int{440, 0, 523, 0, 494, 440, 415, 0},
		[]int{110, 110, 82, 82},
	)...)
	return dossier.EncodeScore(cmds)
}

func loopScore() []byte {
	cmds := phrase(
		[]int{330, 392, 440, 392, 330, 294, 330, 0},
		[]int{110, 98, 110, 82},
	)
	cmds = append(cmds, phrase(
		[]int{349, 330, 294, 262, 294, 330, 220, 0},
		[]int{87, 98, 110, 110},
	)...)
	return dossier.EncodeScore(cmds)
}
