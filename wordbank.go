package dossier

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MaxWords is the word bank capacity.
	MaxWords = 30

	// WordsTop is the top of the word bank on both pages.
	WordsTop = ScreenH - ClueHeight*3

	wordFG = 0

	// framesPerLetter paces the typewriter reveal on the front page.
	framesPerLetter = 2
)

// reveal types one word onto the front page a letter at a time.
type reveal struct {
	word  *Word
	tween *gween.Tween
	shown int
}

// WordBank is the session's list of discovered clues, in discovery order.
// A marked word appears on the quiz page at once and is typed onto the
// front page over the following frames.
type WordBank struct {
	d     *Display
	sound *Sound
	store GameStore

	words   [MaxWords]Word
	n       int
	x, y    int
	reveals []*reveal
}

// NewWordBank creates an empty bank. sound and store may be nil.
func NewWordBank(d *Display, sound *Sound, store GameStore) *WordBank {
	return &WordBank{d: d, sound: sound, store: store, x: 8}
}

// Len returns the number of words.
func (b *WordBank) Len() int { return b.n }

// At returns word i.
func (b *WordBank) At(i int) *Word { return &b.words[i] }

// Find returns the word for clue c, or nil.
func (b *WordBank) Find(c *Clue) *Word {
	for i := 0; i < b.n; i++ {
		if b.words[i].Clue == c {
			return &b.words[i]
		}
	}
	return nil
}

// Mark adds clue c to the bank. Marking a clue twice returns the existing
// word.
func (b *WordBank) Mark(c *Clue) *Word {
	if w := b.Find(c); w != nil {
		return w
	}
	if b.n == MaxWords {
		fatal("Not enough words!")
	}
	w := &b.words[b.n]
	b.n++
	w.Clue = c

	tw := len(c.Text) * 8
	if b.x+tw >= ScreenW-QuizButtonW {
		b.x = 8
		b.y += ClueHeight
	}
	if b.n > 1 && b.sound != nil {
		b.sound.PlaySfx(SfxClue)
	}

	bg := c.Type.Color()
	w.X, w.Y, w.W, w.H = b.x, b.y, tw, LineHeight
	top := w.Y + WordsTop

	b.d.DrawSide(PageFront, w.X-8, top, bg, SideLeft)
	b.d.Text(PageQuiz, c.Text, w.X, top, wordFG, bg)
	b.d.DrawSide(PageQuiz, w.X-8, top, bg, SideLeft)
	b.d.DrawSide(PageQuiz, w.X+tw, top, bg, SideRight)

	steps := float32(len(c.Text) * framesPerLetter)
	b.reveals = append(b.reveals, &reveal{
		word:  w,
		tween: gween.New(0, float32(len(c.Text)), steps, ease.Linear),
	})
	b.x += (len(c.Text) + 1) * 8

	if b.store != nil {
		b.store.EmitEvent(GameEvent{Type: EventClueMarked, Clue: c})
	}
	return w
}

// Revealing reports whether a word is still being typed.
func (b *WordBank) Revealing() bool { return len(b.reveals) > 0 }

// Update advances the oldest pending reveal by one frame.
func (b *WordBank) Update() {
	if len(b.reveals) == 0 {
		return
	}
	r := b.reveals[0]
	v, done := r.tween.Update(1)
	upto := int(v)
	if done {
		upto = len(r.word.Clue.Text)
	}
	b.typeLetters(r, upto)
	if done {
		b.finish(r)
	}
}

// Flush completes every pending reveal immediately.
func (b *WordBank) Flush() {
	for len(b.reveals) > 0 {
		r := b.reveals[0]
		b.typeLetters(r, len(r.word.Clue.Text))
		b.finish(r)
	}
}

func (b *WordBank) typeLetters(r *reveal, upto int) {
	w := r.word
	text := w.Clue.Text
	bg := w.Clue.Type.Color()
	for ; r.shown < upto; r.shown++ {
		b.d.Text(PageFront, text[r.shown:r.shown+1], w.X+8*r.shown, w.Y+WordsTop, wordFG, bg)
	}
}

func (b *WordBank) finish(r *reveal) {
	w := r.word
	b.d.DrawSide(PageFront, w.X+w.W, w.Y+WordsTop, w.Clue.Type.Color(), SideRight)
	b.reveals = b.reveals[1:]
}

// overWord uses inclusive bounds, offset to the bank's screen row.
func (w *Word) over(x, y int) bool {
	return x >= w.X && x <= w.X+w.W && y >= w.Y+WordsTop && y <= w.Y+w.H+WordsTop
}

// WordAt returns the word under (x, y), or nil.
func (b *WordBank) WordAt(x, y int) *Word {
	for i := 0; i < b.n; i++ {
		if b.words[i].over(x, y) {
			return &b.words[i]
		}
	}
	return nil
}
