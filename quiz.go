package dossier

import "strings"

// Status grades a quiz channel.
type Status uint8

const (
	StatusIncomplete Status = iota
	StatusIncorrect
	StatusCorrect
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusIncorrect:
		return "incorrect"
	}
	return "correct"
}

const (
	// MaxQuizInputs is the number of gaps a story can hold.
	MaxQuizInputs = 50

	inputChars = 12
	// InputW and InputH bound an input box for hit testing.
	InputW = inputChars * 8
	InputH = 9

	inputFG = 0
	quizFG  = 0
	quizBG  = 15

	storyX = 16
	storyY = 5

	statusLX   = 208 - 12*8
	statusRX   = 448 - 12*8
	statusY    = 157
	statusBad  = 4
	statusGood = 2
	statusW    = 184

	activeInputText = "     \x9e     "
)

var (
	storyLabels = [...]string{
		" Story:     Incomplete ",
		" Story:      Incorrect ",
		" Story:       Correct! ",
	}
	portraitLabels = [...]string{
		" Portraits: Incomplete ",
		" Portraits:  Incorrect ",
		" Portraits:   Correct! ",
	}
)

// Portrait is a suspect picture shown on the solution screen.
type Portrait struct {
	Image        string
	X, Y         int
	Name         string
	NameX, NameY int
}

// QuizDefinition is the story the player completes. A gap is written
// "[\xNN________]" where NN indexes Gaps, the name of the clue the gap
// expects. Inputs are numbered in reading order.
type QuizDefinition struct {
	Story []string
	Gaps  []string

	// EitherOrder lists pairs of inputs that also accept each other's
	// clue, provided both are swapped.
	EitherOrder [][2]int
	// AnyOf maps an input to further clue names it accepts.
	AnyOf map[int][]string

	Solution  string
	Portraits []Portrait
}

// Quiz is the fill-in-the-blanks story on the quiz page.
type Quiz struct {
	d     *Display
	src   AssetSource
	alloc *Allocator
	sound *Sound
	world *World
	bank  *WordBank
	store GameStore

	def   QuizDefinition
	story []string

	inputs [MaxQuizInputs]InputBox
	n      int

	active, hover, redraw *InputBox

	storyStat, portraitStat Status
	inQuiz                  bool
	completed               bool
	explain                 bool

	// Debug enables the reveal keys.
	Debug bool
}

// NewQuiz creates a quiz over world's clues. sound and store may be nil.
func NewQuiz(d *Display, src AssetSource, alloc *Allocator, sound *Sound, world *World, bank *WordBank, store GameStore, def QuizDefinition) *Quiz {
	return &Quiz{
		d:            d,
		src:          src,
		alloc:        alloc,
		sound:        sound,
		world:        world,
		bank:         bank,
		store:        store,
		def:          def,
		story:        append([]string(nil), def.Story...),
		storyStat:    StatusCorrect,
		portraitStat: StatusCorrect,
	}
}

func nextStoryLine(line string, y int) int {
	if line == "" {
		return y + 6
	}
	return y + LineHeight + 1
}

// Init parses the story gaps into input boxes holding wildcard, draws the
// story on the quiz page and grades it.
func (q *Quiz) Init(wildcard *Word) {
	y := storyY
	for i, line := range q.story {
		b := []byte(line)
		for c := 0; c < len(b); c++ {
			if b[c] != '[' {
				continue
			}
			if q.n >= MaxQuizInputs {
				fatal("Not enough inputs")
			}
			if c+10 >= len(b) || b[c+10] != ']' || int(b[c+1]) >= len(q.def.Gaps) {
				fatal("Bad input")
			}
			name := q.def.Gaps[b[c+1]]
			for l := 0; l <= 10; l++ {
				b[c+l] = ' '
			}
			clue := q.world.FindClue(name)
			if clue == nil {
				fatalf("Missing clue %s", name)
			}
			box := &q.inputs[q.n]
			q.n++
			box.Clue = clue
			box.Word = wildcard
			box.X = storyX + c*8
			box.Y = y
		}
		q.story[i] = string(b)
		q.d.Text(PageQuiz, q.story[i], storyX, y, quizFG, quizBG)
		y = nextStoryLine(line, y)
	}
	for i := 0; i < q.n; i++ {
		q.drawInput(&q.inputs[i])
	}
	q.Check()
}

// Inputs returns the story input boxes in reading order.
func (q *Quiz) Inputs() []*InputBox {
	out := make([]*InputBox, q.n)
	for i := range out {
		out[i] = &q.inputs[i]
	}
	return out
}

// Story returns the story lines with the gap markers blanked.
func (q *Quiz) Story() []string { return q.story }

func (q *Quiz) StoryStatus() Status     { return q.storyStat }
func (q *Quiz) PortraitsStatus() Status { return q.portraitStat }
func (q *Quiz) Completed() bool         { return q.completed }
func (q *Quiz) Explaining() bool        { return q.explain }
func (q *Quiz) InQuiz() bool            { return q.inQuiz }

// ActiveInput returns the box awaiting a word, or nil.
func (q *Quiz) ActiveInput() *InputBox { return q.active }

func (b *InputBox) over(x, y int) bool {
	return x >= b.X && x <= b.X+InputW && y >= b.Y && y <= b.Y+InputH
}

// DrawInput draws an input box on page: the bound word centred in its clue
// colour, or the input marker while the box awaits a word.
func (d *Display) DrawInput(in *InputBox, page PageID, active bool) {
	if in.Clue == nil {
		fatal("Input->Clue NULL")
	}
	var text string
	if in.Word != nil && in.Word.Clue != nil {
		text = in.Word.Clue.Text
	}
	padded := []byte(strings.Repeat(" ", inputChars))
	m := (inputChars - 1 - len(text)) / 2
	if m < 0 {
		m = 0
	}
	for i := 0; i < len(text) && i+m < inputChars; i++ {
		padded[i+m] = text[i]
	}

	bg := in.Clue.Type.Color()
	if active {
		d.Text(page, activeInputText, in.X, in.Y, inputFG, bg)
	} else {
		d.Text(page, string(padded[:inputChars-1]), in.X, in.Y, inputFG, bg)
	}
	d.DrawSide(page, in.X-8, in.Y, bg, SideLeft)
	d.DrawSide(page, in.X+88, in.Y, bg, SideRight)
}

func (q *Quiz) drawInput(in *InputBox) {
	q.d.DrawInput(in, PageQuiz, in == q.active)
}

func (q *Quiz) drawStatus(text string, x int, bg uint8) {
	q.d.DrawSide(PageQuiz, x-8, statusY, bg, SideLeft)
	q.d.Text(PageQuiz, text, x, statusY, 15, bg)
	q.d.DrawSide(PageQuiz, x+statusW, statusY, bg, SideRight)
}

func statusColor(s Status) uint8 {
	if s == StatusCorrect {
		return statusGood
	}
	return statusBad
}

func (q *Quiz) emit(ev GameEvent) {
	if q.store != nil {
		q.store.EmitEvent(ev)
	}
}

func (q *Quiz) playSfx(id SfxID) {
	if q.sound != nil {
		q.sound.PlaySfx(id)
	}
}

// accepts reports whether input i may hold clue c, ignoring pairs.
func (q *Quiz) accepts(i int, c *Clue) bool {
	if c == q.inputs[i].Clue {
		return true
	}
	for _, name := range q.def.AnyOf[i] {
		if alt := q.world.FindClue(name); alt != nil && alt == c {
			return true
		}
	}
	return false
}

func (q *Quiz) gradeStory() Status {
	wildcard := q.world.Wildcard()
	for i := 0; i < q.n; i++ {
		w := q.inputs[i].Word
		if w == nil || w.Clue == wildcard {
			return StatusIncomplete
		}
	}

	paired := make(map[int]bool, len(q.def.EitherOrder)*2)
	for _, p := range q.def.EitherOrder {
		a, b := p[0], p[1]
		if a >= q.n || b >= q.n {
			continue
		}
		paired[a], paired[b] = true, true
		wa, wb := q.inputs[a].Word.Clue, q.inputs[b].Word.Clue
		straight := wa == q.inputs[a].Clue && wb == q.inputs[b].Clue
		swapped := wa == q.inputs[b].Clue && wb == q.inputs[a].Clue
		if !straight && !swapped {
			return StatusIncorrect
		}
	}
	for i := 0; i < q.n; i++ {
		if paired[i] {
			continue
		}
		if !q.accepts(i, q.inputs[i].Word.Clue) {
			return StatusIncorrect
		}
	}
	return StatusCorrect
}

// Check grades the story and the scene portraits, redraws any status pill
// that changed and runs the completion sequence the first time both are
// correct.
func (q *Quiz) Check() {
	story := q.gradeStory()
	if story != q.storyStat {
		q.storyStat = story
		q.drawStatus(storyLabels[story], statusRX, statusColor(story))
		q.emit(GameEvent{Type: EventStatusChanged, Channel: ChannelStory, Status: story})
	}

	portraits := q.world.InputsCheck()
	if portraits != q.portraitStat {
		q.portraitStat = portraits
		q.drawStatus(portraitLabels[portraits], statusLX, statusColor(portraits))
		q.emit(GameEvent{Type: EventStatusChanged, Channel: ChannelPortraits, Status: portraits})
	}

	if !q.completed && q.storyStat == StatusCorrect && q.portraitStat == StatusCorrect {
		q.completed = true
		q.active = nil
		if q.redraw != nil {
			q.drawInput(q.redraw)
			q.redraw = nil
		}
		q.explainSolution()
		q.playSfx(SfxWon)
		q.emit(GameEvent{Type: EventCompleted, Status: StatusCorrect})
	}
}

func (q *Quiz) explainSolution() {
	const x, y, w, h = 8, 2, 624, LineHeight * 17
	q.d.Fill(PageQuiz, x, y, w, h, 15, 15)
	q.d.DrawEdge(PageQuiz, x, y, w, h, 0, 15, StylePrint)
	q.d.Text(PageQuiz, " CONGRATULATIONS! ", ScreenW/2-80, y, 0, 15)
	q.d.Text(PageQuiz, q.def.Solution, 120, y+2*LineHeight, 0, 15)
	for _, p := range q.def.Portraits {
		if p.Image != "" {
			q.d.LoadImage(q.src, q.alloc, p.Image, PageQuiz, p.X, p.Y)
		}
		q.d.Text(PageQuiz, p.Name, p.NameX, p.NameY, 0, 15)
	}
	q.explain = true
}

// redrawAll restores the quiz page after the solution screen.
func (q *Quiz) redrawAll() {
	q.d.VSync()
	q.d.LoadImage(q.src, q.alloc, QuizAsset, PageQuiz, 0, 0)
	y := storyY
	for _, line := range q.story {
		q.d.Text(PageQuiz, line, storyX, y, quizFG, quizBG)
		y = nextStoryLine(line, y)
	}
	for i := 0; i < q.n; i++ {
		q.drawInput(&q.inputs[i])
	}
	q.drawStatus(portraitLabels[StatusCorrect], statusLX, statusGood)
	q.drawStatus(storyLabels[StatusCorrect], statusRX, statusGood)
}

func (q *Quiz) updateCursor(in Input, x, y int) {
	q.hover = nil
	if !q.completed {
		if q.active != nil && q.bank.WordAt(x, y) != nil {
			in.SetCursor(CursorNote)
			return
		}
		for i := 0; i < q.n; i++ {
			if q.inputs[i].over(x, y) {
				q.hover = &q.inputs[i]
			}
		}
	}
	if q.hover != nil || overQuizButton(x, y) {
		in.SetCursor(CursorNote)
	} else {
		in.SetCursor(CursorDefault)
	}
}

func (q *Quiz) clickedWord(x, y int) bool {
	if q.active == nil {
		return false
	}
	w := q.bank.WordAt(x, y)
	if w == nil {
		return false
	}
	q.active.Word = w
	q.redraw = q.active
	q.active = nil
	q.playSfx(SfxDrop)
	return true
}

// Frame runs one quiz page frame. A click on the solution screen restores
// the page, a click on a box selects it and a click on a word while a box
// is selected fills it.
func (q *Quiz) Frame(in Input) {
	x, y := in.Pointer()
	q.updateCursor(in, x, y)
	q.redraw = nil

	if in.Clicked() {
		switch {
		case q.explain:
			q.redrawAll()
			q.explain = false
		case q.completed:
		case q.clickedWord(x, y):
			q.Check()
		default:
			prev := q.active
			if q.hover != nil {
				q.active = q.hover
				q.redraw = q.active
				q.playSfx(SfxDrop)
			} else {
				q.active = nil
			}
			if prev != nil && prev != q.hover {
				q.drawInput(prev)
			}
		}
	}

	if q.Debug {
		switch in.Key() {
		case 'a':
			q.Reveal()
		case 'c':
			q.markAll()
		}
	}

	q.d.VSync()
	if q.redraw != nil {
		q.drawInput(q.redraw)
	}
}

// Enter shows the quiz page.
func (q *Quiz) Enter() {
	q.inQuiz = true
	q.Check()
	q.d.SetActivePage(PageQuiz)
}

// Exit returns to the game page.
func (q *Quiz) Exit() {
	q.inQuiz = false
	q.d.SetActivePage(PageFront)
}

func (q *Quiz) markAll() {
	for _, c := range q.world.Clues() {
		q.bank.Mark(c)
	}
}

// Reveal marks every clue and fills every box with its expected word.
func (q *Quiz) Reveal() {
	q.markAll()
	for i := 0; i < q.n; i++ {
		box := &q.inputs[i]
		if w := q.bank.Find(box.Clue); w != nil {
			box.Word = w
		}
		q.drawInput(box)
	}
	q.Check()
}
