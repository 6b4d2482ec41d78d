package dossier

import (
	"io"
	"strings"
	"testing"
)

type quizFixture struct {
	w    *World
	bank *WordBank
	q    *Quiz

	otto, vera, desk, cabinet *Word
	events                    []GameEvent
}

const registrarStory = "[\x00________] and [\x01________] hid it in the [\x02________]."

func newQuizFixture(t *testing.T, def QuizDefinition) *quizFixture {
	t.Helper()
	f := &quizFixture{}
	src := testAssets()
	d := NewDisplay(nil)
	store := GameStoreFunc(func(ev GameEvent) { f.events = append(f.events, ev) })

	f.w = NewWorld(src)
	f.bank = NewWordBank(d, nil, store)
	wildcard := f.bank.Mark(f.w.Wildcard())
	f.otto = f.bank.Mark(f.w.NewClue("Otto"))
	f.vera = f.bank.Mark(f.w.NewClue("Vera"))
	f.desk = f.bank.Mark(f.w.NewClue("desk"))
	f.cabinet = f.bank.Mark(f.w.NewClue("cabinet"))
	f.events = nil

	f.q = NewQuiz(d, src, NewAllocator(DefaultMemoryBudget, io.Discard), nil, f.w, f.bank, store, def)
	f.q.Init(wildcard)
	return f
}

func registrarQuiz() QuizDefinition {
	return QuizDefinition{
		Story:       []string{registrarStory, "", "The end."},
		Gaps:        []string{"Otto", "Vera", "cabinet"},
		EitherOrder: [][2]int{{0, 1}},
		AnyOf:       map[int][]string{2: {"desk"}},
		Solution:    "Case closed.",
	}
}

func (f *quizFixture) fill(words ...*Word) {
	for i, w := range words {
		f.q.inputs[i].Word = w
	}
}

func (f *quizFixture) count(typ EventType) int {
	n := 0
	for _, ev := range f.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestQuizInit(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	in := f.q.Inputs()
	if len(in) != 3 {
		t.Fatalf("inputs = %d, want 3", len(in))
	}
	wantX := []int{16, 16 + 16*8, 16 + 42*8}
	for i, box := range in {
		if box.X != wantX[i] || box.Y != storyY {
			t.Errorf("input %d at (%d,%d), want (%d,%d)", i, box.X, box.Y, wantX[i], storyY)
		}
		if box.Word.Clue != f.w.Wildcard() {
			t.Errorf("input %d should hold the wildcard", i)
		}
	}
	if in[2].Clue != f.cabinet.Clue {
		t.Error("gap byte should pick the clue")
	}
	gap := strings.Repeat(" ", 11)
	if line, want := f.q.Story()[0], gap+" and "+gap+" hid it in the "+gap+"."; line != want {
		t.Errorf("gap markers should be blanked:\n got %q\nwant %q", line, want)
	}
	if f.q.StoryStatus() != StatusIncomplete || f.q.PortraitsStatus() != StatusCorrect {
		t.Errorf("status story %v portraits %v", f.q.StoryStatus(), f.q.PortraitsStatus())
	}
	if f.q.Completed() {
		t.Error("quiz completed without words")
	}
}

func TestQuizLineSpacing(t *testing.T) {
	def := registrarQuiz()
	def.Story = []string{"", "[\x00________]", "text", "[\x01________] [\x02________]"}
	f := newQuizFixture(t, def)
	in := f.q.Inputs()
	// An empty line advances 6 pixels, any other LineHeight+1.
	if in[0].Y != storyY+6 || in[1].Y != storyY+6+2*(LineHeight+1) {
		t.Errorf("rows %d and %d", in[0].Y, in[1].Y)
	}
}

func TestQuizBadDefinitions(t *testing.T) {
	tests := []struct {
		name  string
		story string
		gaps  []string
		want  string
	}{
		{"short gap", "[\x00____]", []string{"Otto"}, "Bad input"},
		{"unterminated", "[\x00________", []string{"Otto"}, "Bad input"},
		{"gap index", "[\x05________]", []string{"Otto"}, "Bad input"},
		{"unknown clue", "[\x00________]", []string{"ghost"}, "Missing clue ghost"},
		{"too many", strings.Repeat("[\x00________]", MaxQuizInputs+1), []string{"Otto"}, "Not enough inputs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFatal(t, tt.want, func() {
				newQuizFixture(t, QuizDefinition{Story: []string{tt.story}, Gaps: tt.gaps})
			})
		})
	}
}

func TestQuizGrading(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	tests := []struct {
		name  string
		words []*Word
		want  Status
	}{
		{"straight", []*Word{f.otto, f.vera, f.cabinet}, StatusCorrect},
		{"pair swapped", []*Word{f.vera, f.otto, f.cabinet}, StatusCorrect},
		{"alternative", []*Word{f.otto, f.vera, f.desk}, StatusCorrect},
		{"pair doubled", []*Word{f.otto, f.otto, f.cabinet}, StatusIncorrect},
		{"wrong place", []*Word{f.otto, f.vera, f.otto}, StatusIncorrect},
	}
	for _, tt := range tests {
		f.fill(tt.words...)
		if got := f.q.gradeStory(); got != tt.want {
			t.Errorf("%s: %v, want %v", tt.name, got, tt.want)
		}
	}

	f.fill(f.otto, f.vera)
	f.q.inputs[2].Word = f.bank.At(0)
	if got := f.q.gradeStory(); got != StatusIncomplete {
		t.Errorf("a wildcard left in: %v, want incomplete", got)
	}
}

func TestQuizCompletesOnce(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	f.fill(f.otto, f.otto, f.cabinet)
	f.q.Check()
	if f.q.StoryStatus() != StatusIncorrect || f.q.Completed() {
		t.Fatal("wrong story should not complete")
	}

	f.fill(f.vera, f.otto, f.desk)
	f.q.Check()
	f.q.Check()
	if !f.q.Completed() || !f.q.Explaining() {
		t.Fatal("correct story should complete and explain")
	}
	if n := f.count(EventCompleted); n != 1 {
		t.Errorf("completed events = %d, want 1", n)
	}
	// Init grades to incomplete, then incorrect, then correct.
	if n := f.count(EventStatusChanged); n != 3 {
		t.Errorf("status events = %d, want 3", n)
	}
}

func TestQuizWaitsForPortraits(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	inv := f.w.NewInventoryView("", "", "", "Vera")
	f.w.BindInputs(f.bank.At(0))

	f.fill(f.otto, f.vera, f.cabinet)
	f.q.Check()
	if f.q.PortraitsStatus() != StatusIncomplete || f.q.Completed() {
		t.Fatal("an open portrait should hold completion back")
	}
	inv.Input.Word = f.vera
	f.q.Check()
	if !f.q.Completed() {
		t.Error("quiz should complete once the portrait is named")
	}
}

func TestQuizFrameFillsInput(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	in := NewScriptedInput()
	frame := func() {
		in.Poll()
		f.q.Frame(in)
	}

	in.InjectClick(20, storyY+2)
	frame()
	if f.q.ActiveInput() != f.q.Inputs()[0] {
		t.Fatal("clicking a box should select it")
	}
	frame()

	in.InjectClick(f.vera.X+4, WordsTop+2)
	frame()
	if f.q.ActiveInput() != nil || f.q.Inputs()[0].Word != f.vera {
		t.Fatal("clicking a word should fill the selected box")
	}
	frame()

	in.InjectClick(300, 100)
	frame()
	if f.q.ActiveInput() != nil {
		t.Error("a click elsewhere selects nothing")
	}
}

func TestQuizReveal(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	f.q.Reveal()
	if !f.q.Completed() || f.q.StoryStatus() != StatusCorrect {
		t.Error("reveal should solve the story")
	}
}

func TestQuizEnterExit(t *testing.T) {
	f := newQuizFixture(t, registrarQuiz())
	f.q.Enter()
	if !f.q.InQuiz() || f.q.d.ActivePage() != PageQuiz {
		t.Fatal("enter should show the quiz page")
	}
	f.q.Exit()
	if f.q.InQuiz() || f.q.d.ActivePage() != PageFront {
		t.Error("exit should show the front page")
	}
}
