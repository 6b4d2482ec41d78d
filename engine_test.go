package dossier_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/dossier"
	"github.com/phanxgames/dossier/sample"
)

// Screen positions in the sample registry after promotion.
const ottoScript = `{"steps": [
	{"action": "click", "x": 320, "y": 100},
	{"action": "click", "x": 100, "y": 62},
	{"action": "click", "x": 260, "y": 52},
	{"action": "click", "x": 124, "y": 116},
	{"action": "click", "x": 50, "y": 174},
	{"action": "click", "x": 600, "y": 10},
	{"action": "click", "x": 600, "y": 190}
]}`

func runSample(t *testing.T, script string, store dossier.GameStore) (*dossier.Engine, error) {
	t.Helper()
	runner, err := dossier.LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	cfg := sample.Config(sample.Pack())
	cfg.Headless = true
	cfg.Script = runner
	cfg.Store = store
	cfg.ScreenshotDir = t.TempDir()

	e, err := dossier.NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return e, e.Run(ctx)
}

func TestEngineNamesOtto(t *testing.T) {
	var events []dossier.GameEvent
	e, err := runSample(t, ottoScript, dossier.GameStoreFunc(func(ev dossier.GameEvent) {
		events = append(events, ev)
	}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := e.Session()
	if s == nil {
		t.Fatal("title screen was not dismissed")
	}

	bank := s.Bank()
	if bank.Len() != 2 || bank.At(1).Clue.Text != "Otto" {
		t.Fatalf("word bank holds %d words", bank.Len())
	}
	marked := 0
	for _, ev := range events {
		if ev.Type == dossier.EventClueMarked {
			marked++
		}
	}
	if marked != 2 {
		t.Errorf("clue events = %d, want wildcard and Otto", marked)
	}

	var otto *dossier.InputBox
	for _, in := range s.World().Inputs() {
		if in.Clue != nil && in.Clue.Text == sample.OttoInput {
			otto = in
		}
	}
	if otto == nil || otto.Word != bank.At(1) {
		t.Error("Otto's box should hold his name")
	}
	if s.Graph().Depth() != 0 || s.InputActive() {
		t.Error("the popup should be closed")
	}
	if !s.Quiz().InQuiz() {
		t.Error("the last click should enter the quiz")
	}
	if e.Display().ActivePage() != dossier.PageFront {
		t.Error("shutdown should restore the front page")
	}
	if s.Quiz().PortraitsStatus() != dossier.StatusIncomplete {
		t.Errorf("portraits %v, want incomplete", s.Quiz().PortraitsStatus())
	}
}

func TestEngineCompletesOnce(t *testing.T) {
	completed := 0
	e, err := runSample(t, ottoScript, dossier.GameStoreFunc(func(ev dossier.GameEvent) {
		if ev.Type == dossier.EventCompleted {
			completed++
		}
	}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := e.Session()
	q := s.Quiz()

	q.Reveal()
	if q.StoryStatus() != dossier.StatusCorrect {
		t.Fatalf("story %v after reveal", q.StoryStatus())
	}
	if q.Completed() {
		t.Fatal("the portraits are still open")
	}

	for _, in := range s.World().Inputs() {
		if in.Clue != nil {
			in.Word = s.Bank().Find(in.Clue)
		}
	}
	q.Check()
	q.Check()
	if !q.Completed() || !q.Explaining() {
		t.Fatal("quiz should be solved")
	}
	if completed != 1 {
		t.Errorf("completed events = %d, want 1", completed)
	}
}

func TestEngineEscapeOnTitle(t *testing.T) {
	e, err := runSample(t, `{"steps": [{"action": "key", "key": "esc"}]}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.Session() != nil {
		t.Error("escape on the title should end the game")
	}
	select {
	case <-e.Done():
	default:
		t.Error("Done should be closed")
	}
}

func TestEngineFatalContent(t *testing.T) {
	runner, err := dossier.LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 10, "y": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	cfg := sample.Config(sample.Pack())
	cfg.Headless = true
	cfg.Script = runner
	cfg.Content = func(w *dossier.World) []*dossier.View {
		scenes := sample.Content(w)
		w.NewClue("LEDGER")
		return scenes
	}
	e, err := dossier.NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	err = e.Run(context.Background())
	if !dossier.IsFatal(err) {
		t.Fatalf("err = %v, want a fatal error", err)
	}
	if got := dossier.FormatFatal(err); got != "FATAL ERROR: Duplicate clue 'LEDGER'" {
		t.Errorf("report %q", got)
	}
}

func TestNewEngineErrors(t *testing.T) {
	runner, err := dossier.LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		cfg  dossier.Config
		want string
	}{
		{"no assets", dossier.Config{Content: sample.Content}, "no assets"},
		{"no content", dossier.Config{Assets: sample.Pack()}, "no content"},
		{"script without scripted input", dossier.Config{
			Assets:  sample.Pack(),
			Content: sample.Content,
			Script:  runner,
			Input:   dossier.NewHostInput(),
		}, "ScriptedInput"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dossier.NewEngine(tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestEngineDefaults(t *testing.T) {
	e, err := dossier.NewEngine(sample.Config(sample.Pack()))
	if err != nil {
		t.Fatal(err)
	}
	cfg := e.Config()
	if cfg.TickRate != dossier.DefaultTickRate || cfg.MemoryBudget != dossier.DefaultMemoryBudget || cfg.Scale != 1 {
		t.Errorf("defaults %+v", cfg)
	}
	if cfg.Music != [2]string{dossier.MusicIntro, dossier.MusicLoop} {
		t.Errorf("music %v", cfg.Music)
	}
	if _, ok := e.Input().(*dossier.HostInput); !ok {
		t.Error("default input should be the host")
	}
}
