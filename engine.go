package dossier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Music segment files played from the title screen on.
const (
	MusicIntro = "MUSIC.IMF1"
	MusicLoop  = "MUSIC.IMF2"
)

// TitleLine is one line of text over the title image.
type TitleLine struct {
	Text string
	Y    int
}

// TitleScreen is shown until the first click.
type TitleScreen struct {
	Image string
	Lines []TitleLine
}

// titleX centres the 26-column title lines.
const titleX = ScreenW/2 - 13*8

// Config configures an Engine. Assets and Content are required.
type Config struct {
	// Title is the window title.
	Title string
	// Scale multiplies the 640×400 window size.
	Scale int
	// TickRate is the timer frequency in Hz. Zero means DefaultTickRate.
	TickRate int
	// MemoryBudget caps pixel buffers. Zero means DefaultMemoryBudget.
	MemoryBudget uint64
	// Debug enables debug keys, the memory overlay and stderr reports.
	Debug bool
	// Headless runs without the timer goroutine and without audio. Waits
	// tick the timer directly.
	Headless bool
	// Mute skips opening the sound device.
	Mute bool

	Assets AssetSource
	// Content builds the scenes into w and returns them; the first is
	// where play starts.
	Content     func(w *World) []*View
	Quiz        QuizDefinition
	TitleScreen TitleScreen
	Music       [2]string

	// OnBaseTick is called at the classic 18.2 Hz timer rate.
	OnBaseTick func()
	// Store receives game events. May be nil.
	Store GameStore
	// Input defaults to a HostInput.
	Input Input
	// Script, when set, drives a ScriptedInput and ends the run when done.
	Script *TestRunner
	// ScreenshotDir receives script screenshots.
	ScreenshotDir string
	// ErrOut receives the allocator dump on exhaustion. Defaults to stderr.
	ErrOut io.Writer
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "Dossier"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.MemoryBudget == 0 {
		c.MemoryBudget = DefaultMemoryBudget
	}
	if c.Music == [2]string{} {
		c.Music = [2]string{MusicIntro, MusicLoop}
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.ErrOut == nil {
		c.ErrOut = os.Stderr
	}
	if c.Input == nil {
		if c.Script != nil {
			c.Input = NewScriptedInput()
		} else {
			c.Input = NewHostInput()
		}
	}
	return c
}

// Engine owns the display, timer, sound and assets of a game and runs its
// main sequence: title screen, content, then the frame loop.
type Engine struct {
	cfg Config

	display *Display
	alloc   *Allocator
	synth   *Synth
	sound   *Sound
	seq     *Sequencer
	timer   *Timer
	backend AudioBackend

	mu      sync.Mutex
	session *Session
	quit    atomic.Bool
	done    chan struct{}
}

// NewEngine validates cfg and builds the engine's subsystems.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Assets == nil {
		return nil, errors.New("dossier: config has no assets")
	}
	if cfg.Content == nil {
		return nil, errors.New("dossier: config has no content")
	}
	cfg = cfg.withDefaults()
	if cfg.Script != nil {
		if _, ok := cfg.Input.(*ScriptedInput); !ok {
			return nil, errors.New("dossier: a test script needs a ScriptedInput")
		}
	}

	e := &Engine{
		cfg:     cfg,
		display: NewDisplay(nil),
		alloc:   NewAllocator(cfg.MemoryBudget, cfg.ErrOut),
		synth:   NewSynth(SynthSampleRate),
		done:    make(chan struct{}),
	}
	e.sound = NewSound(e.synth)
	e.seq = NewSequencer(e.synth)
	e.timer = NewTimer(cfg.TickRate, e.sound, e.seq, cfg.OnBaseTick)
	return e, nil
}

func (e *Engine) Display() *Display     { return e.display }
func (e *Engine) Timer() *Timer         { return e.timer }
func (e *Engine) Sound() *Sound         { return e.sound }
func (e *Engine) Sequencer() *Sequencer { return e.seq }
func (e *Engine) Allocator() *Allocator { return e.alloc }
func (e *Engine) Input() Input          { return e.cfg.Input }
func (e *Engine) Config() Config        { return e.cfg }

// Session returns the play-through once the title screen is dismissed.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Done is closed when Run returns.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Quit asks the main loop to stop after the current frame.
func (e *Engine) Quit() { e.quit.Store(true) }

func (e *Engine) quitting(ctx context.Context) bool {
	return e.quit.Load() || ctx.Err() != nil
}

// Start runs the engine on its own goroutine and delivers Run's result.
func (e *Engine) Start(ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx) }()
	return errc
}

// Run plays the game until the player quits or ctx ends. A fatal error
// stops play and is returned once audio, video and assets are shut down.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err := CatchFatal(func() { e.run(ctx) })
	e.teardown()
	return err
}

func (e *Engine) run(ctx context.Context) {
	e.initIO(ctx)
	e.initAudio()
	e.loadStaticPages()
	e.display.FadeOut(e.timer)
	e.playMusic()

	if !e.titleScreen(ctx) {
		return
	}
	e.display.FadeOut(e.timer)
	e.cfg.Input.SetCursor(CursorDefault)

	s, start := e.newSession()
	e.mu.Lock()
	e.session = s
	e.mu.Unlock()

	s.graph.LoadScene(start)
	s.graph.DrawHotspots()
	e.display.FadeIn(e.timer)

	for !s.Quitting() && !e.quitting(ctx) {
		if r := e.cfg.Script; r != nil {
			r.Step(e.cfg.Input.(*ScriptedInput), e.display, e.cfg.ScreenshotDir)
			if r.Done() {
				break
			}
		}
		s.Frame()
	}
}

func (e *Engine) initIO(ctx context.Context) {
	src := e.cfg.Assets
	if _, _, ok := src.Resolve(FontAsset); ok {
		f, err := LoadFont(src)
		if err != nil {
			fatal(err.Error())
		}
		e.display.SetFont(f)
	}
	if !e.cfg.Headless {
		go e.timer.Run(ctx)
	}
}

func (e *Engine) initAudio() {
	src := e.cfg.Assets
	e.sound.Reset()
	if missing := missingAssets(src, InstrumentFiles[:]); len(missing) == 0 {
		e.sound.LoadInstruments(src)
	} else if e.cfg.Debug {
		debugf("no instruments %v, effects use the default voice", missing)
	}

	if e.cfg.Headless || e.cfg.Mute {
		return
	}
	b, err := NewAudioBackend(e.synth)
	if err == nil {
		err = b.Start()
	}
	if err != nil {
		debugf("audio disabled: %v", err)
		return
	}
	e.backend = b
}

func missingAssets(src AssetSource, names []string) []string {
	var out []string
	for _, name := range names {
		if _, _, ok := src.Resolve(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

// loadStaticPages fills the sprite atlas and the parts of the quiz page
// that never change.
func (e *Engine) loadStaticPages() {
	d, src := e.display, e.cfg.Assets
	d.Clear(PageSprites, 0)
	d.LoadImage(src, e.alloc, SpritesAsset, PageSprites, 0, 0)
	d.LoadImage(src, e.alloc, QuizAsset, PageQuiz, 0, 0)
	d.LoadImage(src, e.alloc, BottomAsset, PageQuiz, 0, BottomY)
	d.Text(PageQuiz, " TO \nGAME", ScreenW-QuizButtonW+16, ScreenH-QuizButtonH+6, 7, 0)
}

func (e *Engine) loadMusic(name string) []byte {
	src := e.cfg.Assets
	if _, _, ok := src.Resolve(name); !ok {
		return nil
	}
	n := src.Len(name)
	buf := make([]byte, n)
	src.Load(name, n, buf)
	return buf
}

func (e *Engine) playMusic() {
	a := e.loadMusic(e.cfg.Music[0])
	b := e.loadMusic(e.cfg.Music[1])
	e.seq.Play(a, b)
}

// titleScreen shows the title until a click. It reports false when the
// player quit instead.
func (e *Engine) titleScreen(ctx context.Context) bool {
	d, in := e.display, e.cfg.Input
	d.Clear(PageFront, 0)
	if img := e.cfg.TitleScreen.Image; img != "" {
		d.LoadImage(e.cfg.Assets, e.alloc, img, PageFront, 0, 0)
	}
	for _, l := range e.cfg.TitleScreen.Lines {
		d.Text(PageFront, l.Text, titleX, l.Y, 15, 0)
	}
	in.SetCursor(CursorHotspot)
	d.FadeIn(e.timer)

	runner := e.cfg.Script
	for !e.quitting(ctx) {
		if runner != nil {
			runner.Step(in.(*ScriptedInput), d, e.cfg.ScreenshotDir)
			if runner.Done() {
				return false
			}
		}
		in.Poll()
		if in.Key() == KeyEscape {
			return false
		}
		if in.Clicked() {
			return true
		}
		d.VSync()
	}
	return false
}

// newSession builds the world, word bank and quiz and returns the session
// with its starting scene.
func (e *Engine) newSession() (*Session, *View) {
	d, src := e.display, e.cfg.Assets

	d.LoadImage(src, e.alloc, BottomAsset, PageFront, 0, BottomY)
	d.Text(PageFront, " TO \nQUIZ", ScreenW-QuizButtonW+16, ScreenH-QuizButtonH+6, 7, 0)

	world := NewWorld(src)
	bank := NewWordBank(d, e.sound, e.cfg.Store)
	wildcard := bank.Mark(world.Wildcard())

	scenes := e.cfg.Content(world)
	if len(scenes) == 0 {
		fatal("No scenes")
	}
	for _, sc := range scenes {
		world.Promote(sc)
		if e.cfg.Debug {
			debugCheckScene(sc)
		}
	}
	world.BindInputs(wildcard)

	graph := NewSceneGraph(d, src, e.alloc, e.sound, e.timer)
	quiz := NewQuiz(d, src, e.alloc, e.sound, world, bank, e.cfg.Store, e.cfg.Quiz)
	quiz.Debug = e.cfg.Debug
	quiz.Init(wildcard)

	s := NewSession(SessionParts{
		Display: d,
		Timer:   e.timer,
		Input:   e.cfg.Input,
		Alloc:   e.alloc,
		World:   world,
		Graph:   graph,
		Bank:    bank,
		Quiz:    quiz,
	})
	s.Debug = e.cfg.Debug
	return s, scenes[0]
}

// teardown stops audio, resets video and closes the assets, in that order.
func (e *Engine) teardown() {
	e.seq.Stop()
	e.sound.Reset()
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			debugf("audio close: %v", err)
		}
		e.backend = nil
	}

	e.display.SetPalette(0)
	e.display.SetActivePage(PageFront)

	if e.cfg.Debug {
		memoryReport(e.alloc)
	}
	if err := e.cfg.Assets.Close(); err != nil {
		debugf("assets close: %v", err)
	}
}

// FormatFatal renders err the way the game reports a fatal error.
func FormatFatal(err error) string {
	return fmt.Sprintf("FATAL ERROR: %v", err)
}
