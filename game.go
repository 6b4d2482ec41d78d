package dossier

// overQuizButton reports whether (x, y) is on the page toggle button in the
// bottom right corner.
func overQuizButton(x, y int) bool {
	return x >= ScreenW-QuizButtonW && y >= ScreenH-QuizButtonH
}

// Session is the state of one play-through: the content world, the scene
// on screen, the word bank and the quiz. It is created once the title
// screen is dismissed and driven one frame at a time by Frame.
type Session struct {
	d     *Display
	timer *Timer
	in    Input
	alloc *Allocator

	world *World
	graph *SceneGraph
	bank  *WordBank
	quiz  *Quiz

	clock       FrameClock
	inputActive bool
	quitting    bool

	// Debug enables the page keys and the memory overlay.
	Debug bool
}

// SessionParts groups the collaborators of a Session.
type SessionParts struct {
	Display *Display
	Timer   *Timer
	Input   Input
	Alloc   *Allocator
	World   *World
	Graph   *SceneGraph
	Bank    *WordBank
	Quiz    *Quiz
}

// NewSession wires a session.
func NewSession(p SessionParts) *Session {
	return &Session{
		d:     p.Display,
		timer: p.Timer,
		in:    p.Input,
		alloc: p.Alloc,
		world: p.World,
		graph: p.Graph,
		bank:  p.Bank,
		quiz:  p.Quiz,
	}
}

func (s *Session) World() *World      { return s.world }
func (s *Session) Graph() *SceneGraph { return s.graph }
func (s *Session) Bank() *WordBank    { return s.bank }
func (s *Session) Quiz() *Quiz        { return s.quiz }
func (s *Session) Quitting() bool     { return s.quitting }
func (s *Session) InputActive() bool  { return s.inputActive }

// Quit ends the main loop after the current frame.
func (s *Session) Quit() { s.quitting = true }

func (s *Session) playSfx(id SfxID) { s.graph.playSfx(id) }

func (s *Session) clicked() (bool, int, int) {
	x, y := s.in.Pointer()
	return s.in.Clicked(), x, y
}

// Frame polls input and runs one frame of whichever page is showing.
func (s *Session) Frame() {
	s.clock.Update(s.timer)
	s.in.Poll()
	s.checkKeyboard()
	s.bank.Update()

	if s.clickedQuiz() {
		return
	}
	if s.quiz.InQuiz() {
		s.quiz.Frame(s.in)
	} else {
		s.gameFrame()
	}
}

func (s *Session) checkKeyboard() {
	switch s.in.Key() {
	case KeyEscape:
		s.quitting = true
	case 's':
		if s.Debug {
			s.d.SetActivePage(PageSprites)
		}
	case 'z':
		if s.Debug {
			s.d.SetActivePage(PageFront)
		}
	}
}

func (s *Session) clickedQuiz() bool {
	click, x, y := s.clicked()
	if !click || !overQuizButton(x, y) {
		return false
	}
	if s.quiz.InQuiz() {
		s.quiz.Exit()
	} else {
		s.quiz.Enter()
	}
	return true
}

func (s *Session) gameFrame() {
	s.updateCursor()
	s.d.VSync()

	if s.clock.HalfSecondPassed {
		s.graph.Outline.Animate()
		s.graph.DrawSprites()
		s.graph.DrawHotspots()
		if s.Debug {
			s.DrawDebug()
		}
	}

	click, x, y := s.clicked()
	if !click {
		return
	}
	switch {
	case s.clickedClue(x, y):
	case s.clickedHotspot(x, y):
	case s.clickedWord(x, y):
	case s.clickedInput(x, y):
	default:
		s.graph.PopView()
	}
}

func (s *Session) sceneInput() *InputBox {
	return s.graph.View().Input
}

func (s *Session) updateCursor() {
	x, y := s.in.Pointer()
	c := CursorDefault
	if overQuizButton(x, y) {
		c = CursorNote
	} else {
		if !s.inputActive && s.graph.HitClue(x, y) != nil {
			c = CursorNote
		}
		if c == CursorDefault {
			if t := s.graph.HitTarget(x, y); t != nil {
				if t.Kind == ViewTransition {
					c = CursorMove
				} else {
					c = CursorHotspot
				}
			}
		}
		if in := s.sceneInput(); in != nil && in.Clue != nil && !s.quiz.Completed() {
			if in.over(x, y) {
				c = CursorNote
			}
			if s.inputActive && s.bank.WordAt(x, y) != nil {
				c = CursorNote
			}
		}
	}
	s.in.SetCursor(c)
}

// drawInputs draws the current view's input box, or its label when the box
// expects no clue.
func (s *Session) drawInputs() {
	in := s.sceneInput()
	if in == nil {
		return
	}
	if in.Clue != nil {
		s.d.DrawInput(in, PageFront, s.inputActive)
	} else {
		s.d.Text(PageFront, s.graph.View().ClueName, in.X, in.Y, 15, 0)
	}
}

func (s *Session) clickedClue(x, y int) bool {
	if s.inputActive {
		return false
	}
	c := s.graph.HitClue(x, y)
	if c == nil {
		return false
	}
	s.bank.Mark(c)
	return true
}

func (s *Session) clickedHotspot(x, y int) bool {
	t := s.graph.HitTarget(x, y)
	if t == nil {
		return false
	}
	if t.Kind == ViewTransition {
		s.graph.SwitchScene(t.Destination())
		s.inputActive = false
		s.graph.DrawSprites()
		s.graph.DrawHotspots()
		return true
	}

	s.playSfx(SfxLook)
	if s.inputActive {
		s.inputActive = false
		if in := s.sceneInput(); in != nil {
			s.d.DrawInput(in, PageFront, false)
		}
	}
	s.graph.PushView(t)
	s.graph.ShowView(t)
	s.drawInputs()
	s.graph.DrawSprites()
	s.graph.DrawHotspots()
	return true
}

func (s *Session) clickedWord(x, y int) bool {
	in := s.sceneInput()
	if !s.inputActive || in == nil || s.quiz.Completed() {
		return false
	}
	w := s.bank.WordAt(x, y)
	if w == nil {
		return false
	}
	in.Word = w
	s.inputActive = false
	s.playSfx(SfxDrop)
	s.d.DrawInput(in, PageFront, false)
	return true
}

func (s *Session) clickedInput(x, y int) bool {
	in := s.sceneInput()
	active := in != nil && in.Clue != nil && in.over(x, y) && !s.quiz.Completed()
	if active == s.inputActive {
		return false
	}
	s.inputActive = active
	if in != nil {
		s.d.DrawInput(in, PageFront, active)
	}
	s.playSfx(SfxDrop)
	return true
}
