package dossier

// syntheticEvent is one queued input event. A non-zero key makes it a key
// press; otherwise it moves the pointer and sets the button state.
type syntheticEvent struct {
	x, y    int
	pressed bool
	key     rune
}

// ScriptedInput is an Input driven by queued synthetic events, one event
// per Poll. It backs headless runs, test scripts and unit tests.
type ScriptedInput struct {
	queue   []syntheticEvent
	x, y    int
	down    bool
	clicked bool
	key     rune
	cursor  Cursor
}

// NewScriptedInput creates an input with an empty queue.
func NewScriptedInput() *ScriptedInput { return &ScriptedInput{} }

// InjectPress queues a left button press at (x, y).
func (s *ScriptedInput) InjectPress(x, y int) {
	s.queue = append(s.queue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move to (x, y) keeping the button state.
func (s *ScriptedInput) InjectMove(x, y int) {
	pressed := s.down
	if n := len(s.queue); n > 0 {
		pressed = s.queue[n-1].pressed
	}
	s.queue = append(s.queue, syntheticEvent{x: x, y: y, pressed: pressed})
}

// InjectRelease queues a left button release at (x, y).
func (s *ScriptedInput) InjectRelease(x, y int) {
	s.queue = append(s.queue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release. Consumes two polls.
func (s *ScriptedInput) InjectClick(x, y int) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectKey queues a key press.
func (s *ScriptedInput) InjectKey(k rune) {
	s.queue = append(s.queue, syntheticEvent{key: k})
}

// Pending returns the number of queued events.
func (s *ScriptedInput) Pending() int { return len(s.queue) }

func (s *ScriptedInput) Poll() {
	s.clicked = false
	s.key = 0
	if len(s.queue) == 0 {
		return
	}
	evt := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue = s.queue[:len(s.queue)-1]

	if evt.key != 0 {
		s.key = evt.key
		return
	}
	s.x, s.y = evt.x, evt.y
	if evt.pressed && !s.down {
		s.clicked = true
	}
	s.down = evt.pressed
}

func (s *ScriptedInput) Pointer() (int, int) { return s.x, s.y }

func (s *ScriptedInput) Clicked() bool { return s.clicked }

func (s *ScriptedInput) Key() rune { return s.key }

func (s *ScriptedInput) SetCursor(c Cursor) { s.cursor = c }

// Cursor returns the last shape the game asked for.
func (s *ScriptedInput) Cursor() Cursor { return s.cursor }
