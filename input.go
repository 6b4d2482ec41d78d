package dossier

import "sync"

// Cursor selects the pointer shape.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorHotspot
	CursorMove
	CursorNote
)

// KeyEscape is the key code that quits the game.
const KeyEscape rune = 27

// Input is polled once per game frame. Pointer, Clicked and Key report the
// state captured by the last Poll.
type Input interface {
	Poll()
	// Pointer returns the pointer position in screen pixels.
	Pointer() (x, y int)
	// Clicked reports a left button press since the previous poll.
	Clicked() bool
	// Key returns the last key pressed since the previous poll, or 0.
	Key() rune
	SetCursor(c Cursor)
}

// HostInput is the Input fed by a host window. The host calls Feed from its
// own update loop; the game loop reads it through Poll. Presses and keys
// are latched so that none is lost when the two loops run at different
// rates.
type HostInput struct {
	mu      sync.Mutex
	x, y    int
	presses int
	keys    []rune
	cursor  Cursor

	px, py  int
	clicked bool
	key     rune
}

// NewHostInput creates an idle input.
func NewHostInput() *HostInput { return &HostInput{} }

// Feed records the pointer position, whether the left button was just
// pressed, and keys typed since the previous Feed.
func (h *HostInput) Feed(x, y int, pressed bool, keys []rune) {
	h.mu.Lock()
	h.x, h.y = x, y
	if pressed {
		h.presses++
	}
	h.keys = append(h.keys, keys...)
	h.mu.Unlock()
}

func (h *HostInput) Poll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.px, h.py = h.x, h.y
	h.clicked = h.presses > 0
	if h.clicked {
		h.presses--
	}
	h.key = 0
	if len(h.keys) > 0 {
		h.key = h.keys[0]
		h.keys = h.keys[1:]
	}
}

func (h *HostInput) Pointer() (int, int) { return h.px, h.py }

func (h *HostInput) Clicked() bool { return h.clicked }

func (h *HostInput) Key() rune { return h.key }

func (h *HostInput) SetCursor(c Cursor) {
	h.mu.Lock()
	h.cursor = c
	h.mu.Unlock()
}

// Cursor returns the shape the game asked for.
func (h *HostInput) Cursor() Cursor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}
