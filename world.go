package dossier

import (
	"strings"

	"golang.org/x/text/cases"
)

// Arena capacities.
const (
	MaxViews   = 70
	MaxSprites = 40
	MaxClues   = 50
	MaxInputs  = 10
)

// ViewKind tells the scene graph how to treat a view.
type ViewKind uint8

const (
	ViewGeneric    ViewKind = iota
	ViewTransition          // hotspot that switches to another scene
	ViewInventory           // character dialog with portrait and items
	ViewItem                // inventory item, no hotspot strip
)

func (k ViewKind) String() string {
	switch k {
	case ViewGeneric:
		return "generic"
	case ViewTransition:
		return "transition"
	case ViewInventory:
		return "inventory"
	case ViewItem:
		return "item"
	}
	return "view?"
}

// ClueType is the semantic tag of a clue, which also picks its word colour.
type ClueType uint8

const (
	CluePerson ClueType = iota
	ClueVerb
	ClueNoun
	ClueWildcard
)

// clueColors is the pill background of each clue type.
var clueColors = [...]uint8{5, 6, 3, 7}

// Color returns the word pill colour of t.
func (t ClueType) Color() uint8 { return clueColors[t] }

// Popup is the drawable payload of a view: an image file or a styled text
// message, with clue regions layered on top.
type Popup struct {
	X, Y, W, H int
	Filename   string
	Message    string
	Style      Style

	clues *Clue
	data  Bitmap
}

// Clues returns the popup's clues, most recently added first.
func (p *Popup) Clues() []*Clue {
	var out []*Clue
	for c := p.clues; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Loaded reports whether the popup image is resident.
func (p *Popup) Loaded() bool { return p.data != nil }

// View is a node of the scene tree.
type View struct {
	Kind  ViewKind
	Popup Popup

	// Hotspot rectangle in the parent's popup space until promotion,
	// absolute screen space after it.
	HX, HY, HW, HH int

	Input    *InputBox
	ClueName string // clue bound to Input by World.BindInputs

	targets    *View
	next       *View
	sprites    *Sprite
	spriteY    int
	numTargets int
	promoted   bool
	index      int
}

// Targets returns the children in hit-test order: the most recently added
// child first.
func (v *View) Targets() []*View {
	var out []*View
	for t := v.targets; t != nil; t = t.next {
		out = append(out, t)
	}
	return out
}

// Destination returns the scene a transition leads to.
func (v *View) Destination() *View {
	if v.Kind != ViewTransition {
		return nil
	}
	return v.targets
}

// Sprites returns the attached sprites, most recently added first.
func (v *View) Sprites() []*Sprite {
	var out []*Sprite
	for s := v.sprites; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// Hotspot returns the hotspot rectangle.
func (v *View) Hotspot() Rect { return Rect{v.HX, v.HY, v.HW, v.HH} }

// overHotspot uses inclusive bounds on every edge.
func (v *View) overHotspot(x, y int) bool {
	return x >= v.HX && x <= v.HX+v.HW && y >= v.HY && y <= v.HY+v.HH
}

// Index returns the view's arena slot.
func (v *View) Index() int { return v.index }

// Sprite is a horizontal strip of equally sized animation frames, or a
// line of text when it has no file.
type Sprite struct {
	Filename string
	Text     string
	Frames   int
	W, H     int // frame size
	SX, SY   int
	Frame    int

	data Bitmap
	next *Sprite
}

// Animate advances a ping-pong animation of 2·Frames−2 steps.
func (s *Sprite) Animate() {
	if s.Frames > 1 {
		s.Frame++
		if s.Frame == s.Frames*2-2 {
			s.Frame = 0
		}
	}
}

// DrawFrame maps the animation step to the frame to draw, walking back
// down the strip after the last frame.
func (s *Sprite) DrawFrame() int {
	f := s.Frame
	if f >= s.Frames {
		f = s.Frames - 1 - (f - s.Frames + 1)
	}
	return f
}

// Loaded reports whether the sprite bitmap is resident.
func (s *Sprite) Loaded() bool { return s.data != nil }

// Clue is a named, typed clickable region.
type Clue struct {
	Text       string
	Type       ClueType
	X, Y, W, H int

	next  *Clue
	index int
}

// Rect returns the clue's region.
func (c *Clue) Rect() Rect { return Rect{c.X, c.Y, c.W, c.H} }

func (c *Clue) over(x, y int) bool {
	return x >= c.X && x <= c.X+c.W && y >= c.Y && y <= c.Y+c.H
}

// InputBox is a fill-in slot expecting one clue and holding the word the
// player put there. Correctness compares clue identity.
type InputBox struct {
	X, Y int
	Clue *Clue
	Word *Word
}

// Word is a discovered clue placed in the word bank.
type Word struct {
	Clue       *Clue
	X, Y, W, H int
}

// World owns every view, sprite, clue and scene input box of a session in
// fixed-capacity arenas. Running out of any arena is fatal.
type World struct {
	src  AssetSource
	fold cases.Caser

	views   [MaxViews]View
	sprites [MaxSprites]Sprite
	clues   [MaxClues]Clue
	inputs  [MaxInputs]InputBox

	numViews, numSprites, numClues, numInputs int
	keys                                      [MaxClues]string

	wildcard *Clue
}

// NewWorld creates an empty world reading bitmap dimensions from src.
func NewWorld(src AssetSource) *World {
	return &World{src: src, fold: cases.Fold()}
}

func (w *World) foldKey(s string) string { return w.fold.String(s) }

func (w *World) newView(kind ViewKind) *View {
	if w.numViews >= MaxViews {
		fatal("Insufficient views")
	}
	v := &w.views[w.numViews]
	v.Kind = kind
	v.index = w.numViews
	w.numViews++
	return v
}

func (w *World) newSprite(filename string, frames int) *Sprite {
	if w.numSprites >= MaxSprites {
		fatal("Insufficient sprites")
	}
	s := &w.sprites[w.numSprites]
	w.numSprites++
	s.Filename = filename
	s.Frames = frames
	if filename != "" {
		fw, fh := w.src.Dimensions(filename)
		assert(frames > 0 && fw%(8*frames) == 0)
		s.W, s.H = fw/frames, fh
	}
	return s
}

// NewClue registers a clue named text. Names are unique ignoring case; an
// empty name marks an image clue and is exempt.
func (w *World) NewClue(text string) *Clue {
	if w.numClues >= MaxClues {
		fatal("Insufficient clues")
	}
	key := ""
	if text != "" {
		key = w.foldKey(text)
		for i := 0; i < w.numClues; i++ {
			if w.keys[i] == key {
				fatalf("Duplicate clue '%s'", text)
			}
		}
	}
	c := &w.clues[w.numClues]
	c.Text = text
	c.index = w.numClues
	w.keys[w.numClues] = key
	w.numClues++
	return c
}

// Clues returns every registered clue in registration order.
func (w *World) Clues() []*Clue {
	out := make([]*Clue, w.numClues)
	for i := range out {
		out[i] = &w.clues[i]
	}
	return out
}

// Views returns every view in creation order.
func (w *World) Views() []*View {
	out := make([]*View, w.numViews)
	for i := range out {
		out[i] = &w.views[i]
	}
	return out
}

// Wildcard returns the wildcard clue, creating it on first use.
func (w *World) Wildcard() *Clue {
	if w.wildcard == nil {
		w.wildcard = w.NewClue(WildcardText)
		w.wildcard.Type = ClueWildcard
	}
	return w.wildcard
}

// NewImageView creates a view showing an image centred in the play area.
// Without a file it gets a placeholder rectangle.
func (w *World) NewImageView(filename string) *View {
	v := w.newView(ViewGeneric)
	p := &v.Popup
	p.Filename = filename
	if filename == "" {
		p.X, p.Y, p.W, p.H = 240, 50, 160, 100
		return v
	}
	p.W, p.H = w.src.Dimensions(filename)
	assert(p.W%8 == 0)
	p.X = ((ScreenW - p.W) / 2) &^ 7
	p.Y = (PlayH - p.H) / 2
	return v
}

// NewFingerprintView creates a borderless image view.
func (w *World) NewFingerprintView(filename string) *View {
	v := w.NewImageView(filename)
	v.Popup.Style = StyleBorderless
	return v
}

// NewTextView creates a text popup sized to its longest line and line
// count, centred in the play area.
func (w *World) NewTextView(message string, style Style) *View {
	v := w.newView(ViewGeneric)
	p := &v.Popup
	p.Message = message
	p.Style = style

	maxW, width, lines := 0, 0, 1
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			maxW = max(maxW, width)
			width = 0
			lines++
			continue
		}
		width++
	}
	maxW = max(maxW, width)
	if maxW%2 == 1 {
		maxW++
	}
	p.W = maxW*8 + 32
	p.H = (lines + 2) * LineHeight
	p.X = (ScreenW/2 - p.W/2) &^ 7
	p.Y = PlayH/2 - p.H/2
	return v
}

// NewInventoryView creates a character popup. portrait is a three-frame
// sprite file. inventory is either a one-frame sprite file (any name with
// a backslash) or a line of text. input, when set, names the clue the
// popup's input box expects; the binding happens in BindInputs.
func (w *World) NewInventoryView(inventory, portrait, dialog, input string) *View {
	v := w.newView(ViewInventory)
	p := &v.Popup
	p.W, p.H = 432, 90
	p.X = (ScreenW - p.W) / 2
	p.Y = (PlayH - p.H) / 2
	p.Message = dialog
	if portrait != "" {
		w.AddSprite(v, 16, 10, portrait, 3)
	}
	if inventory != "" {
		if strings.Contains(inventory, `\`) {
			w.AddSprite(v, InvX, InvY, inventory, 1)
		} else {
			w.AddTextSprite(v, InvX, InvY+8, inventory)
		}
	}
	if input != "" {
		if w.numInputs >= MaxInputs {
			fatal("Insufficient inputs")
		}
		in := &w.inputs[w.numInputs]
		w.numInputs++
		in.X, in.Y = 16, 73
		v.Input = in
		v.ClueName = input
	}
	return v
}

// AddView attaches child to parent with a hotspot at (x, y) in the
// parent's popup space. Children are prepended.
func (w *World) AddView(parent *View, x, y int, child *View) *View {
	child.HX = x &^ 7
	child.HY = y
	child.HW = HotspotW
	child.HH = HotspotH
	child.next = parent.targets
	parent.targets = child
	return child
}

// AddText creates a text view and attaches it at (x, y).
func (w *World) AddText(parent *View, x, y int, message string, style Style) *View {
	return w.AddView(parent, x, y, w.NewTextView(message, style))
}

// AddInventory creates an inventory view and attaches it at (x, y).
func (w *World) AddInventory(parent *View, x, y int, inventory, portrait, dialog, input string) *View {
	return w.AddView(parent, x, y, w.NewInventoryView(inventory, portrait, dialog, input))
}

// AddTextItem attaches a text view as inventory item slot no.
func (w *World) AddTextItem(parent *View, no int, message string, style Style) *View {
	return w.AddViewItem(parent, no, w.NewTextView(message, style))
}

// AddViewItem attaches child as inventory item slot no.
func (w *World) AddViewItem(parent *View, no int, child *View) *View {
	w.AddView(parent, InvX+no*InvS, InvY, child)
	child.Kind = ViewItem
	child.HW, child.HH = InvW, InvH
	return child
}

// AddTransition attaches a hotspot on from that switches to scene to.
func (w *World) AddTransition(from *View, x, y int, to *View) *View {
	t := w.newView(ViewTransition)
	t.targets = to
	w.AddView(from, x, y, t)
	t.HW, t.HH = HotspotW, TransitionH
	return t
}

// AddSprite attaches a sprite strip of frames frames at (x, y).
func (w *World) AddSprite(v *View, x, y int, filename string, frames int) *Sprite {
	s := w.newSprite(filename, frames)
	s.SX, s.SY = x, y
	s.next = v.sprites
	v.sprites = s
	return s
}

// AddTextSprite attaches a line of text drawn like a sprite.
func (w *World) AddTextSprite(v *View, x, y int, text string) *Sprite {
	s := w.newSprite("", 0)
	s.SX, s.SY = x, y
	s.Text = text
	s.next = v.sprites
	v.sprites = s
	return s
}

// AddClueImage attaches an unnamed clue region to v's popup.
func (w *World) AddClueImage(v *View, x, y, cw, ch int) *Clue {
	c := w.NewClue("")
	c.X, c.Y, c.W, c.H = x, y, cw, ch
	c.next = v.Popup.clues
	v.Popup.clues = c
	return c
}

// AddClue marks the first case-insensitive occurrence of text in v's
// message as a clue. The clue is registered under word when word is set.
// Its region starts at (16 + col·8, 8 + line·LineHeight) within the popup.
func (w *World) AddClue(v *View, text, word string, typ ClueType) *Clue {
	name := word
	if name == "" {
		name = text
	}
	msg := v.Popup.Message
	pos := indexFold(msg, text)
	if msg == "" || pos < 0 {
		fatalf("Clue %s not found in message!", text)
	}
	c := w.NewClue(name)
	c.Type = typ
	c.W = len(text) * 8
	c.H = ClueHeight
	for i := 0; i < pos; i++ {
		if msg[i] == '\n' {
			c.X = 0
			c.Y += LineHeight
		} else {
			c.X += 8
		}
	}
	c.X += 16
	c.Y += 8
	c.next = v.Popup.clues
	v.Popup.clues = c
	return c
}

// indexFold is a byte-wise, ASCII case-insensitive strings.Index.
func indexFold(s, sub string) int {
	if sub == "" {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// FindClue looks a clue up by name, ignoring case. An exact pass runs
// first; a name ending in 's' also matches any clue it prefixes. The
// partial pass then accepts any clue starting with the name, less a
// trailing 's'. Within a pass the earliest registered clue wins, so
// ambiguous partial names depend on registration order.
func (w *World) FindClue(text string) *Clue {
	if text == "" {
		return nil
	}
	key := w.foldKey(text)
	plural := strings.HasSuffix(text, "s")
	stem := key
	if plural {
		stem = w.foldKey(text[:len(text)-1])
	}
	for i := 0; i < w.numClues; i++ {
		k := w.keys[i]
		if k == "" {
			continue
		}
		if k == key || (plural && strings.HasPrefix(k, key)) {
			return &w.clues[i]
		}
	}
	for i := 0; i < w.numClues; i++ {
		k := w.keys[i]
		if k != "" && strings.HasPrefix(k, stem) {
			return &w.clues[i]
		}
	}
	return nil
}

// BindInputs resolves every view's ClueName to its input box and seeds the
// box with the wildcard word. A name that matches no clue leaves the box
// unbound; it then shows the name as a plain label.
func (w *World) BindInputs(wildcard *Word) {
	for i := 0; i < w.numViews; i++ {
		v := &w.views[i]
		if v.ClueName == "" || v.Input == nil {
			continue
		}
		v.Input.Clue = w.FindClue(v.ClueName)
		v.Input.Word = wildcard
	}
}

// InputsCheck grades the scene input boxes: StatusIncomplete while any
// bound box still holds the wildcard, StatusIncorrect if any holds a wrong
// word, StatusCorrect otherwise.
func (w *World) InputsCheck() Status {
	for i := 0; i < w.numInputs; i++ {
		in := &w.inputs[i]
		if in.Clue != nil && in.Word != nil && in.Word.Clue == w.wildcard {
			return StatusIncomplete
		}
	}
	for i := 0; i < w.numInputs; i++ {
		in := &w.inputs[i]
		if in.Clue != nil && in.Word != nil && in.Word.Clue != in.Clue {
			return StatusIncorrect
		}
	}
	return StatusCorrect
}

// Inputs returns the scene input boxes in creation order.
func (w *World) Inputs() []*InputBox {
	out := make([]*InputBox, w.numInputs)
	for i := range out {
		out[i] = &w.inputs[i]
	}
	return out
}

// Promote converts a scene's authored coordinates to screen space. Each
// node adds its popup origin to its input box, its clues (plus the text
// margin on inventory views), its sprites and every child's hotspot, then
// recurses into the children. Transitions are not entered. A scene can be
// promoted once.
func (w *World) Promote(scene *View) {
	if scene.promoted {
		fatal("Scene promoted twice")
	}
	promote(scene)
}

func promote(v *View) {
	if v.Kind == ViewTransition {
		return
	}
	v.promoted = true
	px, py := v.Popup.X, v.Popup.Y
	if v.Input != nil {
		v.Input.X += px
		v.Input.Y += py
	}
	for c := v.Popup.clues; c != nil; c = c.next {
		c.X += px
		c.Y += py
		if v.Kind == ViewInventory {
			c.X += InvMargin
		}
	}
	for s := v.sprites; s != nil; s = s.next {
		s.SX += px
		s.SY += py
	}
	for t := v.targets; t != nil; t = t.next {
		t.HX += px
		t.HY += py
		promote(t)
	}
}
