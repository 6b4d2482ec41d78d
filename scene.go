package dossier

// Fixed asset names used by the scene graph and the engine.
const (
	SpritesAsset = `GAME\SPRITES.RMG`
	QuizAsset    = `GAME\QUIZ.RMG`
	BottomAsset  = `GAME\BOTTOM.RMG`

	// BottomY is where the word bank strip image goes on both pages.
	BottomY = 169
)

const maxViewDepth = 3

// SceneGraph owns the scene currently on screen and the stack of popups
// open over it. Pixel data of the current scene is fully resident; every
// other scene holds none.
type SceneGraph struct {
	d        *Display
	src      AssetSource
	alloc    *Allocator
	sound    *Sound
	waiter   Waiter
	hotspots *HotspotCache
	scratch  *ScratchStore

	scene *View
	view  *View
	stack [maxViewDepth]*View
	depth int

	// Outline is the animated hotspot marker; only its frame is used.
	Outline Sprite
}

// NewSceneGraph wires a scene graph to its collaborators. sound may be nil.
func NewSceneGraph(d *Display, src AssetSource, alloc *Allocator, sound *Sound, w Waiter) *SceneGraph {
	return &SceneGraph{
		d:        d,
		src:      src,
		alloc:    alloc,
		sound:    sound,
		waiter:   w,
		hotspots: NewHotspotCache(d),
		scratch:  NewScratchStore(d),
		Outline:  Sprite{Filename: SpritesAsset, SX: 0, SY: hotspotAtlasY, W: HotspotW, H: HotspotH, Frames: hotspotFrames},
	}
}

// Scene returns the current scene root.
func (g *SceneGraph) Scene() *View { return g.scene }

// View returns the view on top of the stack.
func (g *SceneGraph) View() *View { return g.view }

// Depth returns the number of pushed views.
func (g *SceneGraph) Depth() int { return g.depth }

// Hotspots returns the hotspot strip allocator.
func (g *SceneGraph) Hotspots() *HotspotCache { return g.hotspots }

// Scratch returns the popup save store.
func (g *SceneGraph) Scratch() *ScratchStore { return g.scratch }

func (g *SceneGraph) playSfx(id SfxID) {
	if g.sound != nil {
		g.sound.PlaySfx(id)
	}
}

// LoadScene tears the current scene down and makes v current: the
// background goes to the front page, every reachable popup and sprite
// bitmap is loaded (transitions are not followed) and hotspot strips are
// generated for v's direct children.
func (g *SceneGraph) LoadScene(v *View) {
	if g.scene != nil {
		g.hotspots.Clear()
		g.unload(g.scene)
		g.scene = nil
	}
	g.d.LoadImage(g.src, g.alloc, v.Popup.Filename, PageFront, 0, 0)
	g.load(v, 0)
	g.generateStrips(v)
	g.scene = v
	g.view = v
}

// SwitchScene moves to another scene with a fade. Views must all be
// popped first.
func (g *SceneGraph) SwitchScene(v *View) {
	if g.depth > 0 {
		fatal("Switching scene with stack")
	}
	g.playSfx(SfxMove)
	g.d.FadeOut(g.waiter)
	g.LoadScene(v)
	g.d.FadeIn(g.waiter)
}

// ShowView draws v's popup over the front page, saving what was there,
// and generates strips for v's own children.
func (g *SceneGraph) ShowView(v *View) {
	g.renderPopup(v)
	g.generateStrips(v)
}

// PushView makes v the current view.
func (g *SceneGraph) PushView(v *View) {
	if g.depth == maxViewDepth {
		fatal("View stack overflow")
	}
	g.stack[g.depth] = g.view
	g.depth++
	g.view = v
}

// PopView closes the current view, releasing its strip rows and restoring
// the pixels under its popup. It reports false when nothing was pushed.
func (g *SceneGraph) PopView() bool {
	if g.depth == 0 {
		return false
	}
	g.hotspots.Pop(g.view.numTargets)
	g.depth--
	g.view = g.stack[g.depth]
	g.stack[g.depth] = nil
	g.scratch.Pop()
	return true
}

// Loaded reports whether v's own popup image and sprites are resident.
// Views without an image count as loaded when their sprites are.
func (g *SceneGraph) Loaded(v *View) bool {
	if v.Popup.Filename != "" && v != g.scene && v.Popup.data == nil {
		return false
	}
	for s := v.sprites; s != nil; s = s.next {
		if s.Frames > 0 && s.data == nil {
			return false
		}
	}
	return true
}

func (g *SceneGraph) generateStrips(v *View) {
	v.numTargets = 0
	for t := v.targets; t != nil; t = t.next {
		if t.Kind == ViewItem {
			continue
		}
		t.spriteY = g.hotspots.Push(t.HX, t.HY)
		v.numTargets++
	}
}

func (g *SceneGraph) load(v *View, level int) {
	if level > 0 && v.Popup.Filename != "" {
		size := ImageSize(v.Popup.W, v.Popup.H)
		v.Popup.data = Bitmap(g.alloc.Alloc(size))
		g.src.Load(v.Popup.Filename, size, v.Popup.data)
	}
	for s := v.sprites; s != nil; s = s.next {
		if s.Frames == 0 {
			continue
		}
		size := ImageSize(s.W*s.Frames, s.H)
		s.data = Bitmap(g.alloc.Alloc(size))
		g.src.Load(s.Filename, size, s.data)
	}
	for t := v.targets; t != nil; t = t.next {
		if t.Kind != ViewTransition {
			g.load(t, level+1)
		}
	}
}

func (g *SceneGraph) unload(v *View) {
	if v.Popup.data != nil {
		g.alloc.Free(v.Popup.data)
		v.Popup.data = nil
	}
	for s := v.sprites; s != nil; s = s.next {
		g.alloc.Free(s.data)
		s.data = nil
	}
	for t := v.targets; t != nil; t = t.next {
		if t.Kind != ViewTransition {
			g.unload(t)
		}
	}
}

// HitTarget returns the first child of the current view whose hotspot
// contains (x, y), testing the most recently added child first.
func (g *SceneGraph) HitTarget(x, y int) *View {
	for t := g.view.targets; t != nil; t = t.next {
		if t.overHotspot(x, y) {
			return t
		}
	}
	return nil
}

// HitClue returns the clue of the current view's popup under (x, y).
func (g *SceneGraph) HitClue(x, y int) *Clue {
	for c := g.view.Popup.clues; c != nil; c = c.next {
		if c.over(x, y) {
			return c
		}
	}
	return nil
}

// DrawSprite draws the sprite's current frame, or its text.
func (g *SceneGraph) DrawSprite(s *Sprite) {
	if s.data == nil {
		if s.Text == "" {
			fatal("Sprite not loaded!")
		}
		g.d.Text(PageFront, s.Text, s.SX, s.SY, invFG, popupBG)
		return
	}
	g.d.BlitBitmap(s.data, PageFront, s.W*s.DrawFrame(), 0, s.W, s.H, s.SX, s.SY)
}

// DrawSprites advances and draws every sprite of the current view.
func (g *SceneGraph) DrawSprites() {
	for s := g.view.sprites; s != nil; s = s.next {
		s.Animate()
		g.DrawSprite(s)
	}
}

// DrawHotspots draws the outline frame over each clickable child of the
// current view.
func (g *SceneGraph) DrawHotspots() {
	frame := g.Outline.DrawFrame()
	for t := g.view.targets; t != nil; t = t.next {
		if t.Kind == ViewTransition || t.Kind == ViewItem {
			continue
		}
		g.hotspots.Draw(t.HX, t.HY, t.spriteY, frame)
	}
}
