package dossier

import (
	"sync"
	"time"
)

// vsyncTimeout bounds how long VSync waits for the host to present a frame,
// so a minimised window cannot stall the game loop forever.
const vsyncTimeout = 100 * time.Millisecond

// Display is the software model of the planar display adapter: four pages,
// the active page pointer and the 16-entry palette. Every drawing operation
// takes the display lock, so the host can present the active page from its
// own goroutine while the game loop draws.
//
// Drawing never changes which page is visible. Only SetActivePage does.
type Display struct {
	mu      sync.Mutex
	pages   [numPages]*Page
	active  PageID
	palette [17]uint8
	font    *Font

	frames chan struct{} // nil when headless
}

// NewDisplay creates a display with blank pages, palette 0 and the given
// font. A nil font selects DefaultFont.
func NewDisplay(font *Font) *Display {
	if font == nil {
		font = DefaultFont()
	}
	d := &Display{font: font}
	for i := range d.pages {
		d.pages[i] = newPage()
	}
	d.palette = palettes[0]
	return d
}

// SetFont replaces the glyph set used by Text.
func (d *Display) SetFont(f *Font) {
	d.mu.Lock()
	d.font = f
	d.mu.Unlock()
}

// Page returns the backing store of page id. Callers outside the game loop
// must not write through it.
func (d *Display) Page(id PageID) *Page { return d.pages[id] }

// SetActivePage flips the visible page.
func (d *Display) SetActivePage(p PageID) {
	d.mu.Lock()
	d.active = p
	d.mu.Unlock()
}

// ActivePage returns the visible page.
func (d *Display) ActivePage() PageID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// AttachHost switches VSync from a no-op to waiting for Present.
func (d *Display) AttachHost() {
	d.mu.Lock()
	if d.frames == nil {
		d.frames = make(chan struct{}, 1)
	}
	d.mu.Unlock()
}

// VSync waits for the host to present the next frame. Without a host it
// returns immediately.
func (d *Display) VSync() {
	d.mu.Lock()
	ch := d.frames
	d.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case <-ch:
	case <-time.After(vsyncTimeout):
	}
}

// Present converts the active page through the current palette into
// ScreenW×ScreenH RGBA pixels and releases a pending VSync.
func (d *Display) Present(dst []byte) {
	d.mu.Lock()
	d.render(dst)
	ch := d.frames
	d.mu.Unlock()
	if ch != nil {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// render writes the active page as opaque RGBA. Callers hold d.mu.
func (d *Display) render(dst []byte) {
	var lut [16][3]uint8
	for i := range lut {
		lut[i] = rgbi(d.palette[i])
	}
	pg := d.pages[d.active]
	for y := 0; y < ScreenH; y++ {
		for bx := 0; bx < BytesPerLine; bx++ {
			ofs := y*BytesPerLine + bx
			p0, p1, p2, p3 := pg.planes[0][ofs], pg.planes[1][ofs], pg.planes[2][ofs], pg.planes[3][ofs]
			for bit := 0; bit < 8; bit++ {
				sh := 7 - bit
				c := (p0>>sh)&1 | ((p1>>sh)&1)<<1 | ((p2>>sh)&1)<<2 | ((p3>>sh)&1)<<3
				o := (y*ScreenW + bx*8 + bit) * 4
				rgb := lut[c]
				dst[o] = rgb[0]
				dst[o+1] = rgb[1]
				dst[o+2] = rgb[2]
				dst[o+3] = 0xFF
			}
		}
	}
}

// Pixel returns the colour index at (x, y) of page id.
func (d *Display) Pixel(id PageID, x, y int) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pages[id].Pixel(x, y)
}

// LoadImage loads the named bitmap through a temporary buffer, blits it
// whole to (x, y) of page and frees the buffer.
func (d *Display) LoadImage(src AssetSource, alloc *Allocator, name string, page PageID, x, y int) {
	w, h := src.Dimensions(name)
	size := ImageSize(w, h)
	buf := alloc.Alloc(size)
	src.Load(name, size, buf)
	d.PutBitmap(Bitmap(buf), page, x, y)
	alloc.Free(buf)
}
