package dossier

const (
	// hotspotBase is the first strip row on the sprite page; the rows
	// above hold the atlas, including the outline frames at row 32.
	hotspotBase   = 40
	hotspotAtlasY = 32
	hotspotFrames = 3
	hotspotLimit  = PlaneSize/BytesPerLine - HotspotH
)

// HotspotCache builds the animated hotspot strip on the sprite page. Each
// Push captures a 16×8 patch of the front page three times and stamps the
// atlas outline over each copy through a different shimmer mask.
type HotspotCache struct {
	d *Display
	y int
}

// NewHotspotCache creates an empty strip.
func NewHotspotCache(d *Display) *HotspotCache {
	return &HotspotCache{d: d, y: hotspotBase}
}

// Push generates the frames for the front-page patch at (sx, sy) and
// returns the strip row holding them.
func (h *HotspotCache) Push(sx, sy int) int {
	if h.y > hotspotLimit {
		fatal("Hotspot strip full")
	}
	y := h.y
	for i := 0; i < hotspotFrames; i++ {
		h.d.CopyRect(PageFront, PageSprites, sx, sy, HotspotW, HotspotH, i*HotspotW, y)
		h.d.MaskedBlit(PageSprites, PageSprites, i*HotspotW, hotspotAtlasY, HotspotW, HotspotH, i*HotspotW, y, i)
	}
	h.y += HotspotH
	return y
}

// Pop releases the rows of n pushes.
func (h *HotspotCache) Pop(n int) {
	h.y -= n * HotspotH
	if h.y < hotspotBase {
		fatalf("Popped empty sprite attempting %d pops!", n)
	}
}

// Clear empties the strip.
func (h *HotspotCache) Clear() { h.y = hotspotBase }

// Row returns the next free strip row.
func (h *HotspotCache) Row() int { return h.y }

// Draw copies frame of strip row to (dx, dy) on the front page.
func (h *HotspotCache) Draw(dx, dy, row, frame int) {
	h.d.CopyRect(PageSprites, PageFront, HotspotW*frame, row, HotspotW, HotspotH, dx, dy)
}
