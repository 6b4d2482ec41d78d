package dossier

// Display geometry. The game targets a single fixed mode: 640×200 pixels,
// four bit planes, eight pixels per byte.
const (
	ScreenW      = 640
	ScreenH      = 200
	BytesPerLine = ScreenW / 8

	// PlaneSize is the byte size of one plane of a page. Pages are taller
	// than the visible 200 lines so that off-screen pages can hold sprite
	// strips and linear save areas.
	PlaneSize = 65536

	// PlayH is the height of the play area above the word bank.
	PlayH = 170
)

// Layout constants shared by the renderer and the view model.
const (
	LineHeight = 10
	ClueHeight = 10
	GlyphRows  = 9

	// Inventory popup geometry.
	InvMargin = 96
	InvX      = 176
	InvY      = 56
	InvS      = 40
	InvW      = 32
	InvH      = 24

	// Hotspot rectangles of ordinary views and scene transitions.
	HotspotW    = 16
	HotspotH    = 8
	TransitionH = 14

	// Quiz toggle button in the bottom right corner of both pages.
	QuizButtonW = 64
	QuizButtonH = 30
)

// Popup colours.
const (
	popupFG      = 0
	popupBG      = 15
	popupEG      = 8
	popupHandFG  = 1
	popupHandBG  = 7
	popupHandEG  = 1
	popupPrintFG = 0
	popupPrintBG = 7
	popupPrintEG = 8
	invFG        = 14
	invBG        = 0
	invEG        = 6
	underline    = 4
)

// PageID selects one of the four display pages.
type PageID uint8

const (
	PageFront   PageID = iota // visible game page
	PageQuiz                  // full-screen quiz page
	PageSprites               // sprite atlas and hotspot strip
	PageScratch               // popup save/restore store
	numPages
)

// String returns the page name for diagnostics.
func (p PageID) String() string {
	switch p {
	case PageFront:
		return "front"
	case PageQuiz:
		return "quiz"
	case PageSprites:
		return "sprites"
	case PageScratch:
		return "scratch"
	}
	return "page?"
}

// Style selects the border glyph set and colours of a text popup.
type Style uint8

const (
	StyleDefault Style = iota
	StyleHand
	StyleJagged
	StylePrint

	// StyleBorderless may be or'ed into any style.
	StyleBorderless Style = 0x80
)

// Base returns the style with the borderless flag stripped.
func (s Style) Base() Style { return s &^ StyleBorderless }

// Borderless reports whether the borderless flag is set.
func (s Style) Borderless() bool { return s&StyleBorderless != 0 }

// Waiter blocks the caller for a number of twentieths of a second.
// Timer implements it.
type Waiter interface {
	Delay(hdsec int)
}

// Rect is an integer screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// pageOfs returns the byte offset of pixel (x, y) within a plane.
func pageOfs(x, y int) int {
	return y*BytesPerLine + x/8
}
