package dossier

const (
	scratchSlots = 5
	scratchMem   = 65535
)

type scratchSave struct {
	x, y, w, h int
	ofs        int
}

// ScratchStore saves front-page rectangles under popups into the scratch
// page, packed linearly, and restores them last in first out.
type ScratchStore struct {
	d     *Display
	saves [scratchSlots]scratchSave
	num   int
	ofs   int
}

// NewScratchStore creates an empty store.
func NewScratchStore(d *Display) *ScratchStore {
	return &ScratchStore{d: d}
}

// Push saves the w×h rectangle at (x, y) of the front page. x and w must
// be multiples of 8.
func (s *ScratchStore) Push(x, y, w, h int) {
	assert(x%8 == 0 && w%8 == 0)
	assert(x >= 0 && y >= 0 && x+w <= ScreenW && y+h <= PlaneSize/BytesPerLine)
	if s.num == scratchSlots-1 {
		fatal("No more scratches allowed!")
	}
	bytew := w / 8
	n := bytew * h
	if s.ofs+n > scratchMem {
		fatal("No more scratch memory!")
	}
	s.saves[s.num] = scratchSave{x: x, y: y, w: w, h: h, ofs: s.ofs}
	s.d.CopyLinear(PageFront, PageScratch, pageOfs(x, y), s.ofs, bytew, h, BytesPerLine-bytew, 0)
	s.ofs += n
	s.num++
}

// Pop restores the most recent save.
func (s *ScratchStore) Pop() {
	if s.num == 0 {
		fatal("No scratch to pop!")
	}
	s.num--
	sv := s.saves[s.num]
	bytew := sv.w / 8
	s.ofs = sv.ofs
	s.d.CopyLinear(PageScratch, PageFront, sv.ofs, pageOfs(sv.x, sv.y), bytew, sv.h, 0, BytesPerLine-bytew)
}

// Depth returns the number of live saves.
func (s *ScratchStore) Depth() int { return s.num }
