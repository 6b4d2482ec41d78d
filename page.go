package dossier

// Page is one display page: four bit planes of PlaneSize bytes each,
// BytesPerLine bytes per scanline.
type Page struct {
	planes [4][]byte
}

func newPage() *Page {
	p := &Page{}
	for i := range p.planes {
		p.planes[i] = make([]byte, PlaneSize)
	}
	return p
}

// Plane returns the raw bytes of plane i.
func (p *Page) Plane(i int) []byte { return p.planes[i] }

// Pixel returns the colour index at (x, y).
func (p *Page) Pixel(x, y int) uint8 {
	ofs := pageOfs(x, y)
	bit := byte(0x80 >> (x & 7))
	var c uint8
	for i := 0; i < 4; i++ {
		if p.planes[i][ofs]&bit != 0 {
			c |= 1 << i
		}
	}
	return c
}

// Snapshot copies the w×h region at (x, y), all planes, for comparison.
// x and w are byte aligned.
func (p *Page) Snapshot(x, y, w, h int) []byte {
	bw := w / 8
	out := make([]byte, 0, bw*h*4)
	for i := 0; i < 4; i++ {
		for row := 0; row < h; row++ {
			ofs := pageOfs(x, y+row)
			out = append(out, p.planes[i][ofs:ofs+bw]...)
		}
	}
	return out
}
