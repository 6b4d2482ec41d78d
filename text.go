package dossier

var edgeLoop = [8]int{2, 3, 4, 6, 5, 4, 3, 2}

var sideMask = [2][7]byte{
	{3, 7, 7, 7, 7, 7, 3},
	{192, 224, 224, 224, 224, 224, 192},
}

// Side selects the left or right cap of DrawSide.
const (
	SideLeft  = 0
	SideRight = 1
)

// Text renders s at (x, y) with fg on bg. Each plane is written in one
// pass: bits set in both colours give 0xFF, bits set in neither give 0x00,
// fg-only bits copy the glyph and bg-only bits copy the inverted glyph.
// A newline moves down one LineHeight back to x; bytes 1 to 9 are skipped
// and a zero byte ends the text. x must be a multiple of 8.
func (d *Display) Text(page PageID, s string, x, y int, fg, bg uint8) {
	assert(x%8 == 0)

	d.mu.Lock()
	defer d.mu.Unlock()
	dst := d.pages[page]
	font := d.font
	for p := 0; p < 4; p++ {
		fb := fg&(1<<p) != 0
		bb := bg&(1<<p) != 0
		plane := dst.planes[p]
		line := pageOfs(x, y)
		col := 0
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c <= 10 {
				if c == 0 {
					break
				}
				if c == '\n' {
					line += LineHeight * BytesPerLine
					col = 0
				}
				continue
			}
			var rows []byte
			switch {
			case fb && !bb:
				rows = font.Glyph(c)
			case bb && !fb:
				rows = font.Inverted(c)
			}
			ofs := line + col
			col++
			for r := 0; r < GlyphRows; r++ {
				o := ofs + r*BytesPerLine
				if o < 0 || o >= len(plane) {
					continue
				}
				switch {
				case rows != nil:
					plane[o] = rows[r]
				case fb:
					plane[o] = 0xFF
				default:
					plane[o] = 0x00
				}
			}
		}
	}
}

// DrawEdge draws a border around the w×h rectangle at (x, y) from the glyph
// set of style. The jagged set cycles edgeLoop down each side.
func (d *Display) DrawEdge(page PageID, x, y, w, h int, fg, bg uint8, style Style) {
	l := w / 8
	edge := make([]byte, l)
	switch style.Base() {
	case StyleJagged:
		const chars = edgeJagged
		for i := range edge {
			edge[i] = byte(chars + 0x2E + (i%8)/4)
		}
		d.Text(page, string(edge), x, y, fg, bg)
		for i := range edge {
			edge[i] = byte(chars + 0x2C + (i%8)/4)
		}
		d.Text(page, string(edge), x, y+h-LineHeight, fg, bg)
		var c byte
		for r := 0; r < h-LineHeight; r += LineHeight {
			c = byte(chars + edgeLoop[r%8])
			d.Text(page, glyph(c), x, y+r, fg, bg)
		}
		d.Text(page, glyph(c), x, y+h-LineHeight, fg, bg)
		for r := 0; r < h-LineHeight; r += LineHeight {
			c = byte(chars + 9 + edgeLoop[r%8])
			d.Text(page, glyph(c), x+w-8, y+r, fg, bg)
		}
		d.Text(page, glyph(c), x+w-8, y+h-LineHeight, fg, bg)
	default:
		var chars byte = edgePlain
		switch style.Base() {
		case StyleHand:
			chars = edgeHand
		case StylePrint:
			chars = edgePrint
		}
		for i := range edge {
			edge[i] = chars + 1
		}
		edge[0], edge[l-1] = chars, chars+2
		d.Text(page, string(edge), x, y, fg, bg)
		for i := range edge {
			edge[i] = chars + 6
		}
		edge[0], edge[l-1] = chars+5, chars+7
		d.Text(page, string(edge), x, y+h-LineHeight, fg, bg)
		for r := LineHeight; r < h-LineHeight; r += LineHeight {
			d.Text(page, glyph(chars+3), x, y+r, fg, bg)
		}
		for r := LineHeight; r < h-LineHeight; r += LineHeight {
			d.Text(page, glyph(chars+4), x+w-8, y+r, fg, bg)
		}
	}
}

// DrawSide draws a rounded pill cap in bg into the byte column at x, seven
// rows starting at y+1.
func (d *Display) DrawSide(page PageID, x, y int, bg uint8, side int) {
	assert(x%8 == 0)
	d.mu.Lock()
	defer d.mu.Unlock()
	dst := d.pages[page]
	for p := 0; p < 4; p++ {
		var bit byte
		if bg&(1<<p) != 0 {
			bit = 0xFF
		}
		ofs := pageOfs(x, y+1)
		for _, m := range sideMask[side] {
			dst.planes[p][ofs] = bit&m | dst.planes[p][ofs]&^m
			ofs += BytesPerLine
		}
	}
}

// glyph returns a one-glyph string for code c.
func glyph(c byte) string { return string([]byte{c}) }
