package dossier

// hotspotMasks holds one per-byte transparency mask per shimmer frame for a
// 16×8 hotspot cell. Bytes are indexed row-major across the cell and restart
// for each plane.
var hotspotMasks = buildHotspotMasks()

func buildHotspotMasks() [3][]byte {
	var masks [3][]byte
	for f := range masks {
		m := make([]byte, HotspotW/8*HotspotH)
		for y := 0; y < HotspotH; y++ {
			for x := 0; x < HotspotW; x++ {
				edge := x == 0 || x == HotspotW-1 || y == 0 || y == HotspotH-1
				if edge && (x+y+2*f)%6 < 4 {
					m[y*HotspotW/8+x/8] |= 0x80 >> (x & 7)
				}
			}
		}
		masks[f] = m
	}
	return masks
}

// CopyRect copies a w×h rectangle of all four planes between pages.
// sx, dx and w must be multiples of 8.
func (d *Display) CopyRect(from, to PageID, sx, sy, w, h, dx, dy int) {
	assert(w%8 == 0 && sx%8 == 0 && dx%8 == 0)
	bytew := w / 8
	skip := BytesPerLine - bytew
	d.CopyLinear(from, to, pageOfs(sx, sy), pageOfs(dx, dy), bytew, h, skip, skip)
}

// CopyLinear copies h runs of bytew bytes per plane, skipping fromSkip and
// toSkip bytes after each run. Used with a zero skip on one side to pack a
// rectangle into contiguous storage.
func (d *Display) CopyLinear(from, to PageID, fromOfs, toOfs, bytew, h, fromSkip, toSkip int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	src, dst := d.pages[from], d.pages[to]
	for p := 0; p < 4; p++ {
		fp, tp := fromOfs, toOfs
		for y := 0; y < h; y++ {
			copy(dst.planes[p][tp:tp+bytew], src.planes[p][fp:fp+bytew])
			fp += bytew + fromSkip
			tp += bytew + toSkip
		}
	}
}

// MaskedBlit copies a rectangle plane by plane, writing each destination
// byte through the transparency mask of the given shimmer frame:
// dst = src&m | dst&^m.
func (d *Display) MaskedBlit(from, to PageID, sx, sy, w, h, dx, dy, frame int) {
	assert(w%8 == 0 && sx%8 == 0 && dx%8 == 0)
	mask := hotspotMasks[frame%len(hotspotMasks)]
	bytew := w / 8

	d.mu.Lock()
	defer d.mu.Unlock()
	src, dst := d.pages[from], d.pages[to]
	for p := 0; p < 4; p++ {
		mi := 0
		for y := 0; y < h; y++ {
			fp, tp := pageOfs(sx, sy+y), pageOfs(dx, dy+y)
			for x := 0; x < bytew; x++ {
				m := mask[mi%len(mask)]
				mi++
				dst.planes[p][tp+x] = src.planes[p][fp+x]&m | dst.planes[p][tp+x]&^m
			}
		}
	}
}

// BlitBitmap copies the w×h sub-rectangle at (sx, sy) of bm to (dx, dy) of
// page to.
func (d *Display) BlitBitmap(bm Bitmap, to PageID, sx, sy, w, h, dx, dy int) {
	bmw := bm.W()
	assert(w%8 == 0 && sx%8 == 0 && bmw%8 == 0 && dx%8 == 0)
	bytew := w / 8

	d.mu.Lock()
	defer d.mu.Unlock()
	dst := d.pages[to]
	for y := 0; y < h; y++ {
		tp := pageOfs(dx, dy+y)
		for p := 0; p < 4; p++ {
			row := bm.Row(p, sy+y)
			copy(dst.planes[p][tp:tp+bytew], row[sx/8:sx/8+bytew])
		}
	}
}

// PutBitmap copies a whole bitmap to (x, y).
func (d *Display) PutBitmap(bm Bitmap, to PageID, x, y int) {
	d.BlitBitmap(bm, to, 0, 0, bm.W(), bm.H(), x, y)
}

// fillPattern returns the 8-pixel byte of plane p for a fill of c1/c2.
// Equal colours give a solid fill; different ones a 2×1 dither with c1 on
// even pixels.
func fillPattern(p int, c1, c2 uint8) byte {
	b1 := c1&(1<<p) != 0
	b2 := c2&(1<<p) != 0
	switch {
	case b1 && b2:
		return 0xFF
	case b1:
		return 0xAA
	case b2:
		return 0x55
	}
	return 0x00
}

// Fill paints a solid or dithered rectangle. x and w must be multiples of 8.
func (d *Display) Fill(page PageID, x, y, w, h int, c1, c2 uint8) {
	assert(w%8 == 0 && x%8 == 0)
	var pat [4]byte
	for p := range pat {
		pat[p] = fillPattern(p, c1, c2)
	}
	bytew := w / 8

	d.mu.Lock()
	defer d.mu.Unlock()
	dst := d.pages[page]
	for p := 0; p < 4; p++ {
		plane := dst.planes[p]
		for row := 0; row < h; row++ {
			ofs := pageOfs(x, y+row)
			for i := ofs; i < ofs+bytew; i++ {
				plane[i] = pat[p]
			}
		}
	}
}

// Clear fills the visible area of a page with colour c.
func (d *Display) Clear(page PageID, c uint8) {
	d.Fill(page, 0, 0, ScreenW, ScreenH, c, c)
}
