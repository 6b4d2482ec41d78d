package dossier

import "encoding/binary"

// Bitmap is a planar image as stored in the asset pack: a little-endian
// uint16 width and height followed by h rows, each row holding the four
// planes back to back (w/8 bytes per plane).
type Bitmap []byte

// ImageSize returns the byte size of a w×h bitmap including its header.
func ImageSize(w, h int) int {
	return 4 + w/8*h*4
}

// NewBitmap allocates an empty w×h bitmap with its header filled in.
func NewBitmap(w, h int) Bitmap {
	assert(w%8 == 0)
	b := make(Bitmap, ImageSize(w, h))
	b.setHeader(w, h)
	return b
}

func (b Bitmap) setHeader(w, h int) {
	binary.LittleEndian.PutUint16(b[0:], uint16(w))
	binary.LittleEndian.PutUint16(b[2:], uint16(h))
}

// W returns the bitmap width in pixels.
func (b Bitmap) W() int { return int(binary.LittleEndian.Uint16(b[0:])) }

// H returns the bitmap height in pixels.
func (b Bitmap) H() int { return int(binary.LittleEndian.Uint16(b[2:])) }

// Row returns the bytes of plane p on row y.
func (b Bitmap) Row(p, y int) []byte {
	bw := b.W() / 8
	ofs := 4 + y*bw*4 + p*bw
	return b[ofs : ofs+bw]
}

// SetPixel writes colour c at (x, y). Intended for content generation and
// tests, not for the render path.
func (b Bitmap) SetPixel(x, y int, c uint8) {
	bit := byte(0x80 >> (x & 7))
	for p := 0; p < 4; p++ {
		row := b.Row(p, y)
		if c&(1<<p) != 0 {
			row[x/8] |= bit
		} else {
			row[x/8] &^= bit
		}
	}
}

// Pixel returns the colour index at (x, y).
func (b Bitmap) Pixel(x, y int) uint8 {
	bit := byte(0x80 >> (x & 7))
	var c uint8
	for p := 0; p < 4; p++ {
		if b.Row(p, y)[x/8]&bit != 0 {
			c |= 1 << p
		}
	}
	return c
}
