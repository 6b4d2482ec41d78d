package sample

import "github.com/phanxgames/dossier"

// canvas paints flat-shaded shapes into a planar bitmap.
type canvas struct {
	bm   dossier.Bitmap
	w, h int
}

func newCanvas(w, h int, bg uint8) *canvas {
	c := &canvas{bm: dossier.NewBitmap(w, h), w: w, h: h}
	c.rect(0, 0, w, h, bg)
	return c
}

func (c *canvas) set(x, y int, col uint8) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.bm.SetPixel(x, y, col)
}

func (c *canvas) rect(x, y, w, h int, col uint8) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			c.set(i, j, col)
		}
	}
}

// dither fills with a checkerboard of two colours.
func (c *canvas) dither(x, y, w, h int, c1, c2 uint8) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if (i+j)&1 == 0 {
				c.set(i, j, c1)
			} else {
				c.set(i, j, c2)
			}
		}
	}
}

func (c *canvas) frame(x, y, w, h int, col uint8) {
	c.rect(x, y, w, 1, col)
	c.rect(x, y+h-1, w, 1, col)
	c.rect(x, y, 1, h, col)
	c.rect(x+w-1, y, 1, h, col)
}

func (c *canvas) disc(cx, cy, r int, col uint8) {
	for j := -r; j <= r; j++ {
		for i := -r; i <= r; i++ {
			if i*i+j*j <= r*r {
				c.set(cx+i, cy+j, col)
			}
		}
	}
}

// figure draws a standing person seen from the front.
func (c *canvas) figure(x, y int, coat, skin uint8) {
	c.disc(x+8, y+6, 5, skin)
	c.rect(x+2, y+12, 13, 18, coat)
	c.rect(x+3, y+30, 4, 10, 8)
	c.rect(x+10, y+30, 4, 10, 8)
}

// face draws a head and shoulders portrait; frame 1 half closes the eyes
// and frame 2 closes them.
func (c *canvas) face(x int, coat, skin, hair uint8, frame int) {
	c.rect(x+4, 44, 48, 20, coat)
	c.disc(x+28, 28, 16, skin)
	c.rect(x+12, 8, 32, 8, hair)
	c.rect(x+22, 50, 12, 6, skin)
	lid := []int{3, 2, 1}[frame]
	c.rect(x+20, 26, 4, lid, 0)
	c.rect(x+32, 26, 4, lid, 0)
	c.rect(x+24, 36, 8, 1, 4)
}

func (c *canvas) bytes() []byte { return c.bm }
