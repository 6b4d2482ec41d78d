package dossier

import "testing"

func TestTextPlanes(t *testing.T) {
	d := NewDisplay(nil)
	d.Text(PageFront, "A", 8, 10, 15, 1)

	rows := d.font.Glyph('A')
	for r := 0; r < GlyphRows; r++ {
		for bit := 0; bit < 8; bit++ {
			want := uint8(1)
			if rows[r]&(0x80>>bit) != 0 {
				want = 15
			}
			if c := d.Pixel(PageFront, 8+bit, 10+r); c != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", bit, r, c, want)
			}
		}
	}
}

func TestTextNewlineAndStop(t *testing.T) {
	d := NewDisplay(nil)
	d.Text(PageFront, "\x01\n \x00 ", 16, 0, 0, 6)

	// The control byte draws nothing, the newline restarts at x.
	if c := d.Pixel(PageFront, 16, 0); c != 0 {
		t.Errorf("first line pixel = %d, want untouched 0", c)
	}
	if c := d.Pixel(PageFront, 16, LineHeight); c != 6 {
		t.Errorf("second line pixel = %d, want background 6", c)
	}
	if c := d.Pixel(PageFront, 24, LineHeight); c != 0 {
		t.Errorf("text after a zero byte was drawn: %d", c)
	}
}

func TestTextUnaligned(t *testing.T) {
	d := NewDisplay(nil)
	mustFatal(t, "Assertion failed", func() { d.Text(PageFront, "x", 4, 0, 1, 0) })
}

func TestDrawSide(t *testing.T) {
	d := NewDisplay(nil)
	d.DrawSide(PageFront, 0, 0, 5, SideLeft)
	d.DrawSide(PageFront, 8, 0, 5, SideRight)

	// Row 1 is the narrow top of the cap.
	if d.Pixel(PageFront, 6, 1) != 5 || d.Pixel(PageFront, 5, 1) != 0 {
		t.Error("left cap top row wrong")
	}
	if d.Pixel(PageFront, 5, 2) != 5 {
		t.Error("left cap body wrong")
	}
	if d.Pixel(PageFront, 8, 1) != 5 || d.Pixel(PageFront, 10, 1) != 0 {
		t.Error("right cap top row wrong")
	}
	if d.Pixel(PageFront, 6, 0) != 0 || d.Pixel(PageFront, 6, 8) != 0 {
		t.Error("cap should span seven rows from y+1")
	}
}

func TestDrawEdgeCorners(t *testing.T) {
	d := NewDisplay(nil)
	d.DrawEdge(PageFront, 0, 0, 64, 40, 8, 15, StyleDefault)
	// The middle of the top edge is a horizontal line on glyph row 4.
	if c := d.Pixel(PageFront, 32, 4); c != 8 {
		t.Errorf("top edge pixel = %d, want 8", c)
	}
	if c := d.Pixel(PageFront, 32, 2); c != 15 {
		t.Errorf("above the edge line = %d, want 15", c)
	}
	// Bottom edge sits on the last text line.
	if c := d.Pixel(PageFront, 32, 40-LineHeight+4); c != 8 {
		t.Errorf("bottom edge pixel = %d, want 8", c)
	}
}
