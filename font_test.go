package dossier

import (
	"bytes"
	"testing"
)

func TestDefaultFont(t *testing.T) {
	f := DefaultFont()
	if len(f.Bytes()) != fontSize {
		t.Fatalf("size = %d, want %d", len(f.Bytes()), fontSize)
	}
	blank := make([]byte, GlyphRows)
	for _, c := range []byte{'A', 'z', '0', GlyphInputMarker, GlyphWildcard1, edgePlain + 1} {
		if bytes.Equal(f.Glyph(c), blank) {
			t.Errorf("glyph %#x is empty", c)
		}
	}
	if !bytes.Equal(f.Glyph(' '), blank) {
		t.Error("space should be blank")
	}
	for i, r := range f.Glyph('M') {
		if f.Inverted('M')[i] != ^r {
			t.Fatalf("row %d not inverted", i)
		}
	}
}

func TestParseFont(t *testing.T) {
	if _, err := ParseFont(make([]byte, 10)); err == nil {
		t.Error("expected size error")
	}
	data := DefaultFont().Bytes()
	data[int('A')*GlyphRows] = 0x81
	f, err := ParseFont(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.Glyph('A')[0] != 0x81 {
		t.Error("parsed glyph not taken from data")
	}
}

func TestLoadFontSize(t *testing.T) {
	src := packSource(map[string][]byte{FontAsset: []byte("short")})
	if _, err := LoadFont(src); err == nil {
		t.Error("expected size error")
	}
}

func TestBorderCorners(t *testing.T) {
	f := DefaultFont()
	tests := []struct {
		base             byte
		left, top, right byte
	}{
		{edgePlain, 0x1F, 0xFF, 0xF8},
		{edgePrint, 0x0A, 0xAA, 0xA8},
	}
	for _, tt := range tests {
		if got := f.Glyph(tt.base)[4]; got != tt.left {
			t.Errorf("border %#x top-left row = %#x, want %#x", tt.base, got, tt.left)
		}
		if got := f.Glyph(tt.base + 1)[4]; got != tt.top {
			t.Errorf("border %#x top row = %#x, want %#x", tt.base, got, tt.top)
		}
		if got := f.Glyph(tt.base + 2)[4]; got != tt.right {
			t.Errorf("border %#x top-right row = %#x, want %#x", tt.base, got, tt.right)
		}
		if got := f.Glyph(tt.base + 7)[4]; got != tt.right {
			t.Errorf("border %#x bottom-right row = %#x, want %#x", tt.base, got, tt.right)
		}
	}
}
