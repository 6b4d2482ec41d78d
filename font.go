package dossier

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	fontGlyphs   = 256
	invertedBase = fontGlyphs * GlyphRows
	fontSize     = invertedBase * 2

	// FontAsset is the asset name of the glyph set.
	FontAsset = "FONT.DAT"
)

// Glyph codes with special meaning to the renderer.
const (
	GlyphInputMarker = 0x9E
	GlyphWildcard0   = 0xAD
	GlyphWildcard1   = 0xAE
	GlyphWildcard2   = 0xAF

	edgePlain  = 0xE0
	edgeHand   = 0xF0
	edgePrint  = 0xC0
	edgeJagged = 0xD0
)

// WildcardText is the clue text of the wildcard word every input box starts
// with.
const WildcardText = "\xad\xae\xaf"

// Font is an 8×9 bitmap glyph set: 256 glyphs of nine one-byte rows followed
// by an inverted copy of the same glyphs, as stored in FONT.DAT.
type Font struct {
	data [fontSize]byte
}

// ParseFont validates and copies raw FONT.DAT bytes.
func ParseFont(data []byte) (*Font, error) {
	if len(data) != fontSize {
		return nil, fmt.Errorf("parse font: got %d bytes, want %d", len(data), fontSize)
	}
	f := &Font{}
	copy(f.data[:], data)
	return f, nil
}

// LoadFont reads FONT.DAT from src.
func LoadFont(src AssetSource) (*Font, error) {
	n := src.Len(FontAsset)
	if n != fontSize {
		return nil, fmt.Errorf("load font: %s is %d bytes, want %d", FontAsset, n, fontSize)
	}
	buf := make([]byte, fontSize)
	src.Load(FontAsset, fontSize, buf)
	return ParseFont(buf)
}

// Bytes returns the FONT.DAT encoding of f.
func (f *Font) Bytes() []byte {
	out := make([]byte, fontSize)
	copy(out, f.data[:])
	return out
}

// Glyph returns the nine rows of glyph c.
func (f *Font) Glyph(c byte) []byte {
	o := int(c) * GlyphRows
	return f.data[o : o+GlyphRows]
}

// Inverted returns the nine inverted rows of glyph c.
func (f *Font) Inverted(c byte) []byte {
	o := invertedBase + int(c)*GlyphRows
	return f.data[o : o+GlyphRows]
}

func (f *Font) set(c byte, rows [GlyphRows]byte) {
	o := int(c) * GlyphRows
	for i, r := range rows {
		f.data[o+i] = r
		f.data[invertedBase+o+i] = ^r
	}
}

// DefaultFont builds a complete glyph set without any asset: printable
// ASCII comes from basicfont's 7×13 face cropped to nine rows; border sets,
// the input marker and the wildcard glyphs are drawn here.
func DefaultFont() *Font {
	f := &Font{}
	for i := 0; i < fontGlyphs; i++ {
		f.set(byte(i), [GlyphRows]byte{})
	}
	face := basicfont.Face7x13
	for r := rune(0x20); r < 0x7F; r++ {
		_, mask, mp, _, ok := face.Glyph(fixed.P(0, face.Ascent), r)
		if !ok {
			continue
		}
		var rows [GlyphRows]byte
		for y := 0; y < GlyphRows; y++ {
			for x := 0; x < 7; x++ {
				if a := mask.At(mp.X+x, mp.Y+y+2).(color.Alpha); a.A > 0x7F {
					rows[y] |= 0x80 >> x
				}
			}
		}
		f.set(byte(r), rows)
	}

	f.setBorder(edgePlain, 0x10, 0x08, 0xFF, 0xFF)
	f.setBorder(edgeHand, 0x28, 0x14, 0xFF, 0x00)
	f.setBorder(edgePrint, 0x10, 0x08, 0xAA, 0xAA)
	for _, v := range []int{2, 3, 4, 5, 6} {
		f.set(byte(edgeJagged+v), vertical(0x80>>v))
		f.set(byte(edgeJagged+9+v), vertical(0x01<<(v-1)))
	}
	f.set(edgeJagged+0x2C, [GlyphRows]byte{4: 0xCC, 5: 0x33})
	f.set(edgeJagged+0x2D, [GlyphRows]byte{4: 0x33, 5: 0xCC})
	f.set(edgeJagged+0x2E, [GlyphRows]byte{3: 0xCC, 4: 0x33})
	f.set(edgeJagged+0x2F, [GlyphRows]byte{3: 0x33, 4: 0xCC})

	f.set(GlyphInputMarker, [GlyphRows]byte{0x00, 0x00, 0x10, 0x38, 0x7C, 0xFE, 0x00, 0xFE, 0x00})
	q := f.Glyph('?')
	var wild [GlyphRows]byte
	copy(wild[:], q)
	f.set(GlyphWildcard0, wild)
	f.set(GlyphWildcard1, wild)
	f.set(GlyphWildcard2, wild)
	return f
}

func vertical(col byte) [GlyphRows]byte {
	var rows [GlyphRows]byte
	for i := range rows {
		rows[i] = col
	}
	return rows
}

// setBorder draws the eight glyphs of a plain-layout border set: three top
// glyphs, left and right sides, three bottom glyphs. second is an optional
// line one row inside the first.
func (f *Font) setBorder(base byte, left, right, line, second byte) {
	leftCorner := byte(0x1F)
	rightCorner := byte(0xF8)
	var tl, t, tr, bl, b, br [GlyphRows]byte
	for y := 0; y < GlyphRows; y++ {
		switch {
		case y == 4:
			tl[y], t[y], tr[y] = leftCorner&line, line, rightCorner&line
			bl[y], b[y], br[y] = leftCorner&line, line, rightCorner&line
		case y == 6:
			t[y] = second
			tl[y], tr[y] = left, right
			bl[y], br[y] = 0, 0
		case y > 4:
			tl[y], tr[y] = left, right
		default:
			bl[y], br[y] = left, right
		}
		if y == 2 {
			b[y] = second
		}
	}
	f.set(base, tl)
	f.set(base+1, t)
	f.set(base+2, tr)
	f.set(base+3, vertical(left))
	f.set(base+4, vertical(right))
	f.set(base+5, bl)
	f.set(base+6, b)
	f.set(base+7, br)
}
