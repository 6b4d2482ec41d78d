package dossier

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDecodeRLE(t *testing.T) {
	src := []byte{8, 0, 1, 0, 7, rleMarker, 5, 3, 9, rleMarker, 1, rleMarker}
	dst := make([]byte, 12)
	n, err := DecodeRLE(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{8, 0, 1, 0, 7, 3, 3, 3, 3, 3, 9, rleMarker}
	if n != len(want) || !bytes.Equal(dst, want) {
		t.Errorf("decoded %v (%d), want %v", dst[:n], n, want)
	}
}

func TestDecodeRLEErrors(t *testing.T) {
	if _, err := DecodeRLE([]byte{1, 2}, make([]byte, 8)); err == nil {
		t.Error("expected short header error")
	}
	if _, err := DecodeRLE([]byte{0, 0, 0, 0, rleMarker, 4}, make([]byte, 8)); err == nil {
		t.Error("expected truncated run error")
	}
	if _, err := DecodeRLE([]byte{0, 0, 0, 0, rleMarker, 9, 1}, make([]byte, 8)); err == nil {
		t.Error("expected overflow error")
	}
}

func TestRLERoundTrip(t *testing.T) {
	src := solidBitmap(64, 8, 6)
	Bitmap(src).SetPixel(3, 3, 1)
	src = append(src, rleMarker, rleMarker, 0)

	enc := EncodeRLE(src)
	if len(enc) >= len(src) {
		t.Errorf("runs should compress: %d >= %d", len(enc), len(src))
	}
	dst := make([]byte, len(src))
	n, err := DecodeRLE(enc, dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(src) || !bytes.Equal(dst, src) {
		t.Error("round trip mismatch")
	}
}

func TestAssetKind(t *testing.T) {
	tests := []struct {
		name string
		rle  bool
		skip int
	}{
		{`GAME\SPRITES.RMG`, true, 0},
		{`SOUND\PIZZI.SBI`, false, instrumentHeader},
		{"FONT.DAT", false, 0},
		{"MUSIC.IMF1", false, 0},
		{"X", false, 0},
	}
	for _, tt := range tests {
		rle, skip := assetKind(tt.name)
		if rle != tt.rle || skip != tt.skip {
			t.Errorf("assetKind(%q) = %v, %d", tt.name, rle, skip)
		}
	}
}

func TestPackIndexRoundTrip(t *testing.T) {
	files := map[string][]byte{
		`A\ONE.RMG`: solidBitmap(16, 4, 2),
		"TWO.DAT":   []byte("hello"),
	}
	data, entries := BuildPack([]string{`A\ONE.RMG`, "TWO.DAT"}, files)

	var idx bytes.Buffer
	if err := FormatPackIndex(&idx, entries); err != nil {
		t.Fatal(err)
	}
	parsed, err := ParsePackIndex(strings.NewReader("# comment\n\n" + idx.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 2 || parsed[1] != entries[1] {
		t.Fatalf("parsed %+v, want %+v", parsed, entries)
	}

	p := NewPack(bytes.NewReader(data), parsed)
	if w, h := p.Dimensions(`A\ONE.RMG`); w != 16 || h != 4 {
		t.Errorf("dimensions %dx%d", w, h)
	}
	size := ImageSize(16, 4)
	buf := make([]byte, size)
	p.Load(`A\ONE.RMG`, size, buf)
	if !bytes.Equal(buf, files[`A\ONE.RMG`]) {
		t.Error("decoded image mismatch")
	}
	if p.Len("TWO.DAT") != 5 {
		t.Errorf("len = %d", p.Len("TWO.DAT"))
	}
	if _, _, ok := p.Resolve("MISSING"); ok {
		t.Error("resolve should miss")
	}
	mustFatal(t, "Unable to open file MISSING", func() { p.Len("MISSING") })
}

func TestParsePackIndexErrors(t *testing.T) {
	for _, src := range []string{"A 1\n", "A x 1\n", "A 1 y\n"} {
		if _, err := ParsePackIndex(strings.NewReader(src)); err == nil {
			t.Errorf("%q: expected error", src)
		}
	}
}

func TestOpenPack(t *testing.T) {
	files := map[string][]byte{"FONT.DAT": DefaultFont().Bytes()}
	data, entries := BuildPack([]string{"FONT.DAT"}, files)
	var idx bytes.Buffer
	if err := FormatPackIndex(&idx, entries); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"GAME.PAK": {Data: data},
		"GAME.IDX": {Data: idx.Bytes()},
	}

	p, err := OpenPack(fsys, "GAME.PAK", "GAME.IDX")
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	f, err := LoadFont(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.Glyph('Q'), DefaultFont().Glyph('Q')) {
		t.Error("font glyphs differ")
	}

	if _, err := OpenPack(fsys, "GAME.PAK", "NONE.IDX"); err == nil {
		t.Error("expected missing index error")
	}
}

func TestDirSource(t *testing.T) {
	img := solidBitmap(8, 2, 4)
	ins := append(make([]byte, instrumentHeader), 1, 2, 3)
	fsys := fstest.MapFS{
		"ROOM/WALL.RMG":  {Data: EncodeRLE(img)},
		"SOUND/BELL.SBI": {Data: ins},
	}
	src := NewDirSource(fsys)

	if _, _, ok := src.Resolve(`ROOM\WALL.RMG`); !ok {
		t.Fatal("backslash name should resolve")
	}
	if w, h := src.Dimensions(`ROOM\WALL.RMG`); w != 8 || h != 2 {
		t.Errorf("dimensions %dx%d", w, h)
	}
	buf := make([]byte, len(img))
	src.Load(`ROOM\WALL.RMG`, len(img), buf)
	if !bytes.Equal(buf, img) {
		t.Error("image mismatch")
	}

	regs := make([]byte, 3)
	src.Load(`SOUND\BELL.SBI`, 3, regs)
	if !bytes.Equal(regs, []byte{1, 2, 3}) {
		t.Errorf("instrument header not skipped: %v", regs)
	}
	mustFatal(t, "Unable to open file NOPE.RMG", func() { src.Dimensions("NOPE.RMG") })
	mustFatal(t, "Corrupt asset", func() { src.Load(`SOUND\BELL.SBI`, 8, make([]byte, 8)) })
}

func TestLoadImage(t *testing.T) {
	src := packSource(map[string][]byte{`ROOM\DOOR.RMG`: solidBitmap(16, 8, 13)})
	d := NewDisplay(nil)
	a := NewAllocator(0, nil)

	d.LoadImage(src, a, `ROOM\DOOR.RMG`, PageFront, 40, 30)
	if d.Pixel(PageFront, 40, 30) != 13 || d.Pixel(PageFront, 55, 37) != 13 {
		t.Error("image not drawn")
	}
	if a.Current() != 0 || a.Peak() != uint64(ImageSize(16, 8)) {
		t.Errorf("buffer accounting current %d peak %d", a.Current(), a.Peak())
	}
}
