package dossier

import (
	"bytes"
	"sort"
	"strings"
	"testing"
)

// solidBitmap returns a w×h bitmap filled with colour c.
func solidBitmap(w, h int, c uint8) []byte {
	bm := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bm.SetPixel(x, y, c)
		}
	}
	return bm
}

// packSource builds an in-memory pack from files.
func packSource(files map[string][]byte) *Pack {
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)
	data, entries := BuildPack(names, files)
	return NewPack(bytes.NewReader(data), entries)
}

// mustFatal runs fn and fails unless it raises a fatal error containing want.
func mustFatal(t *testing.T, want string, fn func()) {
	t.Helper()
	err := CatchFatal(fn)
	if err == nil {
		t.Fatalf("expected fatal %q, got none", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("fatal = %q, want %q", err.Error(), want)
	}
}

// mustNotFatal runs fn and fails on any fatal error.
func mustNotFatal(t *testing.T, fn func()) {
	t.Helper()
	if err := CatchFatal(fn); err != nil {
		t.Fatalf("unexpected fatal: %v", err)
	}
}

// recordingChip records every register write.
type recordingChip struct {
	writes [][2]byte
}

func (c *recordingChip) Write(reg, val byte) {
	c.writes = append(c.writes, [2]byte{reg, val})
}

func (c *recordingChip) last(reg byte) (byte, bool) {
	for i := len(c.writes) - 1; i >= 0; i-- {
		if c.writes[i][0] == reg {
			return c.writes[i][1], true
		}
	}
	return 0, false
}
