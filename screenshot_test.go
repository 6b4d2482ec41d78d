package dossier

import (
	"image/png"
	"os"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"title", "title"},
		{"after click", "after_click"},
		{"a/b\\c", "a_b_c"},
		{"  v1.2-final ", "v1.2-final"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotWritesPNG(t *testing.T) {
	d := NewDisplay(nil)
	d.SetPalette(0)
	d.Fill(PageFront, 0, 0, 8, 8, 15, 15)

	path, err := d.Screenshot(t.TempDir(), "white corner")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "_white_corner.png") {
		t.Errorf("unexpected name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != ScreenW || b.Dy() != ScreenH {
		t.Errorf("size = %v, want %dx%d", b, ScreenW, ScreenH)
	}
	r0, _, _, _ := img.At(0, 0).RGBA()
	r1, _, _, _ := img.At(100, 100).RGBA()
	if r0 <= r1 {
		t.Error("filled corner should be brighter than the black page")
	}
}
