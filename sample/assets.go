package sample

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/phanxgames/dossier"
)

// Asset names of the sample case.
const (
	TitleImage    = `TITLE.RMG`
	RegistryImage = `REGISTRY\REGISTRY.RMG`
	ArchiveImage  = `ARCHIVE\ARCHIVE.RMG`
	DeskImage     = `REGISTRY\DESK.RMG`

	OttoPortrait      = `REGISTRY\OTTO.RMG`
	OttoItem          = `REGISTRY\OTTO_I.RMG`
	VeraPortrait      = `ARCHIVE\VERA.RMG`
	FelixPortrait     = `ARCHIVE\FELIX.RMG`
	FelixItem         = `ARCHIVE\FELIX_I.RMG`
	ConstablePortrait = `ARCHIVE\COP.RMG`

	VeraSolution = `VERA-S.RMG`
	OttoSolution = `OTTO-S.RMG`
)

// Print images of the fingerprint card.
var prints = []string{`ARCHIVE\PRINT1.RMG`, `ARCHIVE\PRINT2.RMG`, `ARCHIVE\PRINT3.RMG`}

const (
	portraitW = 56
	portraitH = 64
	playH     = 169
)

func titleImage() []byte {
	c := newCanvas(dossier.ScreenW, dossier.ScreenH, 1)
	for y := 0; y < dossier.ScreenH; y += 8 {
		col := uint8(1)
		if (y/8)%2 == 1 {
			col = 9
		}
		c.dither(0, y, dossier.ScreenW, 4, col, 1)
	}
	c.rect(200, 40, 240, 100, 0)
	c.frame(200, 40, 240, 100, 14)
	c.frame(204, 44, 232, 92, 6)
	c.rect(248, 72, 144, 24, 6)
	c.rect(256, 80, 128, 8, 14)
	c.figure(300, 100, 8, 7)
	return c.bytes()
}

func registryImage() []byte {
	c := newCanvas(dossier.ScreenW, playH, 6)
	c.dither(0, 0, dossier.ScreenW, 100, 6, 8)
	c.rect(0, 100, dossier.ScreenW, playH-100, 8)
	c.rect(280, 60, 160, 50, 6)
	c.frame(280, 60, 160, 50, 14)
	c.rect(300, 50, 40, 10, 15)
	c.figure(100, 60, 1, 12)
	c.rect(600, 60, 40, 50, 0)
	c.frame(600, 60, 40, 50, 7)
	return c.bytes()
}

func archiveImage() []byte {
	c := newCanvas(dossier.ScreenW, playH, 8)
	for x := 40; x < 600; x += 80 {
		c.rect(x, 20, 64, 100, 6)
		for y := 28; y < 120; y += 16 {
			c.rect(x+4, y, 56, 10, 7)
		}
	}
	c.rect(0, 60, 40, 50, 0)
	c.frame(0, 60, 40, 50, 7)
	c.figure(220, 70, 5, 12)
	c.figure(380, 70, 2, 12)
	c.figure(500, 80, 1, 7)
	return c.bytes()
}

func deskImage() []byte {
	c := newCanvas(240, 96, 6)
	c.frame(0, 0, 240, 96, 14)
	c.rect(20, 20, 80, 50, 15)
	c.rect(140, 40, 40, 24, 8)
	c.disc(160, 52, 8, 7)
	c.rect(154, 48, 6, 3, 4)
	return c.bytes()
}

func portrait(coat, skin, hair uint8) []byte {
	c := newCanvas(portraitW*3, portraitH, 3)
	for f := 0; f < 3; f++ {
		c.face(f*portraitW, coat, skin, hair, f)
	}
	return c.bytes()
}

func solutionPortrait(coat, skin, hair uint8) []byte {
	c := newCanvas(88, 64, 7)
	c.frame(0, 0, 88, 64, 0)
	c.face(16, coat, skin, hair, 0)
	return c.bytes()
}

func itemImage(col uint8) []byte {
	c := newCanvas(dossier.InvW, dossier.InvH, 0)
	c.rect(4, 4, 24, 16, col)
	c.frame(4, 4, 24, 16, 15)
	return c.bytes()
}

func printImage(seed int) []byte {
	c := newCanvas(64, 8, 15)
	for x := 0; x < 64; x += 2 {
		y := (x*seed + seed) % 8
		c.set(x, y, 8)
		c.set(x+1, (y+3)%8, 8)
	}
	return c.bytes()
}

// spriteAtlas holds the three copies of the hotspot outline on row 32.
func spriteAtlas() []byte {
	c := newCanvas(64, 40, 0)
	for i := 0; i < 3; i++ {
		c.frame(i*dossier.HotspotW, 32, dossier.HotspotW, dossier.HotspotH, 14)
	}
	return c.bytes()
}

func quizImage() []byte {
	c := newCanvas(dossier.ScreenW, playH, 15)
	c.frame(2, 0, dossier.ScreenW-4, playH-1, 7)
	return c.bytes()
}

func bottomImage() []byte {
	c := newCanvas(dossier.ScreenW, dossier.ScreenH-playH, 8)
	c.rect(dossier.ScreenW-dossier.QuizButtonW, 1, dossier.QuizButtonW, dossier.ScreenH-playH-1, 0)
	c.frame(dossier.ScreenW-dossier.QuizButtonW, 1, dossier.QuizButtonW, dossier.ScreenH-playH-1, 7)
	return c.bytes()
}

// instrument builds an SBI file: a 36-byte header then the register image.
func instrument(name string, regs dossier.Instrument) []byte {
	out := make([]byte, 36, 36+len(regs))
	copy(out, "SBI\x1a")
	copy(out[4:], name)
	return append(out, regs[:]...)
}

var instruments = [...]dossier.Instrument{
	{0x01, 0x01, 0x10, 0x00, 0xF5, 0xF5, 0x35, 0x35, 0x00, 0x00, 0x06},
	{0x22, 0x21, 0x18, 0x00, 0x65, 0x74, 0x25, 0x26, 0x00, 0x00, 0x0E},
	{0x05, 0x01, 0x00, 0x00, 0xF8, 0xF8, 0x88, 0x88, 0x00, 0x00, 0x00},
	{0x01, 0x11, 0x08, 0x00, 0xF2, 0xF3, 0x46, 0x46, 0x00, 0x00, 0x04},
	{0x31, 0x21, 0x1A, 0x00, 0xF4, 0xF3, 0x14, 0x34, 0x00, 0x00, 0x0A},
}

// Files returns every asset of the sample case keyed by asset name.
func Files() map[string][]byte {
	files := map[string][]byte{
		dossier.SpritesAsset: spriteAtlas(),
		dossier.QuizAsset:    quizImage(),
		dossier.BottomAsset:  bottomImage(),
		dossier.FontAsset:    dossier.DefaultFont().Bytes(),

		TitleImage:    titleImage(),
		RegistryImage: registryImage(),
		ArchiveImage:  archiveImage(),
		DeskImage:     deskImage(),

		OttoPortrait:      portrait(1, 12, 6),
		VeraPortrait:      portrait(5, 12, 0),
		FelixPortrait:     portrait(2, 6, 14),
		ConstablePortrait: portrait(1, 7, 1),
		OttoItem:          itemImage(14),
		FelixItem:         itemImage(15),

		VeraSolution: solutionPortrait(5, 12, 0),
		OttoSolution: solutionPortrait(1, 12, 6),

		dossier.MusicIntro: introScore(),
		dossier.MusicLoop:  loopScore(),
	}
	for i, name := range prints {
		files[name] = printImage(i + 3)
	}
	for i, name := range dossier.InstrumentFiles {
		files[name] = instrument(fmt.Sprintf("sfx%d", i), instruments[i])
	}
	return files
}

// names returns the asset names in a stable order.
func names(files map[string][]byte) []string {
	out := make([]string, 0, len(files))
	for n := range files {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Pack builds the sample assets into an in-memory pack.
func Pack() *dossier.Pack {
	files := Files()
	data, entries := dossier.BuildPack(names(files), files)
	return dossier.NewPack(bytes.NewReader(data), entries)
}

// WritePack writes the sample pack container and its index.
func WritePack(pack, index io.Writer) error {
	files := Files()
	data, entries := dossier.BuildPack(names(files), files)
	if _, err := pack.Write(data); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}
	if err := dossier.FormatPackIndex(index, entries); err != nil {
		return fmt.Errorf("write pack index: %w", err)
	}
	return nil
}
