package dossier

import "testing"

func testAssets() *Pack {
	return packSource(map[string][]byte{
		`ROOM\ROOM.RMG`:  solidBitmap(ScreenW, 169, 1),
		`ROOM\NOTE.RMG`:  solidBitmap(160, 40, 15),
		`ROOM\FACE.RMG`:  solidBitmap(48, 16, 6),
		`ROOM\ITEM.RMG`:  solidBitmap(InvW, InvH, 14),
		`ROOM\PRINT.RMG`: solidBitmap(64, 8, 7),
	})
}

func testWorld() *World { return NewWorld(testAssets()) }

func TestNewClueUniqueIgnoringCase(t *testing.T) {
	w := testWorld()
	w.NewClue("Ledger")
	mustFatal(t, "Duplicate clue 'LEDGER'", func() { w.NewClue("LEDGER") })

	// Image clues have no name and never collide.
	w.NewClue("")
	mustNotFatal(t, func() { w.NewClue("") })
}

func TestFindClue(t *testing.T) {
	w := testWorld()
	stamps := w.NewClue("stamps")
	stamp := w.NewClue("stamp")
	keyring := w.NewClue("keyring")
	key := w.NewClue("key")

	tests := []struct {
		name string
		want *Clue
	}{
		{"stamp", stamp},
		{"STAMP", stamp},
		{"key", key},
		{"stamps", stamps},
		{"keyr", keyring},
		{"keys", keyring},
		{"ledger", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := w.FindClue(tt.name); got != tt.want {
			t.Errorf("FindClue(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFindClueRegistrationOrder(t *testing.T) {
	w := testWorld()
	first := w.NewClue("burner")
	w.NewClue("burned")
	if got := w.FindClue("burn"); got != first {
		t.Errorf("partial match should return the earliest clue, got %q", got.Text)
	}
}

func TestWildcard(t *testing.T) {
	w := testWorld()
	wc := w.Wildcard()
	if wc != w.Wildcard() {
		t.Error("wildcard should be created once")
	}
	if wc.Text != WildcardText || wc.Type != ClueWildcard {
		t.Errorf("wildcard = %q type %d", wc.Text, wc.Type)
	}
}

func TestAddCluePosition(t *testing.T) {
	w := testWorld()
	v := w.NewTextView("The desk is\nlocked with a KEY.", StyleDefault)
	c := w.AddClue(v, "key", "", ClueNoun)

	if c.Text != "key" || c.Type != ClueNoun {
		t.Errorf("clue %q type %d", c.Text, c.Type)
	}
	// "key" is column 14 of the second line.
	if c.X != 16+14*8 || c.Y != 8+LineHeight {
		t.Errorf("position (%d,%d)", c.X, c.Y)
	}
	if c.W != 24 || c.H != ClueHeight {
		t.Errorf("size %dx%d", c.W, c.H)
	}

	named := w.AddClue(v, "desk", "writing desk", ClueNoun)
	if named.Text != "writing desk" || named.W != 32 {
		t.Errorf("named clue %q width %d", named.Text, named.W)
	}
	if got := v.Popup.Clues(); len(got) != 2 || got[0] != named {
		t.Error("clues should be prepended")
	}
}

func TestAddClueNotFound(t *testing.T) {
	w := testWorld()
	v := w.NewTextView("Nothing here.", StyleDefault)
	mustFatal(t, "Clue ink not found in message!", func() { w.AddClue(v, "ink", "", ClueNoun) })

	img := w.NewImageView(`ROOM\NOTE.RMG`)
	mustFatal(t, "Clue ink not found in message!", func() { w.AddClue(img, "ink", "", ClueNoun) })
}

func TestTextViewSize(t *testing.T) {
	w := testWorld()
	v := w.NewTextView("abc\nabcdefg", StyleHand)
	p := v.Popup
	// Seven columns round up to eight.
	if p.W != 8*8+32 || p.H != 4*LineHeight {
		t.Errorf("size %dx%d", p.W, p.H)
	}
	if p.X%8 != 0 || p.X != (ScreenW/2-p.W/2)&^7 || p.Y != PlayH/2-p.H/2 {
		t.Errorf("position (%d,%d)", p.X, p.Y)
	}
}

func TestImageViews(t *testing.T) {
	w := testWorld()
	v := w.NewImageView(`ROOM\NOTE.RMG`)
	if v.Popup.W != 160 || v.Popup.H != 40 || v.Popup.X != 240 || v.Popup.Y != (PlayH-40)/2 {
		t.Errorf("popup %+v", v.Popup)
	}
	blank := w.NewImageView("")
	if blank.Popup.W != 160 || blank.Popup.H != 100 {
		t.Errorf("placeholder %+v", blank.Popup)
	}
	fp := w.NewFingerprintView(`ROOM\PRINT.RMG`)
	if !fp.Popup.Style.Borderless() {
		t.Error("fingerprints are borderless")
	}
}

func TestInventoryView(t *testing.T) {
	w := testWorld()
	v := w.NewInventoryView(`ROOM\ITEM.RMG`, `ROOM\FACE.RMG`, "Hello.", "Otto")
	if v.Kind != ViewInventory || v.Input == nil || v.ClueName != "Otto" {
		t.Fatalf("inventory %+v", v)
	}
	sprites := v.Sprites()
	if len(sprites) != 2 {
		t.Fatalf("sprites = %d, want portrait and item", len(sprites))
	}
	// Most recent first: the item, then the three-frame portrait.
	if sprites[0].Frames != 1 || sprites[1].Frames != 3 || sprites[1].W != 16 {
		t.Errorf("sprites %+v %+v", sprites[0], sprites[1])
	}

	text := w.NewInventoryView("a pencil", "", "", "")
	if s := text.Sprites(); len(s) != 1 || s[0].Text != "a pencil" || s[0].SY != InvY+8 {
		t.Error("text inventory should become a text sprite")
	}
	if text.Input != nil {
		t.Error("no input without a name")
	}
}

func TestAddViewHotspots(t *testing.T) {
	w := testWorld()
	room := w.NewImageView(`ROOM\ROOM.RMG`)
	note := w.AddText(room, 101, 50, "hi", StyleDefault)
	if note.HX != 96 || note.HY != 50 || note.HW != HotspotW || note.HH != HotspotH {
		t.Errorf("hotspot %v", note.Hotspot())
	}

	other := w.NewImageView(`ROOM\ROOM.RMG`)
	tr := w.AddTransition(room, 618, 78, other)
	if tr.Destination() != other || tr.HH != TransitionH {
		t.Error("transition wiring")
	}
	if note.Destination() != nil {
		t.Error("only transitions have a destination")
	}
	if ts := room.Targets(); len(ts) != 2 || ts[0] != tr {
		t.Error("targets should be most recent first")
	}

	inv := w.AddInventory(room, 200, 80, "", "", "", "")
	item := w.AddTextItem(inv, 2, "a coin", StyleDefault)
	if item.Kind != ViewItem || item.HX != InvX+2*InvS || item.HY != InvY || item.HW != InvW || item.HH != InvH {
		t.Errorf("item %+v", item.Hotspot())
	}
}

func TestPromoteSums(t *testing.T) {
	w := testWorld()
	room := w.NewImageView(`ROOM\ROOM.RMG`)
	inv := w.AddInventory(room, 40, 40, "", `ROOM\FACE.RMG`, "Ask me about the ink.", "Otto")
	clue := w.AddClue(inv, "ink", "", ClueNoun)
	note := w.AddText(inv, 16, 8, "A note.", StyleDefault)
	other := w.NewImageView(`ROOM\ROOM.RMG`)
	tr := w.AddTransition(other, 0, 0, room)

	px, py := inv.Popup.X, inv.Popup.Y
	cx, cy := clue.X, clue.Y
	face := inv.Sprites()[0]
	sx, sy := face.SX, face.SY
	ix, iy := inv.Input.X, inv.Input.Y

	w.Promote(room)

	if clue.X != cx+px+InvMargin || clue.Y != cy+py {
		t.Errorf("clue at (%d,%d)", clue.X, clue.Y)
	}
	if face.SX != sx+px || face.SY != sy+py {
		t.Errorf("sprite at (%d,%d)", face.SX, face.SY)
	}
	if inv.Input.X != ix+px || inv.Input.Y != iy+py {
		t.Errorf("input at (%d,%d)", inv.Input.X, inv.Input.Y)
	}
	if note.HX != 16+px || note.HY != 8+py {
		t.Errorf("child hotspot at (%d,%d)", note.HX, note.HY)
	}
	// The scene root is full screen, so its children keep their place.
	if inv.HX != 40 || inv.HY != 40 {
		t.Errorf("inventory hotspot at (%d,%d)", inv.HX, inv.HY)
	}
	if tr.HX != 0 {
		t.Error("a scene that was not promoted keeps its coordinates")
	}
	mustFatal(t, "Scene promoted twice", func() { w.Promote(room) })
}

func TestArenaExhaustion(t *testing.T) {
	w := testWorld()
	mustFatal(t, "Insufficient views", func() {
		for {
			w.NewTextView("x", StyleDefault)
		}
	})
	w = testWorld()
	mustFatal(t, "Insufficient clues", func() {
		for {
			w.NewClue("")
		}
	})
	w = testWorld()
	mustFatal(t, "Insufficient sprites", func() {
		v := w.NewTextView("x", StyleDefault)
		for {
			w.AddTextSprite(v, 0, 0, "s")
		}
	})
	w = testWorld()
	mustFatal(t, "Insufficient inputs", func() {
		for {
			w.NewInventoryView("", "", "", "Otto")
		}
	})
}

func TestBindInputsAndCheck(t *testing.T) {
	w := testWorld()
	otto := w.NewClue("Otto")
	vera := w.NewClue("Vera")
	wildcard := &Word{Clue: w.Wildcard()}

	a := w.NewInventoryView("", "", "", "Otto")
	b := w.NewInventoryView("", "", "", "Vera")
	c := w.NewInventoryView("", "", "", " Constable ")
	w.BindInputs(wildcard)

	if a.Input.Clue != otto || b.Input.Clue != vera || a.Input.Word != wildcard {
		t.Fatal("inputs not bound")
	}
	if c.Input.Clue != nil {
		t.Error("an unknown name leaves the box unbound")
	}
	if got := w.InputsCheck(); got != StatusIncomplete {
		t.Errorf("status = %v, want incomplete", got)
	}

	a.Input.Word = &Word{Clue: vera}
	b.Input.Word = &Word{Clue: vera}
	if got := w.InputsCheck(); got != StatusIncorrect {
		t.Errorf("status = %v, want incorrect", got)
	}
	a.Input.Word = &Word{Clue: otto}
	if got := w.InputsCheck(); got != StatusCorrect {
		t.Errorf("status = %v, want correct", got)
	}
}

func TestSpriteAnimation(t *testing.T) {
	s := Sprite{Frames: 3}
	var got []int
	for i := 0; i < 6; i++ {
		got = append(got, s.DrawFrame())
		s.Animate()
	}
	want := []int{0, 1, 2, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames %v, want %v", got, want)
		}
	}
	still := Sprite{Frames: 1}
	still.Animate()
	if still.Frame != 0 {
		t.Error("single-frame sprites do not animate")
	}
}
