package sample

import (
	"bytes"
	"io"
	"testing"

	"github.com/phanxgames/dossier"
)

func TestImagesHaveWholeBytes(t *testing.T) {
	pack := Pack()
	for name := range Files() {
		if len(name) < 3 || name[len(name)-3] != 'R' {
			continue
		}
		w, h := pack.Dimensions(name)
		if w == 0 || h == 0 || w%8 != 0 {
			t.Errorf("%s is %dx%d", name, w, h)
		}
	}
}

func TestContentBuilds(t *testing.T) {
	err := dossier.CatchFatal(func() {
		pack := Pack()
		d := dossier.NewDisplay(nil)
		w := dossier.NewWorld(pack)
		bank := dossier.NewWordBank(d, nil, nil)
		wildcard := bank.Mark(w.Wildcard())

		s := Build(w)
		w.Promote(s.Registry)
		w.Promote(s.Archive)
		w.BindInputs(wildcard)

		if s.Constable.Input.Clue != nil {
			t.Error("the constable's box is a label")
		}
		for _, v := range []*dossier.View{s.Otto, s.Vera, s.Felix} {
			if v.Input.Clue == nil || v.Input.Clue.Text != v.ClueName {
				t.Errorf("%s box not bound", v.ClueName)
			}
		}
		if s.ToArchive.Destination() != s.Archive || s.ToRegistry.Destination() != s.Registry {
			t.Error("transitions")
		}

		q := dossier.NewQuiz(d, pack, dossier.NewAllocator(dossier.DefaultMemoryBudget, io.Discard), nil, w, bank, nil, Quiz())
		q.Init(wildcard)
		if n := len(q.Inputs()); n != 15 {
			t.Errorf("story has %d gaps, want 15", n)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWritePack(t *testing.T) {
	var data, index bytes.Buffer
	if err := WritePack(&data, &index); err != nil {
		t.Fatal(err)
	}
	entries, err := dossier.ParsePackIndex(&index)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(Files()) {
		t.Errorf("index has %d entries, want %d", len(entries), len(Files()))
	}
	pack := dossier.NewPack(bytes.NewReader(data.Bytes()), entries)
	if w, h := pack.Dimensions(RegistryImage); w != dossier.ScreenW || h != 169 {
		t.Errorf("registry %dx%d", w, h)
	}
}

func TestScoresAreWholeCommands(t *testing.T) {
	for _, score := range [][]byte{introScore(), loopScore()} {
		if len(score) == 0 || len(score)%dossier.MusicCommandSize != 0 {
			t.Errorf("score of %d bytes", len(score))
		}
	}
}
