// Package sample is a small, fully procedural case for the dossier engine:
// two scenes, four characters, a story with twelve gaps and every asset the
// engine loads, generated in memory. The demo and the integration tests
// both play it.
package sample

import "github.com/phanxgames/dossier"

// Input names of the portrait boxes. The constable's matches no clue and
// shows as a label.
const (
	OttoInput      = "Otto"
	VeraInput      = "Vera"
	FelixInput     = "Felix"
	ConstableInput = " Constable "
)

// Scenes is the content built by Content, kept for tests and tools.
type Scenes struct {
	Registry, Archive *dossier.View

	Otto, Vera, Felix, Constable *dossier.View
	Desk, Receipt, Card          *dossier.View
	ToArchive, ToRegistry        *dossier.View
}

// Build fills w with the case and returns its views.
func Build(w *dossier.World) *Scenes {
	s := &Scenes{}
	s.Registry = w.NewImageView(RegistryImage)
	s.Archive = w.NewImageView(ArchiveImage)
	buildRegistry(w, s)
	buildArchive(w, s)
	s.ToArchive = w.AddTransition(s.Registry, 618, 78, s.Archive)
	s.ToRegistry = w.AddTransition(s.Archive, 11, 78, s.Registry)
	return s
}

// Content is a Config.Content function starting in the registry.
func Content(w *dossier.World) []*dossier.View {
	s := Build(w)
	return []*dossier.View{s.Registry, s.Archive}
}

func buildRegistry(w *dossier.World, s *Scenes) {
	s.Otto = w.AddInventory(s.Registry, 100, 60, OttoItem, OttoPortrait,
		"I am Otto, registrar here.\nVera keeps the stamp on\nher desk. I never touch it.", OttoInput)
	w.AddClue(s.Otto, "Otto", "", dossier.CluePerson)
	w.AddClue(s.Otto, "stamp", "", dossier.ClueNoun)
	w.AddClue(s.Otto, "desk", "", dossier.ClueNoun)

	s.Receipt = w.AddTextItem(s.Otto, 0, "Receipt: ten crowns\npaid out of the till.", dossier.StyleHand)
	w.AddClue(s.Receipt, "paid", "", dossier.ClueVerb)

	s.Desk = w.AddView(s.Registry, 300, 52, w.NewImageView(DeskImage))
	note := w.AddText(s.Desk, 152, 40, "The registry seal.\nSomeone forged a deed\nwith it last night.", dossier.StyleDefault)
	w.AddClue(note, "forged", "", dossier.ClueVerb)
	w.AddClue(note, "deed", "", dossier.ClueNoun)
}

func buildArchive(w *dossier.World, s *Scenes) {
	s.Vera = w.AddInventory(s.Archive, 220, 70, "", VeraPortrait,
		"Vera. I keep the ledger in\nthe cabinet and I hold the\nonly key.", VeraInput)
	w.AddClue(s.Vera, "Vera", "", dossier.CluePerson)
	w.AddClue(s.Vera, "ledger", "", dossier.ClueNoun)
	w.AddClue(s.Vera, "cabinet", "", dossier.ClueNoun)
	w.AddClue(s.Vera, "key", "", dossier.ClueNoun)

	s.Felix = w.AddInventory(s.Archive, 380, 70, FelixItem, FelixPortrait,
		"Felix, clerk. Somebody burned\npapers in the stove last night.", FelixInput)
	w.AddClue(s.Felix, "Felix", "", dossier.CluePerson)
	w.AddClue(s.Felix, "burned", "", dossier.ClueVerb)
	w.AddTextItem(s.Felix, 0, "A purse heavy with\nfresh coins.", dossier.StyleHand)

	s.Constable = w.AddInventory(s.Archive, 500, 80, "No evidence.", ConstablePortrait,
		"Constable Brandt. Mind the\nfingerprint card by the door.", ConstableInput)

	gap := w.AddText(s.Archive, 120, 40, "A gap in the files:\none entry was hidden.", dossier.StyleJagged)
	w.AddClue(gap, "hidden", "", dossier.ClueVerb)

	s.Card = w.AddText(s.Archive, 60, 120, "Fingerprint card\n\n\n\n", dossier.StylePrint)
	for i, name := range prints {
		w.AddView(s.Card, 24+i*24, 24, w.NewFingerprintView(name))
	}
}

// Gap names, indexed by the byte after each '[' in the story.
var gaps = []string{
	"Otto", "Vera", "forged", "deed", "stamp", "Felix",
	"paid", "ledger", "hidden", "cabinet", "key", "burned",
}

var story = []string{
	"The registrars [\x00________] and [\x01________] kept the deeds of the town.",
	"One night [\x01________] [\x02________] a [\x03________] with the registry [\x04________].",
	"",
	"[\x05________] was [\x06________] to keep quiet about it.",
	"The [\x07________] was [\x08________] in the [\x09________], locked with a [\x0a________].",
	"",
	"When Otto found out, [\x01________] [\x0b________] the [\x07________] in the stove.",
}

// Quiz returns the story of the case. The two registrars may be named in
// either order and the ledger may also be said to lie in the desk.
func Quiz() dossier.QuizDefinition {
	return dossier.QuizDefinition{
		Story:       story,
		Gaps:        gaps,
		EitherOrder: [][2]int{{0, 1}},
		AnyOf:       map[int][]string{10: {"desk"}},
		Solution: "Vera forged a deed with the registry stamp\n" +
			"and paid Felix for his silence. She hid the\n" +
			"ledger in the cabinet and, once Otto began\n" +
			"asking questions, burned it in the stove.\n\n" +
			"Otto was honest all along.",
		Portraits: []dossier.Portrait{
			{Image: VeraSolution, X: 16, Y: 38, Name: "Vera", NameX: 40, NameY: 106},
			{Image: OttoSolution, X: 536, Y: 38, Name: "Otto", NameX: 560, NameY: 106},
		},
	}
}

// Title returns the title screen.
func Title() dossier.TitleScreen {
	return dossier.TitleScreen{
		Image: TitleImage,
		Lines: []dossier.TitleLine{
			{Text: "  THE  REGISTRY  AFFAIR   ", Y: 16},
			{Text: "  Click to open the case  ", Y: 160},
			{Text: "     ESC leaves it shut   ", Y: 174},
		},
	}
}

// Config returns an engine configuration playing the sample case from src.
func Config(src dossier.AssetSource) dossier.Config {
	return dossier.Config{
		Title:       "The Registry Affair",
		Assets:      src,
		Content:     Content,
		Quiz:        Quiz(),
		TitleScreen: Title(),
	}
}
