// Package dossier is the engine of a point-and-click deduction game for a
// fixed 640×200, sixteen colour, four plane display.
//
// The engine draws into four software pages of planar memory, runs a scene
// graph of popups over a background, keeps a bank of discovered words and
// grades a fill-in-the-blanks story built from them. A periodic timer drives
// the music sequencer and sound effects and paces the game loop.
//
// # Quick start
//
// A game is an [Engine] built from a [Config]. The config names an
// [AssetSource], a content function that builds the scenes and the quiz
// definition:
//
//	e, err := dossier.NewEngine(dossier.Config{
//		Assets:  dossier.NewDirSource(os.DirFS("data")),
//		Content: buildScenes,
//		Quiz:    quiz,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := dossier.RunGame(ctx, e); err != nil {
//		fmt.Fprintln(os.Stderr, dossier.FormatFatal(err))
//	}
//
// [RunGame] opens an Ebitengine window and runs the game loop on its own
// goroutine. Built with the headless tag, or with [Config.Headless] and
// [Engine.Run], the engine runs without a window and waits tick the timer
// directly, which is how tests play whole sessions.
//
// # Pages
//
// [Display] holds four [Page]s: the visible front page, the quiz page, the
// sprite atlas with its cache of hotspot strips, and a scratch page that
// saves whatever a popup covers. Every drawing primitive works per plane,
// eight pixels to the byte, and positions in x are multiples of 8 wherever
// a whole byte is copied.
//
//	d.Text(dossier.PageFront, "Hello", 16, 20, 15, 0)
//	d.Fill(dossier.PageFront, 0, 0, 64, 8, 4, 12) // dithered red
//
// # Content
//
// Content is authored into a [World]: fixed-size arenas of [View], [Sprite],
// [Clue] and [InputBox]. A scene is an image view whose children are
// popups (text, images, fingerprints and character inventories) reached by
// clicking their hotspots, plus transitions to other scenes.
//
//	registry := w.NewImageView(`REGISTRY\REGISTRY.RMG`)
//	note := w.AddText(registry, 300, 52, "Someone forged a deed.", dossier.StyleHand)
//	w.AddClue(note, "forged", "", dossier.ClueVerb)
//
// Authored coordinates are relative to the parent popup until
// [World.Promote] turns them into screen space.
//
// # Fatal errors
//
// Content and capacity errors are fatal: the engine panics with a
// [*FatalError], [Engine.Run] recovers it, shuts audio, video and assets
// down in that order and returns it. [CatchFatal] does the same for any
// function, which is how tests assert on them.
package dossier
