// dossier plays the sample case. Flags switch on the debug overlay, run a
// test script headless, or export the generated assets and tools output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/hako/durafmt"
	"github.com/phanxgames/dossier"
	"github.com/phanxgames/dossier/sample"
)

const (
	packName  = "DOSSIER.PAK"
	indexName = "DOSSIER.IDX"
)

func main() {
	var (
		debug     = flag.Bool("debug", false, "enable debug keys and the memory overlay")
		mute      = flag.Bool("mute", false, "do not open the sound device")
		headless  = flag.Bool("headless", false, "run without a window (needs -script)")
		script    = flag.String("script", "", "JSON test script to drive the input")
		shots     = flag.String("shots", "screenshots", "directory for script screenshots")
		assets    = flag.String("assets", "", "load assets from this directory instead of the built-in case")
		export    = flag.String("export", "", "write the built-in case as a pack into this directory and exit")
		dumpMusic = flag.String("dumpMusic", "", "render the score to this WAV file and exit")
		dumpGraph = flag.Bool("dumpGraph", false, "print the first scene as a Graphviz digraph and exit")
		stats     = flag.Bool("stats", false, "serve runtime statistics (statsview builds only)")
		scale     = flag.Int("scale", 2, "window scale")
	)
	flag.Parse()

	switch {
	case *export != "":
		if err := exportPack(*export); err != nil {
			log.Fatal(err)
		}
		return
	case *dumpMusic != "":
		if err := writeMusic(*dumpMusic); err != nil {
			log.Fatal(err)
		}
		return
	}

	src, err := openAssets(*assets)
	if err != nil {
		log.Fatal(err)
	}
	if *dumpGraph {
		w := dossier.NewWorld(src)
		dossier.DumpSceneGraph(os.Stdout, sample.Build(w).Registry)
		return
	}
	if *stats {
		launchStats()
	}

	var p progress
	cfg := sample.Config(src)
	cfg.Debug = *debug
	cfg.Mute = *mute
	cfg.Headless = *headless
	cfg.Scale = *scale
	cfg.ScreenshotDir = *shots
	cfg.Store = dossier.GameStoreFunc(p.record)

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatal(err)
		}
		runner, err := dossier.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Script = runner
	} else if *headless {
		log.Fatal("-headless needs -script")
	}

	e, err := dossier.NewEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if *headless {
		err = e.Run(ctx)
	} else {
		err = dossier.RunGame(ctx, e)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, dossier.FormatFatal(err))
		os.Exit(1)
	}

	fmt.Printf("story %v, portraits %v, clues %d, solved %v, played %s\n",
		p.story, p.portraits, p.clues, p.completed,
		durafmt.Parse(time.Since(start)).LimitFirstN(2))
	if cfg.Script != nil {
		for _, s := range cfg.Script.Shots {
			fmt.Println(s)
		}
	}
}

// progress tallies the events of a run for the closing summary.
type progress struct {
	story, portraits dossier.Status
	clues            int
	completed        bool
}

func (p *progress) record(ev dossier.GameEvent) {
	switch ev.Type {
	case dossier.EventClueMarked:
		p.clues++
	case dossier.EventStatusChanged:
		if ev.Channel == dossier.ChannelStory {
			p.story = ev.Status
		} else {
			p.portraits = ev.Status
		}
	case dossier.EventCompleted:
		p.completed = true
	}
}

// openAssets returns the built-in case, or the pack or loose files in dir.
func openAssets(dir string) (dossier.AssetSource, error) {
	if dir == "" {
		return sample.Pack(), nil
	}
	fsys := os.DirFS(dir)
	if _, err := os.Stat(filepath.Join(dir, packName)); err == nil {
		pack, err := dossier.OpenPack(fsys, packName, indexName)
		if err != nil {
			return nil, err
		}
		return pack, nil
	}
	return dossier.NewDirSource(fsys), nil
}

func exportPack(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	pack, err := os.Create(filepath.Join(dir, packName))
	if err != nil {
		return err
	}
	defer pack.Close()
	index, err := os.Create(filepath.Join(dir, indexName))
	if err != nil {
		return err
	}
	defer index.Close()
	return sample.WritePack(pack, index)
}

func writeMusic(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	files := sample.Files()
	return dossier.DumpMusicWAV(f, files[dossier.MusicIntro], files[dossier.MusicLoop], 30)
}
