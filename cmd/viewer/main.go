package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/zonegen/levels"
)

func main() {
	preset := flag.String("preset", levels.DefaultPreset, "config preset in levels/presets (basename, .yaml optional)")
	seed := flag.Uint64("seed", 0, "seed to show first (defaults to the preset seed)")
	sessionID := flag.String("session", "", "derive the seed from a session id")
	debug := flag.Bool("debug", false, "show the physics overlay and level info")
	watch := flag.Bool("watch", true, "regenerate when the preset file changes on disk")
	flag.Parse()

	cfg, err := levels.LoadConfig(*preset)
	if err != nil {
		log.Fatal(err)
	}
	seedSet := false
	flag.Visit(func(f *flag.Flag) { seedSet = seedSet || f.Name == "seed" })
	switch {
	case seedSet:
		cfg.Seed = *seed
	case *sessionID != "":
		cfg.Seed = levels.SeedFromString(*sessionID)
	}

	s, err := newSession(*preset, cfg)
	if err != nil {
		log.Fatal(err)
	}

	var watcher *levels.Watcher
	if *watch {
		watcher, err = levels.NewWatcher()
		if err != nil {
			log.Printf("preset hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("zonegen viewer")

	if err := ebiten.RunGame(NewViewer(s, watcher, *debug)); err != nil {
		log.Fatal(err)
	}
}
