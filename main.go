// lingotrail is a terminal adventure for picking up Czech words: walk the
// scene, read the dialogue, click the words you don't know yet.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"lingotrail/internal/config"
	"lingotrail/internal/game"
	"lingotrail/internal/progress"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	name := flag.String("name", "traveler", "player name stamped into saves")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	saveDir := cfg.Save.Dir
	if saveDir == "" {
		saveDir, err = progress.DefaultDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve data directory: %v\n", err)
			os.Exit(1)
		}
	}
	logger := game.NewLogger(cfg.Log, saveDir)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	g, err := game.New(screen, cfg, logger, *name, saveDir)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run()
}
