// lingotrail-server hosts the game over SSH. Build:
//
//	go build -o lingotrail-server ./cmd/server
//
// Usage:
//
//	./lingotrail-server [--config lingotrail.yml]
//
// Then connect:
//
//	ssh -p 2222 <your-name>@localhost
package main

import (
	"flag"
	"fmt"
	"os"

	"lingotrail/internal/config"
	"lingotrail/internal/game"
	"lingotrail/internal/progress"
	"lingotrail/internal/sshd"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
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
	srv := sshd.NewServer(cfg, logger, saveDir)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
