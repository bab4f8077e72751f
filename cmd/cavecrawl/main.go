// Package main is the local entry point for cavecrawl.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cavecrawl/internal/config"
	"github.com/samdwyer/cavecrawl/internal/console"
	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/session"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
	"github.com/samdwyer/cavecrawl/internal/ui"
)

func main() {
	configPath := flag.String("config", os.Getenv(config.PathEnv), "Path to the YAML config file")
	mapPath := flag.String("map", "", "Tab-separated map file (defaults to the built-in cave)")
	plain := flag.Bool("plain", false, "Play in line mode instead of full screen")
	slot := flag.String("slot", "", "Save slot to resume and save into")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	telemetry.SetupHoneycombEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mapPath != "" {
		cfg.Game.MapPath = *mapPath
	}

	ctx := context.Background()

	frontend := "tui"
	if *plain {
		frontend = "console"
	}
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{Enabled: cfg.Telemetry.Enabled, Frontend: frontend})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	runLogDir, err := game.DefaultRunLogDir()
	if err != nil {
		log.Printf("Note: run log disabled: %v", err)
	}
	logger, closeLog := newLogger(runLogDir)
	defer closeLog()

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	launcher := &session.Launcher{
		Catalog:   catalog,
		Config:    cfg,
		Logger:    logger,
		RunLogDir: runLogDir,
	}

	store, err := session.OpenStore(ctx, cfg)
	if err != nil {
		log.Printf("Warning: saves disabled: %v", err)
	} else {
		launcher.Store = store
		defer store.Close()
	}

	sess, err := launcher.Open(ctx, *slot, *seed)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	state, err := play(ctx, launcher, sess, *plain)
	if err != nil {
		log.Fatalf("Game error: %v", err)
	}
	if state == game.StatePlaying && launcher.Store != nil {
		fmt.Printf("Game saved. Resume with: cavecrawl -slot %s\n", sess.Slot)
	}
}

func play(ctx context.Context, l *session.Launcher, sess *session.Session, plain bool) (game.State, error) {
	if plain {
		return l.Play(ctx, sess, console.New(os.Stdin, os.Stdout))
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return game.StatePlaying, fmt.Errorf("initialize screen: %w", err)
	}
	defer screen.Close()
	return l.Play(ctx, sess, ui.NewActor(screen))
}

// newLogger writes structured logs to cavecrawl.log in dir. Logging to the
// terminal would corrupt the game screen.
func newLogger(dir string) (*slog.Logger, func()) {
	if dir == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "cavecrawl.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}
