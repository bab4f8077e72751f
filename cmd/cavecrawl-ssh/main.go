// cavecrawl-ssh serves cavecrawl over SSH, one game per connection.
//
// Usage:
//
//	cavecrawl-ssh [-config cavecrawl.yaml] [-port 2222] [-key host_key]
//
// Connect with:
//
//	ssh -p 2222 yourname@localhost
//
// Reconnecting with the same user name resumes a game left with Escape.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cavecrawl/internal/config"
	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/session"
	"github.com/samdwyer/cavecrawl/internal/sshd"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
)

func main() {
	configPath := flag.String("config", os.Getenv(config.PathEnv), "Path to the YAML config file")
	port := flag.Int("port", 0, "SSH server port (overrides ssh.port)")
	keyFile := flag.String("key", "", "PEM host key path, generated if absent (overrides ssh.host_key)")
	mapPath := flag.String("map", "", "Tab-separated map file (defaults to the built-in cave)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	telemetry.SetupHoneycombEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.SSH.Port = *port
	}
	if *keyFile != "" {
		cfg.SSH.HostKey = *keyFile
	}
	if *mapPath != "" {
		cfg.Game.MapPath = *mapPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{Enabled: cfg.Telemetry.Enabled, Frontend: "ssh"})
	if err != nil {
		logger.Warn("telemetry setup failed", "error", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown", "error", err)
			}
		}()
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	runLogDir, err := game.DefaultRunLogDir()
	if err != nil {
		logger.Warn("run log disabled", "error", err)
	}

	launcher := &session.Launcher{
		Catalog:   catalog,
		Config:    cfg,
		Logger:    logger,
		RunLogDir: runLogDir,
	}
	store, err := session.OpenStore(ctx, cfg)
	if err != nil {
		logger.Warn("saves disabled", "error", err)
	} else {
		launcher.Store = store
		defer store.Close()
	}

	// Fail fast on a broken map rather than on the first connection.
	if _, err := launcher.LoadWorld(ctx); err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	signer, err := sshd.LoadOrCreateHostKey(cfg.SSH.HostKey, logger)
	if err != nil {
		log.Fatalf("Failed to load host key: %v", err)
	}

	srv := (&sshd.Server{Launcher: launcher, Logger: logger}).Listener(fmt.Sprintf(":%d", cfg.SSH.Port), signer)
	logger.Info("cavecrawl SSH server listening", "port", cfg.SSH.Port, "backend", cfg.Save.Backend)
	log.Fatal(srv.ListenAndServe())
}
