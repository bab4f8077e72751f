// Package session assembles playable games from configuration: it loads
// the map, places the player, resumes saved slots and saves on quit.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/samdwyer/cavecrawl/internal/config"
	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/save"
	"github.com/samdwyer/cavecrawl/internal/world"
)

// ErrNoStart is returned when neither the configuration nor the map names a
// starting position.
var ErrNoStart = errors.New("session: no starting position")

// Launcher creates sessions. Store may be nil, in which case nothing is
// saved or resumed.
type Launcher struct {
	Catalog   *gamedata.Catalog
	Config    *config.Config
	Store     save.Store
	Logger    *slog.Logger
	RunLogDir string
}

// Session is one game together with the slot it saves to.
type Session struct {
	ID      string
	Slot    string
	Resumed bool
	Game    *game.Game
}

// LoadWorld builds a fresh world from the configured map, or from the
// embedded map when none is configured.
func (l *Launcher) LoadWorld(ctx context.Context) (*world.World, error) {
	var r io.Reader
	if path := l.Config.Game.MapPath; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open map: %w", err)
		}
		defer f.Close()
		r = f
	} else {
		def, err := gamedata.DefaultMap()
		if err != nil {
			return nil, err
		}
		r = def
	}

	w, err := world.Build(ctx, r, l.Catalog)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return w, nil
}

// StartCoord picks the configured start, else the map's first starting room.
func (l *Launcher) StartCoord(w *world.World) (world.Coord, error) {
	if s := l.Config.Game.Start; s != nil {
		return world.Coord{X: s.X, Y: s.Y}, nil
	}
	if at, ok := w.StartingCoord(); ok {
		return at, nil
	}
	return world.Coord{}, ErrNoStart
}

// Open resumes slot if the store holds it, otherwise starts a new game that
// will save to slot. An empty slot saves under the session ID.
func (l *Launcher) Open(ctx context.Context, slot string, seed int64) (*Session, error) {
	if slot != "" && l.Store != nil {
		snap, err := l.Store.Load(ctx, slot)
		switch {
		case err == nil:
			return l.resume(slot, snap, seed)
		case !errors.Is(err, save.ErrNotFound):
			return nil, err
		}
	}

	w, err := l.LoadWorld(ctx)
	if err != nil {
		return nil, err
	}
	start, err := l.StartCoord(w)
	if err != nil {
		return nil, err
	}
	if w.TileAt(start) == nil {
		return nil, &world.MissingTileError{At: start}
	}

	id := save.NewSessionID()
	if slot == "" {
		slot = id
	}
	p := entity.NewPlayer(start.X, start.Y, entity.StartingInventory())
	return &Session{
		ID:   id,
		Slot: slot,
		Game: game.New(w, p, l.gameConfig(id, seed, false)),
	}, nil
}

func (l *Launcher) resume(slot string, snap save.SessionState, seed int64) (*Session, error) {
	w, p, err := save.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("resume slot %s: %w", slot, err)
	}
	l.logger().Info("session resumed", "slot", slot, "session", snap.ID)
	return &Session{
		ID:      snap.ID,
		Slot:    slot,
		Resumed: true,
		Game:    game.New(w, p, l.resumeConfig(snap, seed)),
	}, nil
}

// saveTimeout bounds a save made after the session's context has ended.
const saveTimeout = 5 * time.Second

// Play runs s with actor. Quitting or a cancelled context (a dropped
// connection) saves the session to its slot and is not an error; a finished
// session clears its slot.
func (l *Launcher) Play(ctx context.Context, s *Session, actor game.Actor) (game.State, error) {
	state, err := s.Game.Run(ctx, actor)
	switch {
	case errors.Is(err, game.ErrQuit), errors.Is(err, context.Canceled):
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		defer cancel()
		return state, l.save(saveCtx, s)
	case err != nil:
		return state, err
	}

	if l.Store != nil && s.Resumed {
		if err := l.Store.Delete(ctx, s.Slot); err != nil {
			l.logger().Warn("clear finished slot", "slot", s.Slot, "error", err)
		}
	}
	return state, nil
}

func (l *Launcher) save(ctx context.Context, s *Session) error {
	if l.Store == nil {
		return nil
	}
	snap := save.Snapshot(s.ID, s.Game.World(), s.Game.Player())
	stats := s.Game.Stats()
	snap.Run = &stats
	if err := l.Store.Save(ctx, s.Slot, snap); err != nil {
		return fmt.Errorf("save slot %s: %w", s.Slot, err)
	}
	l.logger().Info("session saved", "slot", s.Slot, "session", s.ID)
	return nil
}

func (l *Launcher) gameConfig(id string, seed int64, resumed bool) game.Config {
	if seed == 0 {
		seed = l.Config.Game.Seed
	}
	return game.Config{
		Seed:      seed,
		SessionID: id,
		Resumed:   resumed,
		RunLogDir: l.RunLogDir,
		Logger:    l.logger(),
	}
}

func (l *Launcher) resumeConfig(snap save.SessionState, seed int64) game.Config {
	cfg := l.gameConfig(snap.ID, seed, true)
	cfg.PriorRun = snap.Run
	return cfg
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// OpenStore opens the save store selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config) (save.Store, error) {
	return save.Open(ctx, save.Options{
		Backend:       cfg.Save.Backend,
		Dir:           cfg.Save.Dir,
		DatabaseURL:   cfg.Save.DatabaseURL,
		RedisAddress:  cfg.Save.Redis.Address,
		RedisPassword: cfg.Save.Redis.Password,
		RedisDB:       cfg.Save.Redis.DB,
	})
}
