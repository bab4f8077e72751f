package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
	"github.com/samdwyer/cavecrawl/internal/world"
)

var (
	// ErrQuit is returned by actors when the player leaves mid-session.
	ErrQuit = errors.New("game: quit requested")
	// ErrGameOver is returned by Advance once the session is in a terminal state.
	ErrGameOver = errors.New("game: session is over")
)

// Game owns one world and one player for the length of a session.
type Game struct {
	world  *world.World
	player *entity.Player
	state  State
	rng    *rand.Rand
	logger *slog.Logger
	cfg    Config

	started bool
	current Turn
	run     RunLog
}

// New creates a game session. The player must stand on a tile of w.
func New(w *world.World, p *entity.Player, cfg Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", cfg.SessionID)

	return &Game{
		world:  w,
		player: p,
		state:  StatePlaying,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		cfg:    cfg,
		run:    resumeRunLog(cfg.SessionID, cfg.PriorRun),
	}
}

// World returns the session's world.
func (g *Game) World() *world.World { return g.world }

// Player returns the session's player.
func (g *Game) Player() *entity.Player { return g.player }

// State returns the current session state.
func (g *Game) State() State { return g.state }

// Current returns the turn most recently handed out.
func (g *Game) Current() Turn { return g.current }

// Start shows the intro of the player's room and resolves the first turn.
// Calling it again returns the current turn.
func (g *Game) Start(ctx context.Context) (Turn, error) {
	if g.started {
		return g.current, nil
	}
	g.started = true

	tile, err := g.world.Lookup(g.position())
	if err != nil {
		return Turn{}, err
	}
	return g.resolve(ctx, []string{tile.IntroText()}, !g.cfg.Resumed)
}

// Advance executes the offered action whose hotkey equals input and resolves
// the next turn. Input matching no offered hotkey re-prompts without
// consuming a turn.
func (g *Game) Advance(ctx context.Context, input string) (Turn, error) {
	if !g.started {
		if _, err := g.Start(ctx); err != nil {
			return Turn{}, err
		}
	}
	if g.state.Terminal() {
		return g.current, ErrGameOver
	}

	action, ok := g.match(input)
	if !ok {
		rejected := g.current
		rejected.Messages = nil
		rejected.Rejected = input
		return rejected, nil
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "action.execute")
	span.SetAttributes(
		attribute.String("session", g.cfg.SessionID),
		attribute.String("action", string(action.Kind)),
		attribute.Int("turn", g.current.Number),
	)
	defer span.End()

	var enemyHP int
	if action.Enemy != nil {
		enemyHP = action.Enemy.HP
	}

	msgs, err := action.Execute(g.world, g.player, g.rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logger.Error("action failed", "action", action.Kind, "error", err)
		return Turn{}, fmt.Errorf("execute %s: %w", action.Kind, err)
	}

	if action.Enemy != nil {
		g.run.DamageDealt += enemyHP - action.Enemy.HP
		if enemyHP > 0 && !action.Enemy.IsAlive() {
			g.run.EnemiesKilled[action.Enemy.Name]++
		}
	}
	g.logger.Debug("action executed", "action", action.Kind, "x", g.player.X, "y", g.player.Y)

	return g.resolve(ctx, msgs, true)
}

// Run drives the session with actor until it ends or the actor quits.
func (g *Game) Run(ctx context.Context, actor Actor) (State, error) {
	turn, err := g.Start(ctx)
	if err != nil {
		return g.state, err
	}

	for !turn.State.Terminal() {
		if err := ctx.Err(); err != nil {
			return g.state, err
		}
		input, err := actor.Choose(ctx, turn)
		if err != nil {
			return g.state, err
		}
		turn, err = g.Advance(ctx, input)
		if err != nil {
			return g.state, err
		}
	}

	return g.state, actor.Finish(ctx, turn)
}

// resolve runs the start-of-turn steps: look up the room, apply its effect,
// check for a terminal state and list the available actions.
func (g *Game) resolve(ctx context.Context, msgs []string, modify bool) (Turn, error) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.turn")
	defer span.End()

	tile, err := g.world.Lookup(g.position())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Turn{}, err
	}

	if modify {
		hp := g.player.HP
		msgs = append(msgs, tile.ModifyPlayer(g.player)...)
		if hp > g.player.HP {
			g.run.DamageTaken += hp - g.player.HP
		}
	}

	switch {
	case !g.player.IsAlive():
		g.finish(StateDead, tile)
	case g.player.Victory:
		g.finish(StateVictorious, tile)
	}

	turn := Turn{
		Number:    g.run.TurnsPlayed,
		State:     g.state,
		Messages:  msgs,
		At:        tile.At,
		TileKind:  tile.Kind,
		TileColor: tile.Color,
		HP:        g.player.HP,
		Gold:      g.player.Gold(),
	}
	if g.state == StatePlaying {
		turn.Actions = tile.AvailableActions(g.world)
		// A resumed session's first turn was counted before it was saved.
		if modify {
			g.run.TurnsPlayed++
		}
	}

	span.SetAttributes(
		attribute.String("session", g.cfg.SessionID),
		attribute.String("tile.kind", string(tile.Kind)),
		attribute.Int("player.hp", g.player.HP),
		attribute.String("state", g.state.String()),
		attribute.Int("actions", len(turn.Actions)),
	)

	g.current = turn
	return turn, nil
}

// finish moves the session into a terminal state and records the run.
func (g *Game) finish(state State, tile *world.Tile) {
	g.state = state
	g.run.Victory = state == StateVictorious
	g.run.GoldEarned = g.player.Gold()
	if state == StateDead {
		g.run.CauseOfDeath = causeOfDeath(tile)
	}

	g.logger.Info("session ended",
		"state", state.String(),
		"turns", g.run.TurnsPlayed,
		"damage_taken", g.run.DamageTaken,
	)
	if g.cfg.RunLogDir != "" {
		saveRunLog(g.cfg.RunLogDir, g.run, g.logger)
	}
}

// match finds the offered action bound to input.
func (g *Game) match(input string) (world.Action, bool) {
	for _, a := range g.current.Actions {
		if a.Hotkey == input {
			return a, true
		}
	}
	return world.Action{}, false
}

func (g *Game) position() world.Coord {
	return world.Coord{X: g.player.X, Y: g.player.Y}
}

func causeOfDeath(tile *world.Tile) string {
	if tile.Kind == world.KindEnemy && tile.Enemy != nil {
		return tile.Enemy.Name
	}
	return tile.Label
}
