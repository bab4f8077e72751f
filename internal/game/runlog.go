package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics for one session, from start to death or victory.
type RunLog struct {
	Timestamp     time.Time      `json:"timestamp"`
	SessionID     string         `json:"session_id,omitempty"`
	Victory       bool           `json:"victory"`
	TurnsPlayed   int            `json:"turns_played"`
	EnemiesKilled map[string]int `json:"enemies_killed"`
	DamageDealt   int            `json:"damage_dealt"`
	DamageTaken   int            `json:"damage_taken"`
	GoldEarned    int            `json:"gold_earned"`
	CauseOfDeath  string         `json:"cause_of_death,omitempty"`
}

func newRunLog(sessionID string) RunLog {
	return RunLog{
		Timestamp:     time.Now().UTC(),
		SessionID:     sessionID,
		EnemiesKilled: make(map[string]int),
	}
}

// resumeRunLog continues prior, keeping its start time, or starts a new log
// when prior is nil.
func resumeRunLog(sessionID string, prior *RunLog) RunLog {
	if prior == nil {
		return newRunLog(sessionID)
	}
	rl := *prior
	rl.SessionID = sessionID
	rl.EnemiesKilled = make(map[string]int, len(prior.EnemiesKilled))
	for name, n := range prior.EnemiesKilled {
		rl.EnemiesKilled[name] = n
	}
	return rl
}

// Stats returns the statistics gathered so far.
func (g *Game) Stats() RunLog { return g.run }

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Errors are logged but never end the session.
func saveRunLog(dir string, rl RunLog, logger *slog.Logger) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("run log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("run log: cannot open file", "error", err)
		return
	}
	defer f.Close()

	data, err := json.Marshal(rl)
	if err != nil {
		logger.Warn("run log: cannot marshal JSON", "error", err)
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		logger.Warn("run log: write failed", "error", err)
	}
}

// DefaultRunLogDir returns the directory where run logs are stored.
// Uses $XDG_DATA_HOME/cavecrawl,
// defaulting to ~/.local/share/cavecrawl.
func DefaultRunLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cavecrawl"), nil
}
