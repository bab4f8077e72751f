package game

import "log/slog"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible flee directions.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// SessionID tags logs, spans and run log entries.
	SessionID string

	// Resumed marks a session restored from a snapshot. The first turn then
	// skips the room effect, which already ran before the snapshot was taken.
	Resumed bool

	// PriorRun carries the statistics of a resumed session so its run log
	// covers the whole game. Nil starts fresh.
	PriorRun *RunLog

	// RunLogDir receives runs.jsonl when the session ends. Empty disables it.
	RunLogDir string

	// Logger receives structured game logs. Nil means slog.Default().
	Logger *slog.Logger
}
