package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps snapshots in a PostgreSQL table as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to connectionString and creates the saves
// table if needed.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	if connectionString == "" {
		return nil, errors.New("save: postgres store needs a database url")
	}
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("save: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cavecrawl_saves (
		slot TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		state JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.ExecContext(ctx, schema)
	return err
}

// Save upserts s under slot.
func (ps *PostgresStore) Save(ctx context.Context, slot string, s SessionState) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO cavecrawl_saves (slot, session_id, state)
	VALUES ($1, $2, $3)
	ON CONFLICT (slot)
	DO UPDATE SET session_id = $2, state = $3, updated_at = NOW()
	`
	if _, err := ps.db.ExecContext(ctx, query, slot, s.ID, string(data)); err != nil {
		return fmt.Errorf("save: store slot %s: %w", slot, err)
	}
	return nil
}

// Load returns the snapshot in slot or ErrNotFound.
func (ps *PostgresStore) Load(ctx context.Context, slot string) (SessionState, error) {
	var raw []byte
	err := ps.db.QueryRowContext(ctx, `SELECT state FROM cavecrawl_saves WHERE slot = $1`, slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionState{}, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	if err != nil {
		return SessionState{}, fmt.Errorf("save: load slot %s: %w", slot, err)
	}
	return Decode(raw)
}

// Delete removes slot.
func (ps *PostgresStore) Delete(ctx context.Context, slot string) error {
	if _, err := ps.db.ExecContext(ctx, `DELETE FROM cavecrawl_saves WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("save: delete slot %s: %w", slot, err)
	}
	return nil
}

// Close closes the database handle.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
