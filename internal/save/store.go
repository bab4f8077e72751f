package save

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when a slot holds no snapshot.
var ErrNotFound = errors.New("save: slot not found")

// Store keeps snapshots by slot name.
type Store interface {
	Save(ctx context.Context, slot string, s SessionState) error
	Load(ctx context.Context, slot string) (SessionState, error)
	Delete(ctx context.Context, slot string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a Store backend.
type Options struct {
	Backend       string
	Dir           string
	DatabaseURL   string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

// Open returns the store selected by opts.Backend. An empty backend means
// the JSON file store.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch opts.Backend {
	case "", BackendJSON:
		store, err = NewJSONStore(opts.Dir)
	case BackendPostgres:
		store, err = NewPostgresStore(ctx, opts.DatabaseURL)
	case BackendRedis:
		store, err = NewRedisStore(ctx, opts.RedisAddress, opts.RedisPassword, opts.RedisDB)
	default:
		return nil, fmt.Errorf("save: unknown backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func validSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return errors.New("save: empty slot name")
	}
	return nil
}
