package save

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisKeyPrefix namespaces snapshot keys.
const RedisKeyPrefix = "cavecrawl:save:"

// RedisStore keeps each slot as a JSON string value.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("save: redis store needs an address")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("save: connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func redisKey(slot string) string {
	return RedisKeyPrefix + slot
}

// Save stores s under slot with no expiry.
func (rs *RedisStore) Save(ctx context.Context, slot string, s SessionState) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := rs.client.Set(ctx, redisKey(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("save: store slot %s: %w", slot, err)
	}
	return nil
}

// Load returns the snapshot in slot or ErrNotFound.
func (rs *RedisStore) Load(ctx context.Context, slot string) (SessionState, error) {
	raw, err := rs.client.Get(ctx, redisKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return SessionState{}, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	if err != nil {
		return SessionState{}, fmt.Errorf("save: load slot %s: %w", slot, err)
	}
	return Decode(raw)
}

// Delete removes slot.
func (rs *RedisStore) Delete(ctx context.Context, slot string) error {
	if err := rs.client.Del(ctx, redisKey(slot)).Err(); err != nil {
		return fmt.Errorf("save: delete slot %s: %w", slot, err)
	}
	return nil
}

// Close closes the client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
