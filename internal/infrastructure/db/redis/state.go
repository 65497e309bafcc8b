package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore provides one-time OAuth state tokens backed by Redis.
// Key format: oauth_state:<state>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue records a state token that expires after ttl.
func (s *StateStore) Issue(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(state), "1", ttl).Err()
}

// Consume deletes the state token and reports whether it existed. A state
// can only ever be consumed once; replays see false.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(state)).Result()
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return n > 0, nil
}

func (s *StateStore) key(state string) string {
	return "oauth_state:" + state
}
