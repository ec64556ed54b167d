// internal/oauth/state.go
package oauth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// stateTTL bounds how long a consent round-trip may take.
const stateTTL = 10 * time.Minute

// StateStore issues and consumes the single-use state nonce that ties a
// callback to the browser that started the flow.
type StateStore struct {
	client *redis.Client
}

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue creates a nonce and records it until the callback arrives.
func (s *StateStore) Issue(ctx context.Context, provider ProviderName) (string, error) {
	state := uuid.NewString()
	key := stateKey(provider, state)
	if err := s.client.Set(ctx, key, "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return state, nil
}

// Consume validates and deletes a nonce. Each state is good for one
// callback only.
func (s *StateStore) Consume(ctx context.Context, provider ProviderName, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	deleted, err := s.client.Del(ctx, stateKey(provider, state)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return deleted > 0, nil
}

func stateKey(provider ProviderName, state string) string {
	return fmt.Sprintf("oauth:state:%s:%s", provider, state)
}
