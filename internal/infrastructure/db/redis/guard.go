package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 10 * time.Minute

// SubmitGuard rejects duplicate booking-request submissions backed by Redis.
// Key format: reqguard:<client_id>:<tour_id>
type SubmitGuard struct {
	client *redis.Client
}

// NewSubmitGuard creates a SubmitGuard wrapping the given Redis client.
func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{client: client}
}

// IsDuplicate reports whether this client already submitted a request for
// this tour within the guard TTL.
func (g *SubmitGuard) IsDuplicate(ctx context.Context, clientID, tourID string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(clientID, tourID)).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission (expires after guardTTL).
func (g *SubmitGuard) Mark(ctx context.Context, clientID, tourID string) error {
	return g.client.Set(ctx, g.key(clientID, tourID), "1", guardTTL).Err()
}

func (g *SubmitGuard) key(clientID, tourID string) string {
	return fmt.Sprintf("reqguard:%s:%s", clientID, tourID)
}
