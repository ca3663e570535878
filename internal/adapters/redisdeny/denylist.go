// Package redisdeny provides the Redis-backed token denylist.
// Session tokens are stateless, so logout works by remembering revoked token
// ids until the token would have expired anyway; Redis TTLs do the forgetting.
package redisdeny

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aerolink/charter-ops/internal/ports"
)

var _ ports.TokenDenylist = (*Denylist)(nil)

// Denylist records revoked token ids in Redis.
type Denylist struct {
	client redis.UniversalClient
	prefix string
}

// New creates a Denylist with the default key prefix.
func New(client redis.UniversalClient) *Denylist {
	return &Denylist{client: client, prefix: "revoked:"}
}

// NewWithPrefix creates a Denylist with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Denylist {
	return &Denylist{client: client, prefix: prefix}
}

// Revoke marks tokenID revoked for ttl. A non-positive ttl means the token
// is already past expiry and there is nothing to remember.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, err := d.client.Get(ctx, d.prefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	return true, nil
}
