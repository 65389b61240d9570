// Package redisdb implements the token denylist on Redis so revocations are
// shared across instances. Keys carry the revoked token's remaining lifetime
// as their TTL and vanish when the token itself would have expired.
package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/urbancanopy/auth-service/internal/auth"
)

var _ auth.Denylist = (*Denylist)(nil)

const keyPrefix = "auth:denylist:"

// Denylist stores revoked token IDs in Redis.
type Denylist struct {
	client redis.UniversalClient
}

// NewDenylist wraps an existing Redis client.
func NewDenylist(client redis.UniversalClient) *Denylist {
	return &Denylist{client: client}
}

// Revoke records the token ID for ttl. A non-positive ttl means the token is
// already expired and needs no entry.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID has an active revocation entry.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}
