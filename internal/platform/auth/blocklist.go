package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlocklist records revoked token IDs in Redis until their natural expiry.
// Logout adds the access token's jti; the auth middleware rejects blocked tokens.
type TokenBlocklist struct {
	client *redis.Client
}

// NewTokenBlocklist creates a blocklist backed by the given Redis client.
func NewTokenBlocklist(client *redis.Client) *TokenBlocklist {
	return &TokenBlocklist{client: client}
}

func blocklistKey(jti string) string {
	return "auth:revoked:" + jti
}

// Revoke marks a token ID as revoked until it would have expired anyway.
func (b *TokenBlocklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blocklistKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked.
// Redis errors fail open: an unreachable blocklist must not lock everyone out.
func (b *TokenBlocklist) IsRevoked(ctx context.Context, jti string) bool {
	n, err := b.client.Exists(ctx, blocklistKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
