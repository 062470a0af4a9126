package cache

import (
	"context"
	"fmt"
	"time"
)

// TokenDenylist tracks revoked session tokens by their jti. Entries only
// need to live as long as the token itself, so they are stored with the
// token's remaining lifetime as TTL.
type TokenDenylist struct {
	redis *RedisClient
}

// NewTokenDenylist creates a TokenDenylist.
func NewTokenDenylist(redisClient *RedisClient) *TokenDenylist {
	return &TokenDenylist{redis: redisClient}
}

func (d *TokenDenylist) key(jti string) string {
	return fmt.Sprintf("session:revoked:%s", jti)
}

// Revoke marks a token ID as signed out.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	return d.redis.Set(ctx, d.key(jti), "1", remaining)
}

// IsRevoked reports whether a token ID has been signed out.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return d.redis.Exists(ctx, d.key(jti))
}
