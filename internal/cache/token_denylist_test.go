package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenDenylistRevoke(t *testing.T) {
	rc, _ := newTestRedis(t)
	denylist := NewTokenDenylist(rc)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTokenDenylistExpiredTokenNotStored(t *testing.T) {
	rc, mr := newTestRedis(t)
	denylist := NewTokenDenylist(rc)

	// A token past its own expiry needs no denylist entry.
	require.NoError(t, denylist.Revoke(context.Background(), "jti-old", -time.Minute))
	assert.False(t, mr.Exists("session:revoked:jti-old"))
}
