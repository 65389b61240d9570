package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDenylist_RevokeAndCheck(t *testing.T) {
	t.Parallel()

	d := NewMemoryDenylist()
	defer d.Close()
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "token-1", time.Hour))

	revoked, err = d.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryDenylist_EntryExpires(t *testing.T) {
	t.Parallel()

	d := NewMemoryDenylist()
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "short-lived", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	revoked, err := d.IsRevoked(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked, "entry must lapse with the token it blocks")
}

func TestMemoryDenylist_NonPositiveTTL(t *testing.T) {
	t.Parallel()

	d := NewMemoryDenylist()
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "already-expired", -time.Second))

	revoked, err := d.IsRevoked(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryDenylist_CloseTwice(t *testing.T) {
	t.Parallel()

	d := NewMemoryDenylist()
	d.Close()
	d.Close()
}
