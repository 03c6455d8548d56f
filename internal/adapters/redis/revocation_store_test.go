package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-sp/coresso-portal/internal/testutil"
)

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.TeardownTestRedis(t, client)

	store := NewRevocationStore(client)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked, "unknown token ID must not read as revoked")

	require.NoError(t, store.Revoke(ctx, jti, time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationStore_ExpiredTokenIsNoop(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.TeardownTestRedis(t, client)

	store := NewRevocationStore(client)
	ctx := context.Background()
	jti := uuid.NewString()

	// A token already past its expiry needs no denylist entry.
	require.NoError(t, store.Revoke(ctx, jti, time.Now().Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	exists, err := client.Exists(ctx, "revoked:"+jti).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestRevocationStore_EmptyTokenID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.TeardownTestRedis(t, client)

	store := NewRevocationStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "", time.Now().Add(time.Hour))
	assert.Error(t, err)

	revoked, err := store.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.TeardownTestRedis(t, client)

	store := NewRevocationStoreWithPrefix(client, "portal:denylist:")
	ctx := context.Background()
	jti := uuid.NewString()

	require.NoError(t, store.Revoke(ctx, jti, time.Now().Add(time.Hour)))

	exists, err := client.Exists(ctx, "portal:denylist:"+jti).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, exists)

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationStore_EntryExpiresWithToken(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer testutil.TeardownTestRedis(t, client)

	store := NewRevocationStore(client)
	ctx := context.Background()
	jti := uuid.NewString()

	require.NoError(t, store.Revoke(ctx, jti, time.Now().Add(time.Hour)))

	ttl, err := client.TTL(ctx, "revoked:"+jti).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}
