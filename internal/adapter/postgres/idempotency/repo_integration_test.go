package idempotency_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/idempotency"
	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

func TestIdempotencyRepo_Integration_TTLExpiry(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	clock := func() time.Time { return now }
	repo := idempotency.New(pool, 10*time.Minute, idempotency.WithClock(clock))

	key := "ttl-" + testhelper.UniqueSuffix()
	require.NoError(t, repo.AddIdempotencyKey(ctx, key, "act"))

	exists, err := repo.IdempotencyKeyExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists, "key should be live right after it is added")

	now = now.Add(10*time.Minute + time.Second)

	exists, err = repo.IdempotencyKeyExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists, "key should be expired after the TTL")

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
	assert.Equal(t, 0, testhelper.CountRows(t, pool, "idempotency_keys", "idempotency_key = $1", key))
}

func TestIdempotencyRepo_Integration_DuplicateFails(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := idempotency.New(pool, time.Hour)

	key := "dup-" + testhelper.UniqueSuffix()
	require.NoError(t, repo.AddIdempotencyKey(ctx, key, "act"))

	err := repo.AddIdempotencyKey(ctx, key, "act")
	require.ErrorIs(t, err, domain.ErrInternal)

	// The same key under another action is a separate row.
	require.NoError(t, repo.AddIdempotencyKey(ctx, key, "other"))
}

func TestIdempotencyRepo_Integration_ExpiredKeyCanBeReused(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	clock := func() time.Time { return now }
	repo := idempotency.New(pool, 10*time.Minute, idempotency.WithClock(clock))

	key := "reuse-" + testhelper.UniqueSuffix()
	require.NoError(t, repo.AddIdempotencyKey(ctx, key, "act"))

	now = now.Add(10*time.Minute + time.Second)
	require.NoError(t, repo.AddIdempotencyKey(ctx, key, "act"), "expired row must not block a new add")

	exists, err := repo.IdempotencyKeyExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists, "re-added key should be live again")
	assert.Equal(t, 1, testhelper.CountRows(t, pool, "idempotency_keys", "idempotency_key = $1", key))

	err = repo.AddIdempotencyKey(ctx, key, "act")
	require.ErrorIs(t, err, domain.ErrInternal, "a live duplicate still fails")
}
