package data

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheRepoForTest(t *testing.T) (*RedisCacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCacheRepo(client), mr
}

func TestRedisCacheRepoSetGet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCacheRepoForTest(t)

	err := repo.Set(ctx, "job_summary:job-1", []byte(`{"title":"Backend Engineer"}`), 5*time.Minute)
	require.NoError(t, err)

	value, err := repo.Get(ctx, "job_summary:job-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"title":"Backend Engineer"}`), value)
}

func TestRedisCacheRepoGetMissingKey(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCacheRepoForTest(t)

	value, err := repo.Get(ctx, "job_summary:absent")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRedisCacheRepoTTLExpiry(t *testing.T) {
	ctx := context.Background()
	repo, mr := newCacheRepoForTest(t)

	err := repo.Set(ctx, "notif_unread:user-1", []byte("3"), 30*time.Second)
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	value, err := repo.Get(ctx, "notif_unread:user-1")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRedisCacheRepoDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCacheRepoForTest(t)

	require.NoError(t, repo.Set(ctx, "job_summary:job-1", []byte("x"), time.Minute))

	deleted, err := repo.Delete(ctx, "job_summary:job-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "job_summary:job-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRedisCacheRepoEmptyKey(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCacheRepoForTest(t)

	assert.Error(t, repo.Set(ctx, "", []byte("x"), time.Minute))

	_, err := repo.Get(ctx, "")
	assert.Error(t, err)

	_, err = repo.Delete(ctx, "")
	assert.Error(t, err)
}

func TestRedisCacheRepoHealth(t *testing.T) {
	ctx := context.Background()
	repo, mr := newCacheRepoForTest(t)

	require.NoError(t, repo.Health(ctx))

	mr.Close()
	assert.Error(t, repo.Health(ctx))
}
