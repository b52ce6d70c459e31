package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/searchexpr/pkg/adapters/redis"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/dsl"
	"github.com/aretw0/searchexpr/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	ports.RunViewStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, dsl.New("short-lived").Form("f").Build()))

	views, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, views, "short-lived")

	// miniredis expires the key, the index is pruned against wall clock time.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrViewNotFound)

	time.Sleep(1200 * time.Millisecond)

	views, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, dsl.New("my-view").Build()))

	assert.True(t, mr.Exists("custom:app:my-view"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	views, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-view"}, views)
}

func TestRedisStore_Ping(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
