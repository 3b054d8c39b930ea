package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tubesort/cache"
	"github.com/katalvlaran/tubesort/liquid"
)

// runStoreContract exercises the behavior every Store must share.
func runStoreContract(t *testing.T, store cache.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrNotFound)

	want := cache.Entry{
		Solved:   true,
		Actions:  []liquid.Action{{Send: 0, Receive: 2}, {Send: 1, Receive: 0}},
		Explored: 253,
	}
	require.NoError(t, store.Save(ctx, "k1", want))

	got, err := store.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// overwrite
	unsolved := cache.Entry{Solved: false, Actions: []liquid.Action{}, Explored: 3}
	require.NoError(t, store.Save(ctx, "k1", unsolved))
	got, err = store.Load(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, got.Solved)
	assert.Empty(t, got.Actions)
	assert.Equal(t, 3, got.Explored)

	require.NoError(t, store.Delete(ctx, "k1"))
	_, err = store.Load(ctx, "k1")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	// deleting twice is fine
	require.NoError(t, store.Delete(ctx, "k1"))
}

func TestMemoryStore_Contract(t *testing.T) {
	store := cache.NewMemoryStore()
	runStoreContract(t, store)
	require.NoError(t, store.Close())

	_, err := store.Load(context.Background(), "k")
	assert.ErrorIs(t, err, cache.ErrClosed)
}

// TestMemoryStore_Isolation checks that callers cannot mutate stored pours.
func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	actions := []liquid.Action{{Send: 0, Receive: 1}}
	require.NoError(t, store.Save(ctx, "k", cache.Entry{Solved: true, Actions: actions}))
	actions[0].Send = 9

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Actions[0].Send)
	got.Actions[0].Send = 7

	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Actions[0].Send)
	assert.Equal(t, 1, store.Len())
}

func TestBadgerStore_Contract(t *testing.T) {
	store, err := cache.NewBadgerStore(cache.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	runStoreContract(t, store)
	require.NoError(t, store.Close())

	_, err = store.Load(context.Background(), "k")
	assert.ErrorIs(t, err, cache.ErrClosed)
}

func TestBadgerStore_Persistent(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "db")
	entry := cache.Entry{Solved: true, Actions: []liquid.Action{{Send: 0, Receive: 1}}, Explored: 3}

	store, err := cache.NewBadgerStore(cache.BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "k", entry))
	require.NoError(t, store.Close())

	reopened, err := cache.NewBadgerStore(cache.BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestBadgerStore_NeedsPath(t *testing.T) {
	_, err := cache.NewBadgerStore(cache.BadgerConfig{})
	assert.Error(t, err)
}

func newRedis(t *testing.T, opts ...cache.RedisOption) (*cache.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return cache.NewRedisStoreFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newRedis(t)
	runStoreContract(t, store)
	require.NoError(t, store.Close())
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedis(t, cache.WithPrefix("test:"), cache.WithTTL(time.Minute))
	defer store.Close()

	require.NoError(t, store.Save(ctx, "abc", cache.Entry{Solved: true, Actions: []liquid.Action{}}))
	assert.True(t, mr.Exists("test:abc"))
	assert.Equal(t, time.Minute, mr.TTL("test:abc"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedisStore_Garbage(t *testing.T) {
	store, mr := newRedis(t)
	defer store.Close()
	require.NoError(t, mr.Set("tubesort:solution:bad", "{not json"))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrNotFound)
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(mr.Addr(), "", 0)
	defer store.Close()
	runStoreContract(t, store)
}

func TestKey(t *testing.T) {
	a := liquid.NewState(liquid.MustTube(liquid.Orange), liquid.EmptyTube())
	b := liquid.NewState(liquid.EmptyTube(), liquid.MustTube(liquid.Orange))
	assert.Len(t, cache.Key(a), 64)
	assert.Equal(t, cache.Key(a), cache.Key(liquid.NewState(a.Tubes()...)))
	assert.NotEqual(t, cache.Key(a), cache.Key(b))
}
