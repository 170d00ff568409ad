package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	require.NoError(t, c.Set(context.Background(), "patient:1", map[string]string{"name": "Ada"}))

	var out map[string]string
	found, err := c.Get(context.Background(), "patient:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestRedisCache_Unreachable(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", "", 0, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	var out map[string]string
	found, err := c.Get(ctx, "patient:1", &out)
	assert.Error(t, err)
	assert.False(t, found)
}

type cachedPatient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newMiniRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), "", 0, ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := newMiniRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, "patient:1", cachedPatient{ID: "1", Name: "Ada"}))
	assert.True(t, mr.Exists("patient:1"))
	assert.Equal(t, time.Minute, mr.TTL("patient:1"))

	var out cachedPatient
	found, err := c.Get(ctx, "patient:1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedPatient{ID: "1", Name: "Ada"}, out)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newMiniRedisCache(t, time.Minute)

	var out cachedPatient
	found, err := c.Get(context.Background(), "patient:missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, out.Name)
}

func TestRedisCache_UndecodableEntryIsAMiss(t *testing.T) {
	c, mr := newMiniRedisCache(t, time.Minute)
	require.NoError(t, mr.Set("patient:1", "not json"))

	var out cachedPatient
	found, err := c.Get(context.Background(), "patient:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_EntryExpires(t *testing.T) {
	c, mr := newMiniRedisCache(t, 30*time.Second)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "patient:1", cachedPatient{ID: "1", Name: "Ada"}))

	mr.FastForward(31 * time.Second)

	var out cachedPatient
	found, err := c.Get(ctx, "patient:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("patient:1"))
}
