package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache() (*MemoryCache, *clock) {
	clk := &clock{t: time.Date(2026, 11, 9, 8, 0, 0, 0, time.UTC)}
	c := NewMemoryCache()
	c.now = clk.now
	return c, clk
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	_, err := c.Get(ctx, "dakar|saly")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "dakar|saly", []byte("80"), time.Hour))
	got, err := c.Get(ctx, "dakar|saly")
	require.NoError(t, err)
	assert.Equal(t, []byte("80"), got)

	got[0] = 'X'
	again, _ := c.Get(ctx, "dakar|saly")
	assert.Equal(t, []byte("80"), again)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, clk := newTestCache()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	clk.t = clk.t.Add(59 * time.Second)
	_, err := c.Get(ctx, "a")
	assert.NoError(t, err)

	clk.t = clk.t.Add(time.Second)
	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 1, c.Len())

	clk.t = clk.t.Add(24 * time.Hour)
	_, err = c.Get(ctx, "b")
	assert.NoError(t, err)
}

func TestMemoryCache_SweepAndDelete(t *testing.T) {
	ctx := context.Background()
	c, clk := newTestCache()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))

	clk.t = clk.t.Add(2 * time.Minute)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Delete(ctx, "b"))
	assert.Equal(t, 1, c.Len())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	type route struct {
		DistanceKm float64 `json:"distanceKm"`
	}
	require.NoError(t, SetJSON(ctx, c, "k", route{DistanceKm: 264}, time.Hour))

	var out route
	require.NoError(t, GetJSON(ctx, c, "k", &out))
	assert.Equal(t, 264.0, out.DistanceKm)

	require.NoError(t, c.Set(ctx, "bad", []byte("{"), time.Hour))
	assert.Error(t, GetJSON(ctx, c, "bad", &out))
	assert.ErrorIs(t, GetJSON(ctx, c, "missing", &out), ErrMiss)
}

func TestRedisCache_UnreachableIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client, "distance:")
	_, err := c.Get(context.Background(), "dakar|saly")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
