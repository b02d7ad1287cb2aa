package middleware

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func withRedisStores(t *testing.T, client *redis.Client) {
	t.Helper()
	prevFactory := storeFactory
	storeFactory = func(routeID string, period time.Duration) limiter.Store {
		return redisBackedStore(client, routeID, period)
	}
	t.Cleanup(func() { storeFactory = prevFactory })
}

func TestRedisStore_DeniesNPlusOne(t *testing.T) {
	mr, client := setupMiniredis(t)
	withRedisStores(t, client)

	hits := 0
	r := setupRouter(NewRateLimiter("3-1m", "quote"), &hits)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code, "request %d", i+1)
	}
	w := doGet(r, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 3, hits)

	var counted bool
	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, "ratelimit:quote") && strings.HasSuffix(key, "ip:10.0.0.1") {
			counted = true
		}
	}
	assert.True(t, counted, "keys: %v", mr.Keys())

	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)
}

func TestRedisStore_SharedBetweenInstances(t *testing.T) {
	_, client := setupMiniredis(t)
	withRedisStores(t, client)

	hitsA, hitsB := 0, 0
	instanceA := setupRouter(NewRateLimiter("2-1m", "chat"), &hitsA)
	instanceB := setupRouter(NewRateLimiter("2-1m", "chat"), &hitsB)

	assert.Equal(t, http.StatusOK, doGet(instanceA, "10.0.0.9").Code)
	assert.Equal(t, http.StatusOK, doGet(instanceB, "10.0.0.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(instanceA, "10.0.0.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(instanceB, "10.0.0.9").Code)
}

func TestRedisStore_FailsOverToMemory(t *testing.T) {
	mr, client := setupMiniredis(t)

	store := redisBackedStore(client, "email", time.Minute)
	require.IsType(t, &failoverStore{}, store)

	rate := limiter.Rate{Period: time.Minute, Limit: 2}
	lim := limiter.New(store, rate)
	ctx := context.Background()

	first, err := lim.Get(ctx, "ip:10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Remaining)

	mr.Close()

	served, err := lim.Get(ctx, "ip:10.0.0.3")
	require.NoError(t, err, "redis outage must not surface to callers")
	assert.Equal(t, int64(1), served.Remaining, "memory counter starts fresh")
	assert.False(t, served.Reached)

	served, err = lim.Get(ctx, "ip:10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, int64(0), served.Remaining)

	denied, err := lim.Get(ctx, "ip:10.0.0.3")
	require.NoError(t, err)
	assert.True(t, denied.Reached)
}

func TestRedisBackedStore_ClosedClientUsesMemory(t *testing.T) {
	mr, client := setupMiniredis(t)
	mr.Close()

	store := redisBackedStore(client, "admin_login", time.Minute)
	lctx, err := limiter.New(store, limiter.Rate{Period: time.Minute, Limit: 1}).Get(context.Background(), "ip:10.0.0.4")
	require.NoError(t, err)
	assert.False(t, lctx.Reached)
}
