package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func withMemoryStores(t *testing.T, clock *fakeClock) {
	t.Helper()
	prevFactory, prevNow := storeFactory, nowFunc
	storeFactory = func(routeID string, _ time.Duration) limiter.Store {
		return NewFixedWindowStore(routeID+":", WithClock(clock.Now))
	}
	nowFunc = clock.Now
	t.Cleanup(func() {
		storeFactory, nowFunc = prevFactory, prevNow
	})
}

func setupRouter(mw gin.HandlerFunc, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/limited", mw, func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseCustomRate(t *testing.T) {
	tests := []struct {
		in     string
		limit  int64
		period time.Duration
	}{
		{"10-2m", 10, 2 * time.Minute},
		{"20-10s", 20, 10 * time.Second},
		{"5-1h", 5, time.Hour},
		{"100-1d", 100, 24 * time.Hour},
	}
	for _, tt := range tests {
		rate, err := ParseCustomRate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.limit, rate.Limit)
		assert.Equal(t, tt.period, rate.Period)
	}

	for _, bad := range []string{"", "10", "x-1m", "10-1w", "10-m", "0-1m", "10-0m"} {
		_, err := ParseCustomRate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewRateLimiter_DeniesNPlusOneThenResets(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 11, 9, 8, 0, 0, 0, time.UTC)}
	withMemoryStores(t, clock)

	hits := 0
	r := setupRouter(NewRateLimiter("3-1m", "test"), &hits)

	for i := 0; i < 3; i++ {
		w := doGet(r, "10.0.0.1")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.2").Code)

	w := doGet(r, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests", body["error"])
	assert.Equal(t, float64(60), body["retryAfter"])
	assert.Equal(t, 4, hits, "three allowed for .1 and one for .2")

	clock.Advance(61 * time.Second)
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)
}

func TestNewRateLimiter_SeparateClients(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	withMemoryStores(t, clock)

	hits := 0
	r := setupRouter(NewRateLimiter("1-1m", "sep"), &hits)

	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.9").Code)
}

func TestNewRateLimiter_InvalidRatePassesThrough(t *testing.T) {
	hits := 0
	r := setupRouter(NewRateLimiter("nonsense", "bad"), &hits)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)
	}
	assert.Equal(t, 5, hits)
}

func TestCombinedRateLimiter(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	withMemoryStores(t, clock)

	hits := 0
	r := setupRouter(CombinedRateLimiter("combo", "2-1m", "3-10m"), &hits)

	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "10.0.0.1").Code)

	clock.Advance(time.Minute)
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1").Code)

	w := doGet(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "the 10 minute window is exhausted")
	assert.Equal(t, 3, hits, "the handler runs once per allowed request")
}

func TestClientKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "ip:192.0.2.7", ClientKey(c))

	c.Request.Header.Set("Authorization", "Bearer secret-token")
	key := ClientKey(c)
	assert.Regexp(t, `^tok:[0-9a-f]{32}$`, key)
	assert.NotContains(t, key, "secret")

	c.Request.Header.Set("Authorization", "Bearer other-token")
	assert.NotEqual(t, key, ClientKey(c))
}

func TestFixedWindowStore_ProbabilisticCleanup(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	rate := limiter.Rate{Period: time.Second, Limit: 5}
	ctx := context.Background()

	never := NewFixedWindowStore("", WithClock(clock.Now), WithCleanupProbability(0))
	always := NewFixedWindowStore("", WithClock(clock.Now), WithCleanupProbability(1))

	for _, s := range []*FixedWindowStore{never, always} {
		_, _ = s.Get(ctx, "a", rate)
		_, _ = s.Get(ctx, "b", rate)
	}
	clock.Advance(2 * time.Second)
	for _, s := range []*FixedWindowStore{never, always} {
		_, _ = s.Get(ctx, "c", rate)
	}

	assert.Equal(t, 3, never.Len())
	assert.Equal(t, 1, always.Len())
}

func TestFixedWindowStore_PeekAndReset(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := NewFixedWindowStore("p:", WithClock(clock.Now))
	rate := limiter.Rate{Period: time.Minute, Limit: 2}
	ctx := context.Background()

	_, _ = s.Get(ctx, "k", rate)
	peek, err := s.Peek(ctx, "k", rate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), peek.Remaining)

	_, _ = s.Get(ctx, "k", rate)
	lctx, _ := s.Get(ctx, "k", rate)
	assert.True(t, lctx.Reached)

	reset, err := s.Reset(ctx, "k", rate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), reset.Remaining)
	lctx, _ = s.Get(ctx, "k", rate)
	assert.False(t, lctx.Reached)
}
