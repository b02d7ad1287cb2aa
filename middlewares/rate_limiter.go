package middleware

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	redisclient "github.com/transport-senegal/api/config/redis"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/utils/shared_utils"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"golang.org/x/crypto/blake2b"
)

// Example route using NewRateLimiter
// r.POST("/api/quotes", middleware.NewRateLimiter("10-1m", "quotes"), handler)
//
// Example route using CombinedRateLimiter
// r.POST("/api/send-email", middleware.CombinedRateLimiter("email", "2-1m", "5-10m"), handler)

var nowFunc = time.Now

// storeFactory picks the backing store for a route. Tests replace it.
var storeFactory = defaultStore

// ClientKey identifies the caller: a hash of the bearer token when present,
// otherwise the client IP.
func ClientKey(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && strings.TrimSpace(token) != "" {
		sum := blake2b.Sum256([]byte(strings.TrimSpace(token)))
		return "tok:" + hex.EncodeToString(sum[:16])
	}
	return "ip:" + c.ClientIP()
}

// defaultStore uses Redis when it is reachable so limits are shared between
// instances, and an in-process store otherwise.
func defaultStore(routeID string, period time.Duration) limiter.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return NewFixedWindowStore(routeID + ":")
	}
	return redisBackedStore(rdb, routeID, period)
}

// redisBackedStore keeps counters in Redis under RATE_LIMIT_PREFIX+routeID and
// fails over to an in-process store on Redis errors.
func redisBackedStore(rdb *redis.Client, routeID string, period time.Duration) limiter.Store {
	memory := NewFixedWindowStore(routeID + ":")

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          shared_utils.RATE_LIMIT_PREFIX + routeID,
		MaxRetry:        3,
		CleanUpInterval: period,
	})
	if err != nil {
		logger.WarnLogger.Warnf("Redis rate limit store for %s unavailable, using memory: %v", routeID, err)
		return memory
	}
	return &failoverStore{primary: store, fallback: memory, routeID: routeID}
}

// failoverStore answers from the in-process store when Redis errors, so an
// outage never blocks visitors.
type failoverStore struct {
	primary  limiter.Store
	fallback limiter.Store
	routeID  string
}

func (f *failoverStore) Get(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	lctx, err := f.primary.Get(ctx, key, rate)
	if err != nil {
		f.warn(err)
		return f.fallback.Get(ctx, key, rate)
	}
	return lctx, nil
}

func (f *failoverStore) Peek(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	lctx, err := f.primary.Peek(ctx, key, rate)
	if err != nil {
		f.warn(err)
		return f.fallback.Peek(ctx, key, rate)
	}
	return lctx, nil
}

func (f *failoverStore) Reset(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	_, _ = f.fallback.Reset(ctx, key, rate)
	lctx, err := f.primary.Reset(ctx, key, rate)
	if err != nil {
		f.warn(err)
		return f.fallback.Peek(ctx, key, rate)
	}
	return lctx, nil
}

func (f *failoverStore) Increment(ctx context.Context, key string, count int64, rate limiter.Rate) (limiter.Context, error) {
	lctx, err := f.primary.Increment(ctx, key, count, rate)
	if err != nil {
		f.warn(err)
		return f.fallback.Increment(ctx, key, count, rate)
	}
	return lctx, nil
}

func (f *failoverStore) warn(err error) {
	logger.WarnLogger.Warnf("Rate limit store for %s failed over to memory: %v", f.routeID, err)
}

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s", "100-1d".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(strings.TrimSpace(rateStr), "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	if len(durationStr) < 2 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", durationStr)
	}

	var unit time.Duration
	switch durationStr[len(durationStr)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	n, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil || n <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", durationStr)
	}

	return limiter.Rate{
		Formatted: rateStr,
		Period:    time.Duration(n) * unit,
		Limit:     int64(limit),
	}, nil
}

// retryAfterSeconds is never below one second.
func retryAfterSeconds(reset int64) int64 {
	secs := reset - nowFunc().Unix()
	if secs < 1 {
		return 1
	}
	return secs
}

func abortTooManyRequests(c *gin.Context, reset int64) {
	retry := retryAfterSeconds(reset)
	c.Header("Retry-After", strconv.FormatInt(retry, 10))
	logger.WarnLogger.Warnf("Rate limit reached for %s on %s %s", ClientKey(c), c.Request.Method, c.FullPath())
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":      "Too many requests",
		"retryAfter": retry,
	})
}

// NewRateLimiter creates middleware with custom periods like "10-2m" for a specific route.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	instance := limiter.New(storeFactory(routeID, rate.Period), rate)

	return ginmiddleware.NewMiddleware(instance,
		ginmiddleware.WithKeyGetter(ClientKey),
		ginmiddleware.WithLimitReachedHandler(func(c *gin.Context) {
			reset, _ := strconv.ParseInt(c.Writer.Header().Get("X-RateLimit-Reset"), 10, 64)
			abortTooManyRequests(c, reset)
		}),
		ginmiddleware.WithErrorHandler(func(c *gin.Context, err error) {
			logger.ErrorLogger.Errorf("Rate limiter error on %s: %v", routeID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}),
	)
}

// CombinedRateLimiter enforces several windows on the same route, e.g. a
// burst limit and a longer sustained limit. The request is denied as soon as
// one of them is exhausted.
func CombinedRateLimiter(routeID string, rateStrings ...string) gin.HandlerFunc {
	var limiters []*limiter.Limiter
	for i, rateStr := range rateStrings {
		rate, err := ParseCustomRate(rateStr)
		if err != nil {
			logger.ErrorLogger.Errorf("Error parsing rate %q for route %s: %v", rateStr, routeID, err)
			continue
		}
		id := fmt.Sprintf("%s_%d", routeID, i)
		limiters = append(limiters, limiter.New(storeFactory(id, rate.Period), rate))
	}

	return func(c *gin.Context) {
		key := ClientKey(c)
		for _, l := range limiters {
			lctx, err := l.Get(c.Request.Context(), key)
			if err != nil {
				logger.ErrorLogger.Errorf("Rate limiter error on %s: %v", routeID, err)
				continue
			}
			c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
			if lctx.Reached {
				abortTooManyRequests(c, lctx.Reset)
				return
			}
		}
		c.Next()
	}
}
