package middleware

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ulule/limiter/v3"
)

// DefaultCleanupProbability is the share of calls that also sweep expired windows.
const DefaultCleanupProbability = 0.01

type window struct {
	count     int64
	expiresAt time.Time
}

// FixedWindowStore is an in-process limiter.Store. Each key counts hits in a
// window that starts with its first hit and lasts one rate period. Expired
// windows are swept on a random subset of calls instead of by a background
// goroutine.
type FixedWindowStore struct {
	mu       sync.Mutex
	windows  map[string]*window
	prefix   string
	now      func() time.Time
	cleanupP float64
	roll     func() float64
}

type StoreOption func(*FixedWindowStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *FixedWindowStore) { s.now = now }
}

// WithCleanupProbability sets how often expired windows are swept, in [0, 1].
func WithCleanupProbability(p float64) StoreOption {
	return func(s *FixedWindowStore) { s.cleanupP = p }
}

func NewFixedWindowStore(prefix string, opts ...StoreOption) *FixedWindowStore {
	s := &FixedWindowStore{
		windows:  map[string]*window{},
		prefix:   prefix,
		now:      time.Now,
		cleanupP: DefaultCleanupProbability,
		roll:     rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get counts one hit.
func (s *FixedWindowStore) Get(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return s.Increment(ctx, key, 1, rate)
}

// Increment counts n hits.
func (s *FixedWindowStore) Increment(_ context.Context, key string, n int64, rate limiter.Rate) (limiter.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.maybeCleanup(now)

	w := s.current(key, now, rate)
	w.count += n
	return contextFor(rate, w, now), nil
}

// Peek reports the window without counting a hit.
func (s *FixedWindowStore) Peek(_ context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[s.prefix+key]
	if !ok || !now.Before(w.expiresAt) {
		return contextFor(rate, &window{expiresAt: now.Add(rate.Period)}, now), nil
	}
	return contextFor(rate, w, now), nil
}

// Reset drops the key's window.
func (s *FixedWindowStore) Reset(_ context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	delete(s.windows, s.prefix+key)
	return contextFor(rate, &window{expiresAt: now.Add(rate.Period)}, now), nil
}

// Len is the number of tracked windows, expired or not.
func (s *FixedWindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *FixedWindowStore) current(key string, now time.Time, rate limiter.Rate) *window {
	k := s.prefix + key
	w, ok := s.windows[k]
	if !ok || !now.Before(w.expiresAt) {
		w = &window{expiresAt: now.Add(rate.Period)}
		s.windows[k] = w
	}
	return w
}

func (s *FixedWindowStore) maybeCleanup(now time.Time) {
	if s.cleanupP <= 0 || s.roll() >= s.cleanupP {
		return
	}
	for k, w := range s.windows {
		if !now.Before(w.expiresAt) {
			delete(s.windows, k)
		}
	}
}

func contextFor(rate limiter.Rate, w *window, now time.Time) limiter.Context {
	remaining := rate.Limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return limiter.Context{
		Limit:     rate.Limit,
		Remaining: remaining,
		Reset:     w.expiresAt.Unix(),
		Reached:   w.count > rate.Limit,
	}
}
