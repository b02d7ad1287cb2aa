package quote_models

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/models/trip_models"
	"github.com/transport-senegal/api/models/vehicle_models"
)

type fakeRepo struct {
	mu      sync.Mutex
	saveErr error
	saved   map[string]TripQuote
}

func newFakeRepo(saveErr error) *fakeRepo {
	return &fakeRepo{saveErr: saveErr, saved: map[string]TripQuote{}}
}

func (f *fakeRepo) Save(_ context.Context, _ *trip_models.TripRecord, q *TripQuote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[q.ID] = *q
	return nil
}

func (f *fakeRepo) Find(_ context.Context, id string) (*TripQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.saved[id]
	if !ok {
		return nil, ErrQuoteNotFound
	}
	return &q, nil
}

func (f *fakeRepo) Recent(_ context.Context, limit int) ([]TripQuote, error) {
	return nil, nil
}

func request(vehicle string, passengers int) trip_models.TripRequest {
	return trip_models.TripRequest{
		Departure:     "Dakar",
		Destination:   "Saint-Louis",
		Date:          "2026-11-08", // Sunday
		Time:          "08:00",
		Passengers:    passengers,
		VehicleType:   vehicle,
		CustomerName:  "Moussa Diop",
		CustomerPhone: "+221 76 000 00 00",
		CustomerEmail: "moussa@example.com",
	}
}

func TestCalculatePrice(t *testing.T) {
	base, total := CalculatePrice(264, 350, 1.0)
	assert.Equal(t, int64(92400), base)
	assert.Equal(t, int64(92400), total)

	base, total = CalculatePrice(47, 500, 1.2)
	assert.Equal(t, int64(23500), base)
	assert.Equal(t, int64(28200), total)

	_, total = CalculatePrice(33.3, 350, 1.1)
	assert.Equal(t, int64(math.Round(33.3*350*1.1)), total)
}

func TestTrafficMultiplier(t *testing.T) {
	tests := []struct {
		name string
		date string
		time string
		want float64
	}{
		{"monday morning rush", "2026-11-09", "08:15", 1.2},
		{"saturday evening rush", "2026-11-14", "18:00", 1.2},
		{"rush ends at ten", "2026-11-09", "10:00", 1.0},
		{"friday prayer", "2026-11-13", "13:30", 1.1},
		{"friday evening rush wins", "2026-11-13", "17:30", 1.2},
		{"tuesday midday", "2026-11-10", "13:30", 1.0},
		{"sunday morning", "2026-11-08", "08:00", 1.0},
		{"bad date", "08/11/2026", "08:00", 1.0},
		{"bad time", "2026-11-09", "8h", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrafficMultiplier(tt.date, tt.time))
		})
	}
}

func TestGenerate_KnownRoutePricing(t *testing.T) {
	repo := newFakeRepo(nil)
	engine := NewEngine(route_models.DefaultTable(), repo, "+221 77 123 45 67")

	for _, vt := range vehicle_models.Types() {
		req := request(vt, 2)
		req.Date, req.Time = "2026-11-09", "08:00"

		q, err := engine.Generate(context.Background(), req)
		require.NoError(t, err)

		v, _ := vehicle_models.Lookup(vt)
		assert.Equal(t, int64(math.Round(264*float64(v.PricePerKm)*1.2)), q.TotalPrice, vt)
		assert.Equal(t, int64(math.Round(264*float64(v.PricePerKm))), q.BasePrice, vt)
		assert.Equal(t, 1.2, q.TrafficMultiplier)
		assert.Equal(t, "4h30", q.Duration)
		assert.Equal(t, "XOF", q.Currency)
		assert.False(t, q.Estimated)
		assert.True(t, q.Persisted)
		assert.False(t, strings.HasPrefix(q.ID, "local-"))
		assert.True(t, strings.HasPrefix(q.WhatsAppURL, "https://wa.me/221771234567?text="))
	}
}

func TestGenerate_UnknownRouteIsEstimated(t *testing.T) {
	engine := NewEngine(nil, newFakeRepo(nil), "")
	req := request("standard", 1)
	req.Departure, req.Destination = "Podor", "Matam"

	q, err := engine.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, q.Estimated)
	assert.Equal(t, []string{"Podor", "Matam"}, q.Steps)
	assert.Equal(t, int64(math.Round(q.DistanceKm*350)), q.TotalPrice)
}

func TestGenerate_StorageFailureFallsBackToMemory(t *testing.T) {
	engine := NewEngine(nil, newFakeRepo(errors.New("connection refused")), "")

	q, err := engine.Generate(context.Background(), request("suv", 6))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(q.ID, "local-"))
	assert.False(t, q.Persisted)
	assert.Contains(t, q.WhatsAppURL, q.ID)

	found, err := engine.Find(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.TotalPrice, found.TotalPrice)
}

func TestGenerate_NoDatabase(t *testing.T) {
	engine := NewEngine(nil, nil, "")

	q, err := engine.Generate(context.Background(), request("standard", 1))
	require.NoError(t, err)
	assert.False(t, q.Persisted)

	recent, err := engine.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, q.ID, recent[0].ID)
}

func TestGenerate_RejectsBadVehicleAndCapacity(t *testing.T) {
	engine := NewEngine(nil, nil, "")

	_, err := engine.Generate(context.Background(), request("limousine", 1))
	assert.ErrorIs(t, err, ErrUnknownVehicle)

	_, err = engine.Generate(context.Background(), request("standard", 5))
	assert.ErrorIs(t, err, ErrTooManyPassengers)

	_, err = engine.Generate(context.Background(), request("suv", 8))
	assert.NoError(t, err)
}

func TestFind_Unknown(t *testing.T) {
	engine := NewEngine(nil, newFakeRepo(nil), "")
	_, err := engine.Find(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestMemoryRepository_BoundedNewestFirst(t *testing.T) {
	repo := NewMemoryRepository(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, nil, &TripQuote{ID: id, Steps: []string{"x"}}))
	}

	assert.Equal(t, 2, repo.Len())
	_, err := repo.Find(ctx, "a")
	assert.ErrorIs(t, err, ErrQuoteNotFound)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
}

func TestMergeNewest(t *testing.T) {
	now := time.Now()
	a := []TripQuote{{ID: "a1", CreatedAt: now}, {ID: "a2", CreatedAt: now.Add(-2 * time.Minute)}}
	b := []TripQuote{{ID: "b1", CreatedAt: now.Add(-time.Minute)}}

	got := mergeNewest(a, b, 3)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"a1", "b1", "a2"}, ids)
	assert.Len(t, mergeNewest(a, b, 2), 2)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "92 400", FormatAmount(92400))
	assert.Equal(t, "1 250 000", FormatAmount(1250000))
	assert.Equal(t, "350", FormatAmount(350))
}
