package quote_models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/models/trip_models"
	"github.com/transport-senegal/api/models/vehicle_models"
)

// Repository stores quotes together with the request they price.
type Repository interface {
	Save(ctx context.Context, rec *trip_models.TripRecord, quote *TripQuote) error
	Find(ctx context.Context, id string) (*TripQuote, error)
	Recent(ctx context.Context, limit int) ([]TripQuote, error)
}

// TxStarter is satisfied by *pgxpool.Pool.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository writes the request and its quote in one transaction.
type PostgresRepository struct {
	db TxStarter
}

func NewPostgresRepository(db TxStarter) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, rec *trip_models.TripRecord, quote *TripQuote) error {
	steps, err := json.Marshal(quote.Steps)
	if err != nil {
		return fmt.Errorf("failed to encode route steps: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin quote transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.ErrorLogger.Errorf("Quote transaction rollback failed: %v", rbErr)
		}
	}()

	if err := trip_models.InsertTripRecord(ctx, tx, rec); err != nil {
		return err
	}

	query := `
		INSERT INTO trip_quotes (
			id, request_id, departure, destination, distance_km, duration_minutes, base_price,
			traffic_multiplier, total_price, currency, steps, vehicle_type, estimated, whatsapp_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = tx.Exec(ctx, query,
		quote.ID, quote.RequestID, quote.Departure, quote.Destination, quote.DistanceKm, quote.DurationMinutes, quote.BasePrice,
		quote.TrafficMultiplier, quote.TotalPrice, quote.Currency, steps, string(quote.Vehicle.Type), quote.Estimated, quote.WhatsAppURL, quote.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert quote %s: %v", quote.ID, err)
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit quote: %w", err)
	}
	return nil
}

const selectQuote = `
	SELECT id, request_id, departure, destination, distance_km, duration_minutes, base_price,
	       traffic_multiplier, total_price, currency, steps, vehicle_type, estimated, whatsapp_url, created_at
	FROM trip_quotes`

func (r *PostgresRepository) Find(ctx context.Context, id string) (*TripQuote, error) {
	q, err := scanQuote(r.db.QueryRow(ctx, selectQuote+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to fetch quote %s: %w", id, err)
	}
	return q, nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]TripQuote, error) {
	rows, err := r.db.Query(ctx, selectQuote+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var out []TripQuote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (*TripQuote, error) {
	var (
		q           TripQuote
		steps       []byte
		vehicleType string
	)
	err := row.Scan(
		&q.ID, &q.RequestID, &q.Departure, &q.Destination, &q.DistanceKm, &q.DurationMinutes, &q.BasePrice,
		&q.TrafficMultiplier, &q.TotalPrice, &q.Currency, &steps, &vehicleType, &q.Estimated, &q.WhatsAppURL, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &q.Steps); err != nil {
		return nil, fmt.Errorf("failed to decode route steps: %w", err)
	}
	q.Vehicle, _ = vehicle_models.Lookup(vehicleType)
	q.Duration = route_models.FormatDuration(q.DurationMinutes)
	q.Persisted = true
	return &q, nil
}

// MemoryRepository keeps the newest quotes in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	byID     map[string]TripQuote
	order    []string
}

func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryRepository{
		capacity: capacity,
		byID:     make(map[string]TripQuote, capacity),
	}
}

func (m *MemoryRepository) Save(_ context.Context, _ *trip_models.TripRecord, quote *TripQuote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[quote.ID]; !exists {
		m.order = append(m.order, quote.ID)
	}
	m.byID[quote.ID] = cloneQuote(*quote)

	for len(m.order) > m.capacity {
		delete(m.byID, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *MemoryRepository) Find(_ context.Context, id string) (*TripQuote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.byID[id]
	if !ok {
		return nil, ErrQuoteNotFound
	}
	out := cloneQuote(q)
	return &out, nil
}

// Recent returns up to limit quotes, newest first.
func (m *MemoryRepository) Recent(_ context.Context, limit int) ([]TripQuote, error) {
	if limit <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]TripQuote, 0, min(limit, len(m.order)))
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneQuote(m.byID[m.order[i]]))
	}
	return out, nil
}

func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

func cloneQuote(q TripQuote) TripQuote {
	q.Steps = append([]string(nil), q.Steps...)
	q.Vehicle.Features = append([]string(nil), q.Vehicle.Features...)
	return q
}
