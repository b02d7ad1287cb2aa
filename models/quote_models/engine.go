package quote_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/models/shared_models"
	"github.com/transport-senegal/api/models/trip_models"
	"github.com/transport-senegal/api/models/vehicle_models"
	"github.com/transport-senegal/api/utils/shared_utils"
	"github.com/transport-senegal/api/utils/whatsapp"
)

// Engine prices trip requests and stores the result on a best-effort basis.
type Engine struct {
	routes         *route_models.RouteTable
	primary        Repository
	memory         *MemoryRepository
	driverWhatsApp string
	now            func() time.Time
}

// NewEngine builds an engine. primary may be nil, in which case every quote
// lives in memory only.
func NewEngine(routes *route_models.RouteTable, primary Repository, driverWhatsApp string) *Engine {
	if routes == nil {
		routes = route_models.DefaultTable()
	}
	return &Engine{
		routes:         routes,
		primary:        primary,
		memory:         NewMemoryRepository(shared_models.MemoryCapacity),
		driverWhatsApp: driverWhatsApp,
		now:            time.Now,
	}
}

// Generate prices req and tries to persist it. A storage failure never fails
// the call: the quote is returned with a local id and Persisted=false.
func (e *Engine) Generate(ctx context.Context, req trip_models.TripRequest) (*TripQuote, error) {
	vehicle, ok := vehicle_models.Lookup(req.VehicleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVehicle, req.VehicleType)
	}
	if req.Passengers > vehicle.Capacity {
		return nil, fmt.Errorf("%w: %d passengers, %s seats %d", ErrTooManyPassengers, req.Passengers, vehicle.Name, vehicle.Capacity)
	}

	route, estimated := e.routes.Resolve(req.Departure, req.Destination)
	quote := newQuote(req, vehicle, route, estimated, e.now())

	rec := trip_models.NewTripRecord(req)
	quote.RequestID = rec.ID

	if err := e.persist(ctx, rec, quote, req); err != nil {
		logger.WarnLogger.Warnf("Quote for %s -> %s kept in memory: %v", quote.Departure, quote.Destination, err)
		if err := e.keepLocal(ctx, rec, quote, req); err != nil {
			return nil, err
		}
	}

	logger.InfoLogger.Infof("Quote %s generated: %s -> %s, %d %s (persisted=%t)",
		quote.ID, quote.Departure, quote.Destination, quote.TotalPrice, quote.Currency, quote.Persisted)
	return quote, nil
}

func (e *Engine) persist(ctx context.Context, rec *trip_models.TripRecord, quote *TripQuote, req trip_models.TripRequest) error {
	if e.primary == nil {
		return errors.New("no database configured")
	}

	quote.ID = shared_models.GenerateUUIDv7().String()
	quote.Persisted = true
	quote.WhatsAppURL = whatsapp.BuildLink(e.driverWhatsApp, quote.WhatsAppMessage(req))

	saveCtx, cancel := context.WithTimeout(ctx, shared_models.PersistTimeout)
	defer cancel()

	if err := e.primary.Save(saveCtx, rec, quote); err != nil {
		quote.Persisted = false
		return err
	}
	return nil
}

func (e *Engine) keepLocal(ctx context.Context, rec *trip_models.TripRecord, quote *TripQuote, req trip_models.TripRequest) error {
	tiny, err := shared_utils.GenerateTinyID(10)
	if err != nil {
		return fmt.Errorf("failed to generate fallback quote id: %w", err)
	}
	quote.ID = shared_models.LocalIDPrefix + tiny
	quote.Persisted = false
	quote.WhatsAppURL = whatsapp.BuildLink(e.driverWhatsApp, quote.WhatsAppMessage(req))
	return e.memory.Save(ctx, rec, quote)
}

// Find looks in the database first and then in the in-memory fallback.
func (e *Engine) Find(ctx context.Context, id string) (*TripQuote, error) {
	if e.primary != nil {
		q, err := e.primary.Find(ctx, id)
		if err == nil {
			return q, nil
		}
		if !errors.Is(err, ErrQuoteNotFound) {
			logger.WarnLogger.Warnf("Quote lookup %s failed on database: %v", id, err)
		}
	}
	return e.memory.Find(ctx, id)
}

// Recent lists the newest quotes, database first, topped up from memory.
func (e *Engine) Recent(ctx context.Context, limit int) ([]TripQuote, error) {
	if limit <= 0 {
		limit = 20
	}
	local, _ := e.memory.Recent(ctx, limit)
	if e.primary == nil {
		return local, nil
	}

	stored, err := e.primary.Recent(ctx, limit)
	if err != nil {
		logger.WarnLogger.Warnf("Recent quotes unavailable from database: %v", err)
		return local, nil
	}
	return mergeNewest(stored, local, limit), nil
}

func mergeNewest(a, b []TripQuote, limit int) []TripQuote {
	out := make([]TripQuote, 0, limit)
	i, j := 0, 0
	for len(out) < limit && (i < len(a) || j < len(b)) {
		switch {
		case j >= len(b) || (i < len(a) && !a[i].CreatedAt.Before(b[j].CreatedAt)):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	return out
}
