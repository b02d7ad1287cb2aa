package quote_models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/models/trip_models"
	"github.com/transport-senegal/api/models/vehicle_models"
)

const Currency = "XOF"

var (
	ErrUnknownVehicle    = errors.New("unknown vehicle type")
	ErrTooManyPassengers = errors.New("passenger count exceeds vehicle capacity")
	ErrQuoteNotFound     = errors.New("quote not found")
)

// TripQuote is the priced answer to a TripRequest. It is never mutated after
// Generate returns it.
type TripQuote struct {
	ID                string                     `json:"id"`
	RequestID         uuid.UUID                  `json:"requestId"`
	Departure         string                     `json:"departure"`
	Destination       string                     `json:"destination"`
	DistanceKm        float64                    `json:"distanceKm"`
	DurationMinutes   int                        `json:"durationMinutes"`
	Duration          string                     `json:"duration"`
	BasePrice         int64                      `json:"basePrice"`
	TrafficMultiplier float64                    `json:"trafficMultiplier"`
	TotalPrice        int64                      `json:"totalPrice"`
	Currency          string                     `json:"currency"`
	Steps             []string                   `json:"steps"`
	Vehicle           vehicle_models.VehicleInfo `json:"vehicle"`
	Estimated         bool                       `json:"estimated"`
	Persisted         bool                       `json:"persisted"`
	WhatsAppURL       string                     `json:"whatsappUrl"`
	CreatedAt         time.Time                  `json:"createdAt"`
}

// CalculatePrice returns the base fare and the fare after the traffic
// multiplier, both rounded to the nearest franc.
func CalculatePrice(distanceKm float64, pricePerKm int64, multiplier float64) (base, total int64) {
	raw := distanceKm * float64(pricePerKm)
	return int64(math.Round(raw)), int64(math.Round(raw * multiplier))
}

const (
	RushHourMultiplier     = 1.2
	FridayPrayerMultiplier = 1.1
)

// TrafficMultiplier estimates congestion around Dakar from the travel slot.
// Weekday and Saturday rush hours (07:00-09:59, 17:00-19:59) cost 1.2, the
// Friday midday prayer window (12:00-14:59) costs 1.1. Unparseable input is
// priced at 1.0.
func TrafficMultiplier(date, clock string) float64 {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return 1.0
	}
	at, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return 1.0
	}

	weekday, hour := day.Weekday(), at.Hour()
	if weekday == time.Sunday {
		return 1.0
	}
	if (hour >= 7 && hour < 10) || (hour >= 17 && hour < 20) {
		return RushHourMultiplier
	}
	if weekday == time.Friday && hour >= 12 && hour < 15 {
		return FridayPrayerMultiplier
	}
	return 1.0
}

// WhatsAppMessage is the prefilled text a visitor sends the driver.
func (q *TripQuote) WhatsAppMessage(req trip_models.TripRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour, je souhaite réserver un trajet %s → %s", q.Departure, q.Destination)
	fmt.Fprintf(&b, " le %s à %s", req.Date, req.Time)
	fmt.Fprintf(&b, " pour %d passager(s) en %s.", req.Passengers, q.Vehicle.Name)
	fmt.Fprintf(&b, " Devis %s : %s %s (%.0f km, %s).", q.ID, FormatAmount(q.TotalPrice), q.Currency, q.DistanceKm, q.Duration)
	if req.CustomerName != "" {
		fmt.Fprintf(&b, " %s", req.CustomerName)
	}
	return b.String()
}

// FormatAmount groups thousands with spaces: 92400 -> "92 400".
func FormatAmount(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, " ")
	if neg {
		return "-" + out
	}
	return out
}

func newQuote(req trip_models.TripRequest, vehicle vehicle_models.VehicleInfo, route route_models.Route, estimated bool, now time.Time) *TripQuote {
	multiplier := TrafficMultiplier(req.Date, req.Time)
	base, total := CalculatePrice(route.DistanceKm, vehicle.PricePerKm, multiplier)

	return &TripQuote{
		Departure:         route.From,
		Destination:       route.To,
		DistanceKm:        route.DistanceKm,
		DurationMinutes:   route.DurationMinutes,
		Duration:          route_models.FormatDuration(route.DurationMinutes),
		BasePrice:         base,
		TrafficMultiplier: multiplier,
		TotalPrice:        total,
		Currency:          Currency,
		Steps:             route.Steps,
		Vehicle:           vehicle,
		Estimated:         estimated,
		CreatedAt:         now.UTC(),
	}
}
