package trip_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/shared_models"
)

// TripRequest is the booking form submitted by a visitor.
type TripRequest struct {
	Departure       string `json:"departure" binding:"required,max=120"`
	Destination     string `json:"destination" binding:"required,max=120"`
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required,datetime=15:04"`
	Passengers      int    `json:"passengers" binding:"required,min=1,max=8"`
	VehicleType     string `json:"vehicleType" binding:"required,oneof=standard premium suv"`
	CustomerName    string `json:"name" binding:"required,max=100"`
	CustomerPhone   string `json:"phone" binding:"required,min=6,max=30"`
	CustomerEmail   string `json:"email" binding:"required,email,max=254"`
	SpecialRequests string `json:"specialRequests,omitempty" binding:"max=1000"`
}

// TripRecord is the stored shape of a TripRequest.
type TripRecord struct {
	ID              uuid.UUID
	Departure       string
	Destination     string
	TravelDate      string
	TravelTime      string
	PassengerCount  int
	VehicleType     string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	SpecialRequests *string
	CreatedAt       time.Time
}

// NewTripRecord assigns an id and timestamp to a request.
func NewTripRecord(req TripRequest) *TripRecord {
	rec := &TripRecord{
		ID:             shared_models.GenerateUUIDv7(),
		Departure:      req.Departure,
		Destination:    req.Destination,
		TravelDate:     req.Date,
		TravelTime:     req.Time,
		PassengerCount: req.Passengers,
		VehicleType:    req.VehicleType,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		CreatedAt:      time.Now().UTC(),
	}
	if req.SpecialRequests != "" {
		s := req.SpecialRequests
		rec.SpecialRequests = &s
	}
	return rec
}

// ToRequest converts the record back to the form shape.
func (r *TripRecord) ToRequest() TripRequest {
	req := TripRequest{
		Departure:     r.Departure,
		Destination:   r.Destination,
		Date:          r.TravelDate,
		Time:          r.TravelTime,
		Passengers:    r.PassengerCount,
		VehicleType:   r.VehicleType,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
	}
	if r.SpecialRequests != nil {
		req.SpecialRequests = *r.SpecialRequests
	}
	return req
}

// InsertTripRecord writes the request row.
func InsertTripRecord(ctx context.Context, db shared_models.DBTX, rec *TripRecord) error {
	query := `
		INSERT INTO trip_requests (
			id, departure, destination, travel_date, travel_time, passenger_count,
			vehicle_type, customer_name, customer_phone, customer_email, special_requests, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := db.Exec(ctx, query,
		rec.ID, rec.Departure, rec.Destination, rec.TravelDate, rec.TravelTime, rec.PassengerCount,
		rec.VehicleType, rec.CustomerName, rec.CustomerPhone, rec.CustomerEmail, rec.SpecialRequests, rec.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert trip request %s: %v", rec.ID, err)
		return fmt.Errorf("failed to insert trip request: %w", err)
	}
	return nil
}

// GetTripRecord loads a request row by id.
func GetTripRecord(ctx context.Context, db shared_models.DBTX, id uuid.UUID) (*TripRecord, error) {
	rec := &TripRecord{}
	query := `
		SELECT id, departure, destination, travel_date, travel_time, passenger_count,
		       vehicle_type, customer_name, customer_phone, customer_email, special_requests, created_at
		FROM trip_requests
		WHERE id = $1`

	err := db.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Departure, &rec.Destination, &rec.TravelDate, &rec.TravelTime, &rec.PassengerCount,
		&rec.VehicleType, &rec.CustomerName, &rec.CustomerPhone, &rec.CustomerEmail, &rec.SpecialRequests, &rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trip request %s: %w", id, err)
	}
	return rec, nil
}
