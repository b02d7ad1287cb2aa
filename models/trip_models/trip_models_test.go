package trip_models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() TripRequest {
	return TripRequest{
		Departure:     "Dakar",
		Destination:   "Saint-Louis",
		Date:          "2026-12-24",
		Time:          "08:30",
		Passengers:    3,
		VehicleType:   "premium",
		CustomerName:  "Awa Ndiaye",
		CustomerPhone: "+221 77 123 45 67",
		CustomerEmail: "awa@example.com",
	}
}

func TestTripRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		special string
	}{
		{"without special requests", ""},
		{"with special requests", "Siège bébé, arrêt à Louga"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			req.SpecialRequests = tt.special

			rec := NewTripRecord(req)

			assert.NotEqual(t, uuid.Nil, rec.ID)
			assert.False(t, rec.CreatedAt.IsZero())
			assert.Equal(t, req, rec.ToRequest())
			if tt.special == "" {
				assert.Nil(t, rec.SpecialRequests)
			}
		})
	}
}

func TestTripRequestBindingTags(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	require.NoError(t, v.Struct(sampleRequest()))

	tests := []struct {
		name   string
		mutate func(r *TripRequest)
		field  string
	}{
		{"unknown vehicle", func(r *TripRequest) { r.VehicleType = "limousine" }, "VehicleType"},
		{"too many passengers", func(r *TripRequest) { r.Passengers = 9 }, "Passengers"},
		{"zero passengers", func(r *TripRequest) { r.Passengers = 0 }, "Passengers"},
		{"bad date", func(r *TripRequest) { r.Date = "24/12/2026" }, "Date"},
		{"bad time", func(r *TripRequest) { r.Time = "8h30" }, "Time"},
		{"bad email", func(r *TripRequest) { r.CustomerEmail = "awa" }, "CustomerEmail"},
		{"missing departure", func(r *TripRequest) { r.Departure = "" }, "Departure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.mutate(&req)

			err := v.Struct(req)
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}
