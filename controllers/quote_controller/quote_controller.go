package quote_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/models/trip_models"
	"github.com/transport-senegal/api/utils"
	"github.com/transport-senegal/api/utils/notify"
	"github.com/transport-senegal/api/utils/sanitize"
)

// QuoteController serves trip quotes.
type QuoteController struct {
	Engine   *quote_models.Engine
	Notifier *notify.LeadNotifier
}

// NewQuoteController creates a new instance of QuoteController. notifier may be nil.
func NewQuoteController(engine *quote_models.Engine, notifier *notify.LeadNotifier) *QuoteController {
	return &QuoteController{
		Engine:   engine,
		Notifier: notifier,
	}
}

func cleanTripRequest(req *trip_models.TripRequest) {
	req.Departure = sanitize.Text(req.Departure)
	req.Destination = sanitize.Text(req.Destination)
	req.CustomerName = sanitize.Text(req.CustomerName)
	req.CustomerPhone = sanitize.Text(req.CustomerPhone)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.VehicleType = strings.ToLower(req.VehicleType)
	req.SpecialRequests = sanitize.Truncate(sanitize.Multiline(req.SpecialRequests), 1000)
}

// CreateQuote prices a trip request and notifies the driver.
func (qc *QuoteController) CreateQuote(c *gin.Context) {
	var req trip_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid quote request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": utils.ValidationDetails(err)})
		return
	}
	cleanTripRequest(&req)
	if req.Departure == "" || req.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"departure": "is required", "destination": "is required"}})
		return
	}

	quote, err := qc.Engine.Generate(c.Request.Context(), req)
	switch {
	case errors.Is(err, quote_models.ErrUnknownVehicle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"vehicleType": "unknown vehicle type"}})
		return
	case errors.Is(err, quote_models.ErrTooManyPassengers):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"passengers": "exceeds the vehicle capacity"}})
		return
	case err != nil:
		logger.ErrorLogger.Errorf("Failed to generate quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate quote"})
		return
	}

	qc.Notifier.Notify(notify.Lead{Quote: quote, Request: req})

	c.JSON(http.StatusCreated, quote)
}

// GetQuote returns a quote by id.
func (qc *QuoteController) GetQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id"})
		return
	}

	quote, err := qc.Engine.Find(c.Request.Context(), id)
	if errors.Is(err, quote_models.ErrQuoteNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to load quote %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quote"})
		return
	}

	c.JSON(http.StatusOK, quote)
}
