package itinerary_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/itinerary_models"
	"github.com/transport-senegal/api/utils"
	"github.com/transport-senegal/api/utils/sanitize"
)

// ItineraryController saves and serves tour plans.
type ItineraryController struct {
	Store *itinerary_models.Store
}

func NewItineraryController(store *itinerary_models.Store) *ItineraryController {
	return &ItineraryController{Store: store}
}

func cleanItineraryRequest(req *itinerary_models.SaveItineraryRequest) {
	req.Title = sanitize.Text(req.Title)
	req.CustomerName = sanitize.Text(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.Notes = sanitize.Multiline(req.Notes)
	for i := range req.Days {
		d := &req.Days[i]
		d.Title = sanitize.Text(d.Title)
		d.Description = sanitize.Multiline(d.Description)
		places := d.Places[:0]
		for _, p := range d.Places {
			if p = sanitize.Text(p); p != "" {
				places = append(places, p)
			}
		}
		d.Places = places
	}
}

// SaveItinerary stores an itinerary and returns its id.
func (ic *ItineraryController) SaveItinerary(c *gin.Context) {
	var req itinerary_models.SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid itinerary: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": utils.ValidationDetails(err)})
		return
	}
	cleanItineraryRequest(&req)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"title": "is required"}})
		return
	}

	it := req.ToItinerary()
	if err := ic.Store.Save(c.Request.Context(), it); err != nil {
		logger.ErrorLogger.Errorf("Failed to save itinerary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save itinerary"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": it.ID, "persisted": it.Persisted})
}

// GetItinerary returns a saved itinerary.
func (ic *ItineraryController) GetItinerary(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itinerary id"})
		return
	}

	it, err := ic.Store.Find(c.Request.Context(), id)
	if errors.Is(err, itinerary_models.ErrItineraryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		return
	}
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to load itinerary %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load itinerary"})
		return
	}

	c.JSON(http.StatusOK, it)
}
