package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/controllers/itinerary_controller"
	"github.com/transport-senegal/api/models/itinerary_models"
)

func RegisterItineraryRoutes(api *gin.RouterGroup, store *itinerary_models.Store) {
	itineraryController := itinerary_controller.NewItineraryController(store)

	itineraries := api.Group("/itineraries")
	{
		itineraries.POST("", itineraryController.SaveItinerary)
		itineraries.GET("/:id", itineraryController.GetItinerary)
	}
}
