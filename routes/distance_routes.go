package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/controllers/distance_controller"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/utils/cache"
)

func RegisterDistanceRoutes(api *gin.RouterGroup, table *route_models.RouteTable, c cache.Cache) {
	distanceController := distance_controller.NewDistanceController(table, c)

	api.GET("/distance", distanceController.GetDistance)
	api.GET("/places", distanceController.GetPlaces)
}
