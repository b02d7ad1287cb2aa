package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/controllers/health_controller"
)

// RegisterHealthRoutes mounts the unthrottled liveness probe.
func RegisterHealthRoutes(r *gin.Engine, hc *health_controller.HealthController) {
	r.GET("/health", hc.Live)
	r.HEAD("/health", hc.Live)
}

func RegisterStatusRoutes(api *gin.RouterGroup, hc *health_controller.HealthController) {
	api.GET("/health", hc.Health)
	api.GET("/ready", hc.Ready)
}
