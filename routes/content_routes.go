package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/controllers/content_controller"
)

func RegisterContentRoutes(api *gin.RouterGroup, driver config.DriverConfig) {
	contentController := content_controller.NewContentController(driver)

	api.GET("/vehicles", contentController.GetVehicles)
	api.GET("/testimonials", contentController.GetTestimonials)
	api.GET("/gallery", contentController.GetGallery)
	api.GET("/driver", contentController.GetDriver)
}
