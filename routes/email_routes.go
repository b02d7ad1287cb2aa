package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/controllers/email_controller"
	middleware "github.com/transport-senegal/api/middlewares"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/utils/mail"
)

func RegisterEmailRoutes(api *gin.RouterGroup, sender mail.Sender, engine *quote_models.Engine, driverEmail string, limits config.RateLimitConfig) {
	emailController := email_controller.NewEmailController(sender, engine, driverEmail)

	api.POST("/send-email", middleware.NewRateLimiter(limits.Email, "email"), emailController.SendEmail)
}
