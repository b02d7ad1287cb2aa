package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/controllers/admin_controller"
	middleware "github.com/transport-senegal/api/middlewares"
	"github.com/transport-senegal/api/middlewares/auth"
	"github.com/transport-senegal/api/models/quote_models"
)

func RegisterAdminRoutes(api *gin.RouterGroup, cfg config.AdminConfig, engine *quote_models.Engine, limits config.RateLimitConfig) {
	adminController := admin_controller.NewAdminController(cfg, engine)

	admin := api.Group("/admin")
	admin.POST("/login", middleware.NewRateLimiter(limits.Email, "admin_login"), adminController.Login)

	protected := admin.Group("")
	protected.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/quotes", adminController.RecentQuotes)
	}
}
