package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/controllers/quote_controller"
	middleware "github.com/transport-senegal/api/middlewares"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/utils/notify"
)

func RegisterQuoteRoutes(api *gin.RouterGroup, engine *quote_models.Engine, notifier *notify.LeadNotifier, limits config.RateLimitConfig) {
	quoteController := quote_controller.NewQuoteController(engine, notifier)

	quotes := api.Group("/quotes")
	{
		quotes.POST("", middleware.CombinedRateLimiter("quote", limits.Quote, quoteDailyLimit), quoteController.CreateQuote)
		quotes.GET("/:id", quoteController.GetQuote)
	}
}
