package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/clients"
	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/controllers/chat_controller"
	middleware "github.com/transport-senegal/api/middlewares"
	"github.com/transport-senegal/api/models/shared_models"
)

func RegisterChatRoutes(api *gin.RouterGroup, selector *clients.Selector, db shared_models.DBTX, limits config.RateLimitConfig) {
	chatController := chat_controller.NewChatController(selector, db)

	api.POST("/chat", middleware.CombinedRateLimiter("chat", limits.Chat, chatDailyLimit), chatController.Chat)
}
