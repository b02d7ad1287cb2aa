package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/clients"
	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/controllers/health_controller"
	middleware "github.com/transport-senegal/api/middlewares"
	"github.com/transport-senegal/api/models/itinerary_models"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/models/shared_models"
	"github.com/transport-senegal/api/utils/cache"
	"github.com/transport-senegal/api/utils/mail"
	"github.com/transport-senegal/api/utils/notify"
)

// Sustained per-client ceilings layered on top of the configured burst limits.
const (
	quoteDailyLimit = "100-1d"
	chatDailyLimit  = "300-1d"
)

// Dependencies are the services shared by the handlers. Optional backends
// (ChatDB, Mailer, Notifier) are nil when not configured.
type Dependencies struct {
	Config      *config.AppConfig
	Engine      *quote_models.Engine
	Routes      *route_models.RouteTable
	Itineraries *itinerary_models.Store
	Selector    *clients.Selector
	ChatDB      shared_models.DBTX
	Cache       cache.Cache
	Mailer      mail.Sender
	Notifier    *notify.LeadNotifier
	Health      *health_controller.HealthController
}

// RegisterRoutes mounts every endpoint. All /api routes share the default
// limit; expensive ones add their own.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	RegisterHealthRoutes(r, deps.Health)

	api := r.Group("/api")
	api.Use(middleware.NewRateLimiter(deps.Config.RateLimits.Default, "default"))

	RegisterStatusRoutes(api, deps.Health)
	RegisterQuoteRoutes(api, deps.Engine, deps.Notifier, deps.Config.RateLimits)
	RegisterDistanceRoutes(api, deps.Routes, deps.Cache)
	RegisterItineraryRoutes(api, deps.Itineraries)
	RegisterChatRoutes(api, deps.Selector, deps.ChatDB, deps.Config.RateLimits)
	RegisterEmailRoutes(api, deps.Mailer, deps.Engine, deps.Config.Driver.Email, deps.Config.RateLimits)
	RegisterContentRoutes(api, deps.Config.Driver)
	RegisterAdminRoutes(api, deps.Config.Admin, deps.Engine, deps.Config.RateLimits)
}
