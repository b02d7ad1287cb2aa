package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/badwords"
	"github.com/transport-senegal/api/clients"
	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/config/db"
	redisclient "github.com/transport-senegal/api/config/redis"
	"github.com/transport-senegal/api/controllers/health_controller"
	"github.com/transport-senegal/api/logger"
	middleware "github.com/transport-senegal/api/middlewares"
	"github.com/transport-senegal/api/middlewares/cors"
	"github.com/transport-senegal/api/models/itinerary_models"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/models/shared_models"
	"github.com/transport-senegal/api/routes"
	"github.com/transport-senegal/api/utils/cache"
	"github.com/transport-senegal/api/utils/mail"
	"github.com/transport-senegal/api/utils/notify"
	"github.com/transport-senegal/api/utils/shared_utils"
)

const shutdownTimeout = 5 * time.Second

func init() {
	bootstrap()
}

// bootstrap loads .env before the loggers read LOG_DIR and LOG_LEVEL.
func bootstrap(envFiles ...string) {
	config.LoadEnv(envFiles...)
	logger.InitLoggers()
}

func main() {
	cfg := config.Get()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.BadWordsFile != "" {
		if err := badwords.LoadBadWords(cfg.BadWordsFile); err != nil {
			logger.WarnLogger.Warnf("Keeping built-in bad words list: %v", err)
		}
	}

	deps := routes.Dependencies{
		Config:   cfg,
		Routes:   route_models.DefaultTable(),
		Selector: clients.NewSelectorFromConfig(cfg.AI),
	}

	// Persistence is optional; every store falls back to memory.
	var (
		quoteRepo     quote_models.Repository
		itineraryDB   shared_models.DBTX
		databaseProbe health_controller.Probe
	)
	pool, err := db.Connect(cfg.DatabaseURL)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.WarnLogger.Warnf("Database schema not applied: %v", err)
		}
		cancel()

		quoteRepo = quote_models.NewPostgresRepository(pool)
		itineraryDB = pool
		deps.ChatDB = pool
		databaseProbe = func(ctx context.Context) error { return db.Ping(ctx, pool) }
	} else if !errors.Is(err, db.ErrNotConfigured) {
		logger.ErrorLogger.Errorf("Database unavailable, running without persistence: %v", err)
	}
	defer db.Close()

	deps.Engine = quote_models.NewEngine(deps.Routes, quoteRepo, cfg.Driver.WhatsApp)
	deps.Itineraries = itinerary_models.NewStore(itineraryDB)

	var redisProbe health_controller.Probe
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 3*time.Second)
	rdb, err := redisclient.GetRedisClient(redisCtx)
	redisCancel()
	if err == nil {
		deps.Cache = cache.NewRedisCache(rdb, shared_utils.DISTANCE_CACHE_PREFIX)
		redisProbe = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		if !errors.Is(err, redisclient.ErrNotConfigured) {
			logger.WarnLogger.Warnf("Redis unavailable, using in-process cache: %v", err)
		}
		deps.Cache = cache.NewMemoryCache()
	}
	defer redisclient.CloseRedis()

	var channels []notify.Channel
	if sender, err := mail.NewGomailSender(cfg.SMTP); err == nil {
		deps.Mailer = sender
		channels = append(channels, notify.NewEmailChannel(sender, cfg.Driver.Email, true))
	} else {
		logger.InfoLogger.Info("SMTP not configured, email disabled")
	}
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegramChannel(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.WarnLogger.Warnf("Telegram notifications disabled: %v", err)
		} else {
			channels = append(channels, tg)
		}
	}
	deps.Notifier = notify.NewLeadNotifier(notify.DefaultTimeout, channels...)

	deps.Health = health_controller.NewHealthController(deps.Selector, databaseProbe, redisProbe, deps.Notifier.Channels())

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorLogger.Errorf("Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(middleware.GinLogger())
	r.Use(cors.CorsMiddleware(cfg.AllowedOrigins))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoLogger.Infof("Transport Sénégal API listening on :%s (AI provider: %s)", cfg.Port, deps.Selector.ActiveProvider())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Fatalf("Server failed to listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
	deps.Notifier.Wait()

	logger.InfoLogger.Info("Server exited")
}
