package health_controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/clients"
	"github.com/transport-senegal/api/logger"
)

const (
	serviceName  = "transport-senegal-api"
	probeTimeout = 2 * time.Second
)

// Probe checks one backing service. A nil probe means the service is not
// configured.
type Probe func(ctx context.Context) error

// HealthController reports liveness and readiness.
type HealthController struct {
	Selector      *clients.Selector
	DatabaseProbe Probe
	RedisProbe    Probe
	Notifications []string
	startedAt     time.Time
}

func NewHealthController(selector *clients.Selector, database, redis Probe, notifications []string) *HealthController {
	return &HealthController{
		Selector:      selector,
		DatabaseProbe: database,
		RedisProbe:    redis,
		Notifications: notifications,
		startedAt:     time.Now(),
	}
}

// Live answers the bare liveness probe.
func (hc *HealthController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health reports which optional features are active.
func (hc *HealthController) Health(c *gin.Context) {
	aiProvider := clients.DemoProviderName
	var providers []clients.ProviderStatus
	if hc.Selector != nil {
		aiProvider = hc.Selector.ActiveProvider()
		providers = hc.Selector.Status()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"service":       serviceName,
		"aiProvider":    aiProvider,
		"demoMode":      aiProvider == clients.DemoProviderName,
		"providers":     providers,
		"database":      hc.DatabaseProbe != nil,
		"redis":         hc.RedisProbe != nil,
		"notifications": hc.Notifications,
		"uptimeSeconds": int64(time.Since(hc.startedAt).Seconds()),
		"time":          time.Now().UTC().Format(time.RFC3339),
	})
}

func check(ctx context.Context, name string, probe Probe) string {
	if probe == nil {
		return "disabled"
	}
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := probe(probeCtx); err != nil {
		logger.WarnLogger.Warnf("Readiness: %s unavailable: %v", name, err)
		return "down"
	}
	return "up"
}

// Ready pings every configured backend and answers 503 if one is down.
func (hc *HealthController) Ready(c *gin.Context) {
	checks := map[string]string{
		"database": check(c.Request.Context(), "database", hc.DatabaseProbe),
		"redis":    check(c.Request.Context(), "redis", hc.RedisProbe),
	}

	status, code := "ready", http.StatusOK
	for _, state := range checks {
		if state == "down" {
			status, code = "unavailable", http.StatusServiceUnavailable
			break
		}
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
