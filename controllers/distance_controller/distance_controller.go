package distance_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/route_models"
	"github.com/transport-senegal/api/utils"
	"github.com/transport-senegal/api/utils/cache"
	"github.com/transport-senegal/api/utils/sanitize"
	"github.com/transport-senegal/api/utils/shared_utils"
)

// DistanceQuery is the GET /api/distance query string.
type DistanceQuery struct {
	From string `form:"from" json:"from" binding:"required,max=120"`
	To   string `form:"to" json:"to" binding:"required,max=120"`
}

// DistanceResponse describes one route.
type DistanceResponse struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	DistanceKm      float64  `json:"distanceKm"`
	DurationMinutes int      `json:"durationMinutes"`
	Duration        string   `json:"duration"`
	Steps           []string `json:"steps"`
	Estimated       bool     `json:"estimated"`
	Cached          bool     `json:"cached"`
}

// DistanceController answers route lookups.
type DistanceController struct {
	Routes *route_models.RouteTable
	Cache  cache.Cache
}

// NewDistanceController falls back to the built-in route table and a
// process-local cache when routes or c are nil.
func NewDistanceController(routes *route_models.RouteTable, c cache.Cache) *DistanceController {
	if routes == nil {
		routes = route_models.DefaultTable()
	}
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &DistanceController{Routes: routes, Cache: c}
}

func cacheKey(from, to string) string {
	return route_models.Normalize(from) + "|" + route_models.Normalize(to)
}

// GetDistance looks a route up, caching the answer for an hour.
func (dc *DistanceController) GetDistance(c *gin.Context) {
	var q DistanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": utils.ValidationDetails(err)})
		return
	}
	from, to := sanitize.Text(q.From), sanitize.Text(q.To)
	if route_models.Normalize(from) == "" || route_models.Normalize(to) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"from": "is required", "to": "is required"}})
		return
	}

	ctx := c.Request.Context()
	key := cacheKey(from, to)

	var resp DistanceResponse
	err := cache.GetJSON(ctx, dc.Cache, key, &resp)
	if err == nil {
		resp.Cached = true
		c.JSON(http.StatusOK, resp)
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.WarnLogger.Warnf("Distance cache read failed for %s: %v", key, err)
	}

	route, estimated := dc.Routes.Resolve(from, to)
	resp = DistanceResponse{
		From:            route.From,
		To:              route.To,
		DistanceKm:      route.DistanceKm,
		DurationMinutes: route.DurationMinutes,
		Duration:        route_models.FormatDuration(route.DurationMinutes),
		Steps:           route.Steps,
		Estimated:       estimated,
	}

	if err := cache.SetJSON(ctx, dc.Cache, key, resp, shared_utils.DISTANCE_CACHE_TTL); err != nil {
		logger.WarnLogger.Warnf("Distance cache write failed for %s: %v", key, err)
	}

	c.JSON(http.StatusOK, resp)
}

// GetPlaces lists the places with known routes.
func (dc *DistanceController) GetPlaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"places": dc.Routes.Places()})
}
