package admin_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/middlewares/auth"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/utils"
	"github.com/transport-senegal/api/utils/jwt_parse"
)

const (
	adminSubject       = "owner"
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// LoginRequest is the POST /api/admin/login body.
type LoginRequest struct {
	Password string `json:"password" binding:"required,max=200"`
}

// AdminController exposes the owner's back office.
type AdminController struct {
	Config config.AdminConfig
	Engine *quote_models.Engine
}

func NewAdminController(cfg config.AdminConfig, engine *quote_models.Engine) *AdminController {
	return &AdminController{Config: cfg, Engine: engine}
}

// Login exchanges the admin password for a signed token.
func (ac *AdminController) Login(c *gin.Context) {
	if !ac.Config.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": utils.ValidationDetails(err)})
		return
	}

	if err := utils.CheckPassword(ac.Config.PasswordHash, req.Password); err != nil {
		logger.WarnLogger.Warnf("Failed admin login from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiresAt, err := jwt_parse.IssueAdminToken([]byte(ac.Config.JWTSecret), adminSubject, jwt_parse.AdminTokenTTL)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to issue admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.InfoLogger.Infof("Admin login from %s", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt.UTC()})
}

// RecentQuotes lists the newest quotes; ?limit= caps the count.
func (ac *AdminController) RecentQuotes(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	quotes, err := ac.Engine.Recent(c.Request.Context(), limit)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list quotes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quotes"})
		return
	}
	if quotes == nil {
		quotes = []quote_models.TripQuote{}
	}

	logger.InfoLogger.Debugf("Admin %s listed %d quotes", utils.StringFromContext(c, auth.AdminSubjectKey), len(quotes))
	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
}
