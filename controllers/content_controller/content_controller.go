package content_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/models/content_models"
	"github.com/transport-senegal/api/models/vehicle_models"
)

// ContentController serves the static marketing content.
type ContentController struct {
	Driver config.DriverConfig
}

func NewContentController(driver config.DriverConfig) *ContentController {
	return &ContentController{Driver: driver}
}

func (cc *ContentController) GetVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicle_models.Catalog()})
}

func (cc *ContentController) GetTestimonials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"testimonials": content_models.Testimonials()})
}

// GetGallery accepts an optional ?category= filter.
func (cc *ContentController) GetGallery(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	c.JSON(http.StatusOK, gin.H{"images": content_models.GalleryImages(category)})
}

func (cc *ContentController) GetDriver(c *gin.Context) {
	c.JSON(http.StatusOK, content_models.DriverProfile(cc.Driver.Name, cc.Driver.WhatsApp, cc.Driver.Email))
}
