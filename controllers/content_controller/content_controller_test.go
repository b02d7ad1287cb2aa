package content_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/models/content_models"
	"github.com/transport-senegal/api/models/vehicle_models"
)

func setup() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cc := NewContentController(config.DriverConfig{Name: "Ibrahima", WhatsApp: "+221771234567"})
	r := gin.New()
	r.GET("/api/vehicles", cc.GetVehicles)
	r.GET("/api/testimonials", cc.GetTestimonials)
	r.GET("/api/gallery", cc.GetGallery)
	r.GET("/api/driver", cc.GetDriver)
	return r
}

func get(t *testing.T, r *gin.Engine, path string, out any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestContentEndpoints(t *testing.T) {
	r := setup()

	var vehicles struct {
		Vehicles []vehicle_models.VehicleInfo `json:"vehicles"`
	}
	get(t, r, "/api/vehicles", &vehicles)
	require.Len(t, vehicles.Vehicles, 3)
	assert.Equal(t, 8, vehicles.Vehicles[2].Capacity)

	var testimonials struct {
		Testimonials []content_models.Testimonial `json:"testimonials"`
	}
	get(t, r, "/api/testimonials", &testimonials)
	assert.NotEmpty(t, testimonials.Testimonials)

	var gallery struct {
		Images []content_models.GalleryImage `json:"images"`
	}
	get(t, r, "/api/gallery?category=Vehicules", &gallery)
	require.Len(t, gallery.Images, 2)
	for _, img := range gallery.Images {
		assert.Equal(t, "vehicules", img.Category)
	}

	var driver content_models.Driver
	get(t, r, "/api/driver", &driver)
	assert.Equal(t, "Ibrahima", driver.Name)
	assert.Equal(t, "+221771234567", driver.WhatsApp)
	assert.Empty(t, driver.Email)
}
