package content_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestimonialsAreCopies(t *testing.T) {
	list := Testimonials()
	assert.NotEmpty(t, list)
	list[0].Name = "changed"
	assert.NotEqual(t, "changed", Testimonials()[0].Name)

	for _, tm := range list {
		assert.True(t, tm.Rating >= 1 && tm.Rating <= 5)
	}
}

func TestGalleryImagesFilter(t *testing.T) {
	all := GalleryImages("")
	culture := GalleryImages("culture")

	assert.Len(t, all, len(gallery))
	assert.NotEmpty(t, culture)
	for _, img := range culture {
		assert.Equal(t, "culture", img.Category)
	}
	assert.Empty(t, GalleryImages("unknown"))
}

func TestDriverProfile(t *testing.T) {
	d := DriverProfile("Ousmane", "+221770000000", "ousmane@example.com")
	assert.Equal(t, "Ousmane", d.Name)
	assert.Equal(t, "+221770000000", d.WhatsApp)

	d.Languages[0] = "changed"
	assert.Equal(t, "Français", DriverProfile("", "", "").Languages[0])
	assert.Equal(t, "Transport Sénégal", DriverProfile("", "", "").Name)
}
