package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+221 77 123 45 67": "221771234567",
		"00221771234567":    "221771234567",
		"77 123 45 67":      "221771234567",
		"+33 6 12 34 56 78": "33612345678",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestBuildLink(t *testing.T) {
	link := BuildLink("+221 77 123 45 67", "Bonjour, trajet Dakar → Saly")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/221771234567", u.Path)
	assert.Equal(t, "Bonjour, trajet Dakar → Saly", u.Query().Get("text"))
}

func TestBuildLinkWithoutMessage(t *testing.T) {
	assert.Equal(t, "https://wa.me/221771234567", BuildLink("771234567", ""))
}
