package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := map[string]string{
		"  Dakar   Plateau ":                   "Dakar Plateau",
		"<script>alert(1)</script>Thiès":       "alert(1) Thiès",
		"Saint-Louis &amp; Langue de Barbarie": "Saint-Louis & Langue de Barbarie",
		"Lac\x00 Rose\x07":                     "Lac Rose",
		"ligne 1\nligne 2":                     "ligne 1 ligne 2",
	}
	for in, want := range tests {
		assert.Equal(t, want, Text(in), in)
	}
}

func TestMultiline(t *testing.T) {
	in := "Siège bébé\r\n\r\n  <b>Arrêt</b> à Louga  \n\n"
	assert.Equal(t, "Siège bébé\nArrêt à Louga", Multiline(in))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Thiè", Truncate("Thiès", 4))
	assert.Equal(t, "Dakar", Truncate("Dakar", 10))
	assert.Equal(t, "", Truncate("Dakar", 0))
}
