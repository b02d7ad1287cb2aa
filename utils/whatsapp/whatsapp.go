package whatsapp

import (
	"net/url"
	"strings"
	"unicode"
)

const baseURL = "https://wa.me/"

// SenegalCountryCode is prepended to 9-digit local numbers.
const SenegalCountryCode = "221"

// NormalizePhone keeps digits only and adds the Senegal country code to local
// numbers. "+221 77 123 45 67", "00221771234567" and "77 123 45 67" all
// become "221771234567".
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	digits = strings.TrimPrefix(digits, "00")
	if len(digits) == 9 {
		digits = SenegalCountryCode + digits
	}
	return digits
}

// BuildLink returns a click-to-chat deep link with a prefilled message. An
// empty phone yields a link that lets the visitor pick the contact.
func BuildLink(phone, message string) string {
	link := baseURL + NormalizePhone(phone)
	if message == "" {
		return link
	}
	return link + "?text=" + url.QueryEscape(message)
}
