// Package whatsapp renders reminder messages and wa.me deep links.
// It only formats strings; dispatching is left to the person clicking
// the link.
package whatsapp

import (
	"net/url"
	"strings"
)

// Render fills {placeholder} slots in a message template.
func Render(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// NormalizePhone converts a local Israeli number to the international
// digits-only form wa.me expects. Already-international numbers pass
// through unchanged.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if strings.HasPrefix(number, "0") {
		number = "972" + number[1:]
	}
	return number
}

// Link builds a wa.me deep link with the message pre-filled.
func Link(phone, message string) string {
	number := NormalizePhone(phone)
	if number == "" {
		return ""
	}
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
