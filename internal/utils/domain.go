package utils

import (
	"net/url"
	"strings"
)

// ExtractDomain pulls the display domain out of a submitted URL, dropping a
// leading "www.". Returns "" for unparseable input.
func ExtractDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
