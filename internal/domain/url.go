package domain

import (
	"net/url"
	"strings"
)

// Domain returns the bare hostname of a URL with any leading "www." removed.
// It returns an empty string for unparseable URLs.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
