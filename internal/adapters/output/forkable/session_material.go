package forkable

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// SessionMaterial is the part of a Set-Cookie header kept after login.
// Token is the single "name=value" pair of the session cookie; ExpiryHint is the raw
// expires attribute, empty when the cookie has none.
type SessionMaterial struct {
	Token      string
	ExpiryHint string
}

// SessionMaterialExtractor locates the session cookie in raw Set-Cookie header text.
// rawHeader holds one Set-Cookie value per line.
type SessionMaterialExtractor interface {
	Extract(rawHeader string) (SessionMaterial, bool)
}

// RegexpExtractor scans Set-Cookie text for a named cookie and its trailing expires date
type RegexpExtractor struct {
	token   *regexp.Regexp
	expires *regexp.Regexp
}

var _ SessionMaterialExtractor = (*RegexpExtractor)(nil)

// NewRegexpExtractor func - Creates an extractor for the given cookie name
func NewRegexpExtractor(cookieName string) *RegexpExtractor {
	return &RegexpExtractor{
		token:   regexp.MustCompile(`(?m)(?:^|[\s;,])(` + regexp.QuoteMeta(cookieName) + `=[^;\s]+)([^\n]*)`),
		expires: regexp.MustCompile(`(?i);\s*expires=([^;\n]+)`),
	}
}

// Extract implements SessionMaterialExtractor
func (e *RegexpExtractor) Extract(rawHeader string) (SessionMaterial, bool) {
	match := e.token.FindStringSubmatch(rawHeader)
	if match == nil {
		return SessionMaterial{}, false
	}
	material := SessionMaterial{Token: match[1]}
	if exp := e.expires.FindStringSubmatch(match[2]); exp != nil {
		material.ExpiryHint = strings.TrimSpace(exp[1])
	}
	return material, true
}

// cookieDateLayouts are the expires formats seen in the wild
var cookieDateLayouts = []string{
	http.TimeFormat,
	time.RFC1123,
	time.RFC1123Z,
	"Mon, 02-Jan-2006 15:04:05 MST",
	time.RFC850,
	time.ANSIC,
}

// parseCookieDate parses an expires attribute value
func parseCookieDate(value string) (time.Time, bool) {
	for _, layout := range cookieDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
