package http

import "strings"

const bearerPrefix = "Bearer "

// AuthorizationHeader struct - HTTP request header DTO
type AuthorizationHeader struct {
	Authorization string `validate:"required"`
}

// Token returns the credential after the Bearer prefix
func (h AuthorizationHeader) Token() (string, bool) {
	if !strings.HasPrefix(h.Authorization, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h.Authorization, bearerPrefix))
	return token, token != ""
}
