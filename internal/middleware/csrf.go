// Package middleware provides HTTP middleware for the inventory service.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// AllowedOrigins must match the origins browsers load the UI from.
	AllowedOrigins []string
	// SessionCookie is the cookie that carries ambient credentials. Requests
	// without it have nothing to forge and skip the check.
	SessionCookie string
}

type originSet map[string]struct{}

func newOriginSet(origins []string) originSet {
	set := make(originSet, len(origins))
	for _, origin := range origins {
		set[normalizeOrigin(origin)] = struct{}{}
	}
	return set
}

func (s originSet) allows(origin string) bool {
	_, ok := s[normalizeOrigin(origin)]
	return ok
}

// CSRF returns middleware that checks Origin, falling back to Referer, on
// state-changing requests that carry the session cookie.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowed := newOriginSet(config.AllowedOrigins)

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if _, err := c.Cookie(config.SessionCookie); err != nil {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		source := "origin"
		if origin == "" {
			origin = originOf(c.GetHeader("Referer"))
			source = "referer"
		}

		switch {
		case origin == "":
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF validation failed: missing origin"})
		case !allowed.allows(origin):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF validation failed: invalid " + source})
		default:
			c.Next()
		}
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}

// originOf reduces a URL to scheme://host[:port].
func originOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
