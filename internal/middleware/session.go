package middleware

import (
	"errors"
	"net/http"

	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionContextKey = "inventory.session"

// TokenSource extracts the raw session token from a request.
type TokenSource func(c *gin.Context) string

// LoadSession resolves the session token on every request and stores the
// session in the gin context. Requests without a valid session continue
// anonymously; the Require* middleware decide what that means.
func LoadSession(auth service.AuthService, tokenFrom TokenSource, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := auth.ResolveSession(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(sessionContextKey, session)
		case errors.Is(err, service.ErrSessionNotFound):
		default:
			log.WithError(err).Warn("failed to resolve session")
		}
		c.Next()
	}
}

// SessionFrom returns the session loaded for this request, or nil.
func SessionFrom(c *gin.Context) *service.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*service.Session)
	return session
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admin sessions with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		if !service.RequireAdmin(session) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied: administrator privileges required"})
			return
		}
		c.Next()
	}
}
