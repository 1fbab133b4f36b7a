package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GunarsK-portfolio/inventory-service/internal/models"
	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// =============================================================================
// Mock AuthService
// =============================================================================

type mockAuthService struct {
	resolveSessionFunc func(ctx context.Context, token string) (*service.Session, error)
}

func (m *mockAuthService) Authenticate(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ResolveSession(ctx context.Context, token string) (*service.Session, error) {
	if m.resolveSessionFunc != nil {
		return m.resolveSessionFunc(ctx, token)
	}
	return nil, service.ErrSessionNotFound
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return errors.New("not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

func headerToken(c *gin.Context) string {
	return c.GetHeader("X-Session")
}

func newSessionRouter(auth service.AuthService, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log, _ := logtest.NewNullLogger()

	router := gin.New()
	router.Use(LoadSession(auth, headerToken, log))
	router.GET("/test", guard, func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, session.UserName)
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set("X-Session", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionsByToken() *mockAuthService {
	return &mockAuthService{
		resolveSessionFunc: func(ctx context.Context, token string) (*service.Session, error) {
			switch token {
			case "admin":
				return &service.Session{UserID: 1, UserName: "Ana", IsAdmin: true}, nil
			case "user":
				return &service.Session{UserID: 2, UserName: "Luis"}, nil
			case "broken":
				return nil, errors.New("redis down")
			default:
				return nil, service.ErrSessionNotFound
			}
		},
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestLoadSession(t *testing.T) {
	noGuard := func(c *gin.Context) { c.Next() }
	router := newSessionRouter(sessionsByToken(), noGuard)

	tests := []struct {
		token string
		want  string
	}{
		{"", "anonymous"},
		{"admin", "Ana"},
		{"unknown", "anonymous"},
		{"broken", "anonymous"},
	}
	for _, tt := range tests {
		w := doRequest(router, tt.token)
		if w.Code != http.StatusOK || w.Body.String() != tt.want {
			t.Errorf("token %q: got %d %q, want 200 %q", tt.token, w.Code, w.Body.String(), tt.want)
		}
	}
}

func TestRequireSession(t *testing.T) {
	router := newSessionRouter(sessionsByToken(), RequireSession())

	if w := doRequest(router, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
	if w := doRequest(router, "user"); w.Code != http.StatusOK {
		t.Errorf("user: status = %d, want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	router := newSessionRouter(sessionsByToken(), RequireAdmin())

	tests := []struct {
		token string
		want  int
	}{
		{"", http.StatusUnauthorized},
		{"user", http.StatusForbidden},
		{"admin", http.StatusOK},
	}
	for _, tt := range tests {
		if w := doRequest(router, tt.token); w.Code != tt.want {
			t.Errorf("token %q: status = %d, want %d", tt.token, w.Code, tt.want)
		}
	}
}
