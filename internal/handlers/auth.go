// Package handlers contains HTTP request handlers for the inventory service.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/GunarsK-portfolio/inventory-service/internal/middleware"
	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	"github.com/GunarsK-portfolio/inventory-service/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieHelper
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, cookies *CookieHelper, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		log:         log,
	}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string    `json:"message"`
	User    view.User `json:"user"`
}

// SessionResponse describes the signed-in user.
type SessionResponse struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message   string          `json:"message"`
	Session   SessionResponse `json:"session"`
	ExpiresIn int64           `json:"expires_in"`
}

func sessionResponse(s *service.Session) SessionResponse {
	return SessionResponse{UserID: s.UserID, UserName: s.UserName, IsAdmin: s.IsAdmin}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrConstraintViolation):
		respondError(c, http.StatusConflict, "email already registered")
		return
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	default:
		logAndRespondError(c, h.log, http.StatusInternalServerError, err, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "registration successful",
		User:    view.FromUser(user),
	})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "incorrect email or password")
		return
	}
	if err != nil {
		logAndRespondError(c, h.log, http.StatusInternalServerError, err, "login failed")
		return
	}

	h.cookies.SetSessionCookie(c, resp.Token, resp.ExpiresIn)
	c.JSON(http.StatusOK, LoginResponse{
		Message:   fmt.Sprintf("Welcome, %s!", resp.Session.UserName),
		Session:   sessionResponse(resp.Session),
		ExpiresIn: int64(resp.ExpiresIn.Seconds()),
	})
}

// Logout deletes the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.cookies.SessionToken(c); token != "" {
		err := h.authService.Logout(c.Request.Context(), token)
		if err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			logAndRespondError(c, h.log, http.StatusInternalServerError, err, "logout failed")
			return
		}
	}

	h.cookies.ClearSessionCookie(c)
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}
