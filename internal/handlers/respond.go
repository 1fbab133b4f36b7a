package handlers

import (
	"errors"
	"net/http"

	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func logAndRespondError(c *gin.Context, log logrus.FieldLogger, status int, err error, message string) {
	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error(message)
	respondError(c, status, message)
}

// respondServiceError maps the service error set onto HTTP statuses.
func respondServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrConstraintViolation):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "access denied: administrator privileges required")
	default:
		logAndRespondError(c, log, http.StatusInternalServerError, err, "internal error")
	}
}
