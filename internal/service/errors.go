// Package service contains the use-case layer of the inventory service.
package service

import (
	"errors"
	"fmt"

	"github.com/GunarsK-portfolio/inventory-service/internal/repository"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrConstraintViolation = errors.New("already exists")
	ErrAccessDenied        = errors.New("access denied")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRegistration        = errors.New("registration failed")
	ErrSessionNotFound     = errors.New("session not found")
)

// storeError maps repository errors onto the service error set, keeping
// the original message for logs.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repository.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	default:
		return err
	}
}

// outcome labels an operation result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrConstraintViolation):
		return "conflict"
	case errors.Is(err, ErrAccessDenied):
		return "denied"
	default:
		return "error"
	}
}
