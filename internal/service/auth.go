package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/GunarsK-portfolio/inventory-service/internal/models"
	"github.com/GunarsK-portfolio/inventory-service/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// LoginResponse is the result of a successful login.
type LoginResponse struct {
	Session   *Session
	Token     string
	ExpiresIn time.Duration
}

// AuthService verifies credentials and manages sessions.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	ResolveSession(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService TokenService
	sessions     SessionStore
	hashCost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, tokenService TokenService, sessions SessionStore) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		sessions:     sessions,
		hashCost:     bcrypt.DefaultCost,
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// Burn the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		UserName: user.Name,
		IsAdmin:  user.IsAdmin,
	}
	token, err := s.tokenService.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := s.sessions.Save(ctx, session, s.tokenService.GetExpiry()); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Session:   session,
		Token:     token,
		ExpiresIn: s.tokenService.GetExpiry(),
	}, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: %w: name, email and password are required", ErrRegistration, ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %w", ErrRegistration, err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistration, storeError(err))
	}
	return user, nil
}

func (s *authService) ResolveSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokenService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return s.sessions.Get(ctx, claims.SessionID)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenService.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func (s *authService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("inventory-dummy-password"), s.hashCost)
	})
	return s.dummyHash
}
