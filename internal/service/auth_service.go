package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"giftdraw/internal/models"
	"giftdraw/internal/repository"
	"giftdraw/internal/security"
	"giftdraw/internal/validation"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// RemoteAuthenticator is the slice of the remote store's auth API the
// service consumes. *santa.Client satisfies it.
type RemoteAuthenticator interface {
	Register(ctx context.Context, email, password, fullName string) (*models.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*models.AuthPayload, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.AuthPayload, error)
}

// AuthService authenticates against the remote store and binds the returned
// bearer token to a local session cookie. Credentials are forwarded, never
// stored; the bearer token never leaves the server.
type AuthService struct {
	remote          RemoteAuthenticator
	sessionRepo     *repository.SessionRepository
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(remote RemoteAuthenticator, sessionRepo *repository.SessionRepository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		remote:          remote,
		sessionRepo:     sessionRepo,
		sessionDuration: sessionDuration,
	}
}

// Register creates an account on the remote store and opens a session.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.Session, *models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, err
	}
	if fullName != "" {
		if err := validation.ValidateName(fullName); err != nil {
			return nil, nil, err
		}
	}

	payload, err := s.remote.Register(ctx, email, password, fullName)
	if err != nil {
		return nil, nil, err
	}
	return s.openSession(payload)
}

// Login authenticates against the remote store and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	payload, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	return s.openSession(payload)
}

// GoogleLogin exchanges a Google id token for a remote account and opens a
// session.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*models.Session, *models.User, error) {
	payload, err := s.remote.GoogleLogin(ctx, idToken)
	if err != nil {
		return nil, nil, err
	}
	return s.openSession(payload)
}

// openSession persists a new session for a remote auth payload. The session
// never outlives the bearer token it wraps.
func (s *AuthService) openSession(payload *models.AuthPayload) (*models.Session, *models.User, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)
	if tokenExp, ok := tokenExpiry(payload.Token); ok && tokenExp.Before(expiresAt) {
		expiresAt = tokenExp
	}

	fullName := ""
	if payload.User.FullName != nil {
		fullName = *payload.User.FullName
	}

	session, err := s.sessionRepo.CreateSession(sessionID, payload.User.ID, payload.User.Email, fullName, payload.Token, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	user := payload.User
	return session, &user, nil
}

// tokenExpiry reads the exp claim off the bearer token without verifying the
// signature. The remote store is the sole verifier; the gateway only needs
// the lifetime.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ValidateSession checks if a session is valid and returns it. Expired
// sessions are removed as a side effect.
func (s *AuthService) ValidateSession(sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.sessionRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.sessionRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.sessionRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}
