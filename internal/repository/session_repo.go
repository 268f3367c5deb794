package repository

import (
	"database/sql"
	"fmt"
	"time"

	"giftdraw/internal/database"
	"giftdraw/internal/models"
)

// SessionRepository handles database operations for login sessions. Sessions
// are the only state the gateway keeps locally.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts a new session binding a cookie id to the remote
// bearer token and account snapshot.
func (r *SessionRepository) CreateSession(sessionID string, userID int64, email, fullName, apiToken string, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, email, full_name, api_token, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, userID, email, fullName, apiToken, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &models.Session{
		ID:        sessionID,
		UserID:    userID,
		Email:     email,
		FullName:  fullName,
		APIToken:  apiToken,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	return session, nil
}

// GetSession retrieves a session by ID. A missing session is (nil, nil).
func (r *SessionRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, email, COALESCE(full_name, ''), api_token, created_at, expires_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.Email,
		&session.FullName,
		&session.APIToken,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session from the database
func (r *SessionRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteSessionsForUser removes every session belonging to one account.
func (r *SessionRepository) DeleteSessionsForUser(userID int64) error {
	query := "DELETE FROM sessions WHERE user_id = ?"
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *SessionRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
