package models

import "time"

// Session is a local login session for the gateway. It binds a browser cookie
// to the remote store's bearer token and a snapshot of the account it belongs
// to, so the token never leaves the server.
type Session struct {
	ID        string
	UserID    int64
	Email     string
	FullName  string
	APIToken  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// User reconstructs the stored account snapshot.
func (s *Session) User() User {
	u := User{ID: s.UserID, Email: s.Email}
	if s.FullName != "" {
		name := s.FullName
		u.FullName = &name
	}
	return u
}
