package models

import "time"

// User is an account on the remote store.
type User struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	FullName        *string    `json:"full_name"`
	AvatarURL       *string    `json:"avatar_url"`
	GoogleID        *string    `json:"google_id"`
	IsEmailVerified bool       `json:"is_email_verified"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DisplayName returns the user's full name, falling back to the email address.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}

// AuthPayload is the remote store's response to register, login, and Google
// sign-in: the account plus a bearer token for subsequent calls.
type AuthPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// PartyRole annotates a party with the account's relationship to it.
type PartyRole struct {
	Party
	Role string `json:"role"` // "host" or "participant"
}

// AccountData is the remote store's account overview payload.
type AccountData struct {
	User               User        `json:"user"`
	HostedParties      []PartyRole `json:"hostedParties"`
	ParticipantParties []PartyRole `json:"participantParties"`
}
