package models

import (
	"strings"
	"time"
)

// Participant is one person invited to a party. Exactly one participant per
// party carries the host flag.
type Participant struct {
	ID                  int64      `json:"id"`
	PartyID             string     `json:"party_id"`
	UserID              *int64     `json:"user_id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	IsHost              bool       `json:"is_host"`
	AssignedTo          *int64     `json:"assigned_to"`
	Wishlist            *string    `json:"wishlist"`
	WishlistDescription *string    `json:"wishlist_description"`
	NotificationSent    bool       `json:"notification_sent"`
	NotificationSentAt  *time.Time `json:"notification_sent_at"`
	AccessToken         string     `json:"access_token"`
	LastViewedAt        *time.Time `json:"last_viewed_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NormalizeEmail canonicalizes an email address for uniqueness comparisons
// within a party: surrounding whitespace and letter case are insignificant.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindParticipantByID returns the participant with the given id, or nil.
func FindParticipantByID(participants []Participant, id int64) *Participant {
	for i := range participants {
		if participants[i].ID == id {
			return &participants[i]
		}
	}
	return nil
}

// FindHost returns the participant holding the host flag, or nil.
func FindHost(participants []Participant) *Participant {
	for i := range participants {
		if participants[i].IsHost {
			return &participants[i]
		}
	}
	return nil
}
