package models

import (
	"time"
)

// PartyStatus is the lifecycle state of a party as reported by the remote store.
type PartyStatus string

const (
	PartyStatusCreated   PartyStatus = "created"
	PartyStatusPending   PartyStatus = "pending"
	PartyStatusActive    PartyStatus = "active"
	PartyStatusCompleted PartyStatus = "completed"
	PartyStatusCancelled PartyStatus = "cancelled"
)

// statusRank orders the monotonic part of the lifecycle. Cancelled sits outside
// the ordering and is handled separately.
var statusRank = map[PartyStatus]int{
	PartyStatusCreated:   0,
	PartyStatusPending:   1,
	PartyStatusActive:    2,
	PartyStatusCompleted: 3,
}

// Valid reports whether the status is one the remote store can produce.
func (s PartyStatus) Valid() bool {
	if s == PartyStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from this status.
func (s PartyStatus) Terminal() bool {
	return s == PartyStatusCompleted || s == PartyStatusCancelled
}

// CanTransition reports whether a party may move from s to next. The lifecycle
// only moves forward (created -> pending -> active -> completed) and cancelled
// is reachable from any non-terminal state.
func (s PartyStatus) CanTransition(next PartyStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == PartyStatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Party is one gift-exchange event with its own roster and pairing.
type Party struct {
	ID              string      `json:"id"`
	UserID          *int64      `json:"user_id"`
	Status          PartyStatus `json:"status"`
	PartyDate       *string     `json:"party_date"`
	Location        *string     `json:"location"`
	MaxAmount       *float64    `json:"max_amount"`
	PersonalMessage *string     `json:"personal_message"`
	HostCanSeeAll   bool        `json:"host_can_see_all"`
	HostEmail       string      `json:"host_email"`
	AccessToken     string      `json:"access_token"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// PartyDetails is the composite payload the remote store returns for a party
// fetch: the party itself, its roster, any assignments the viewer may see
// inline, and the participant record bound to the viewer (nil for a viewer
// without one).
type PartyDetails struct {
	Party           Party         `json:"party"`
	Participants    []Participant `json:"participants"`
	Assignments     []Assignment  `json:"assignments"`
	UserParticipant *Participant  `json:"userParticipant"`
}

// CreatePartyRequest is the payload for creating a party on the remote store.
type CreatePartyRequest struct {
	HostEmail       string                    `json:"hostEmail"`
	PartyDate       string                    `json:"partyDate,omitempty"`
	Location        string                    `json:"location,omitempty"`
	MaxAmount       float64                   `json:"maxAmount,omitempty"`
	PersonalMessage string                    `json:"personalMessage,omitempty"`
	HostCanSeeAll   bool                      `json:"hostCanSeeAll"`
	Participants    []CreatePartyParticipant  `json:"participants,omitempty"`
}

// CreatePartyParticipant is one roster entry in a create-party request.
type CreatePartyParticipant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdatePartyRequest is the payload for updating party settings.
type UpdatePartyRequest struct {
	PartyDate       *string      `json:"partyDate,omitempty"`
	Location        *string      `json:"location,omitempty"`
	MaxAmount       *float64     `json:"maxAmount,omitempty"`
	PersonalMessage *string      `json:"personalMessage,omitempty"`
	HostCanSeeAll   *bool        `json:"hostCanSeeAll,omitempty"`
	Status          *PartyStatus `json:"status,omitempty"`
}
