package models

import "time"

// Assignment is one giver -> receiver pairing within a party's draw. The
// remote store may denormalize giver/receiver contact fields onto the record.
type Assignment struct {
	ID            int64     `json:"id"`
	PartyID       string    `json:"party_id"`
	GiverID       int64     `json:"giver_id"`
	ReceiverID    int64     `json:"receiver_id"`
	CreatedAt     time.Time `json:"created_at"`
	GiverName     string    `json:"giver_name,omitempty"`
	GiverEmail    string    `json:"giver_email,omitempty"`
	ReceiverName  string    `json:"receiver_name,omitempty"`
	ReceiverEmail string    `json:"receiver_email,omitempty"`
}

// PersonRef is the public identity of a participant inside an assignment
// payload: name and email, never wishlist content.
type PersonRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MyAssignment is the viewer's own pairing, projected to the receiver's
// public fields plus the receiver's wishlist.
type MyAssignment struct {
	Receiver            PersonRef `json:"receiver"`
	Wishlist            string    `json:"wishlist,omitempty"`
	WishlistDescription string    `json:"wishlistDescription,omitempty"`
}

// AssignmentState is the raw payload of a fetch-assignments call, before any
// disclosure policy is applied. Generated false means the party has no draw;
// the other fields are then empty regardless of viewer.
type AssignmentState struct {
	Generated    bool          `json:"generated"`
	Assignments  []Assignment  `json:"assignments,omitempty"`
	MyAssignment *MyAssignment `json:"myAssignment,omitempty"`
}

// Exclusion is an unordered pair of participants that must not be matched as
// giver and receiver in either direction.
type Exclusion struct {
	ID             int64     `json:"id"`
	PartyID        string    `json:"party_id"`
	Participant1ID int64     `json:"participant1_id"`
	Participant2ID int64     `json:"participant2_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Matches reports whether the exclusion covers the pair (a, b) in either order.
func (e Exclusion) Matches(a, b int64) bool {
	return (e.Participant1ID == a && e.Participant2ID == b) ||
		(e.Participant1ID == b && e.Participant2ID == a)
}

// GenerateOptions are the knobs of a remote generate call.
type GenerateOptions struct {
	Regenerate          bool  `json:"regenerate"`
	ForceRegenerate     bool  `json:"forceRegenerate"`
	SendEmails          bool  `json:"sendEmails"`
	LockAfterGeneration bool  `json:"lockAfterGeneration"`
	MaxAttempts         int   `json:"maxAttempts"`
	Seed                int64 `json:"seed"`
}

// GenerateResult is the remote store's summary of a completed generation run.
type GenerateResult struct {
	AssignmentCount int  `json:"assignmentCount"`
	Attempts        int  `json:"attempts"`
	EmailsSent      int  `json:"emailsSent"`
	Locked          bool `json:"locked"`
}
