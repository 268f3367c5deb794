package assignment

import (
	"giftdraw/internal/models"
)

// Pairing is one giver -> receiver row of the host-visible table. It carries
// public identity fields only; wishlist content never appears here.
type Pairing struct {
	AssignmentID int64            `json:"assignmentId"`
	Giver        models.PersonRef `json:"giver"`
	Receiver     models.PersonRef `json:"receiver"`
}

// Projection is the viewer-scoped, policy-filtered subset of a party's
// assignment data. MyAssignment is the viewer's own pairing; AllAssignments
// is the full table and is only present for a logged-in host viewing a party
// whose host_can_see_all flag is set.
type Projection struct {
	PartyID        string               `json:"partyId"`
	Generated      bool                 `json:"generated"`
	MyAssignment   *models.MyAssignment `json:"myAssignment,omitempty"`
	AllAssignments []Pairing            `json:"allAssignments,omitempty"`
}

// Project applies the disclosure policy to raw assignment state. It is a
// pure function of its inputs and performs no I/O.
//
// Rules, in order: identify the viewer's participant record; attach the
// viewer's own pairing with the receiver's public fields and wishlist; attach
// the full table only when the party's host_can_see_all flag is set AND the
// viewer is the logged-in host (an anonymous holder of the host's access
// token still sees only their own pairing); expose nothing when no draw
// exists. Raw data violating
// the store's own permutation invariants (duplicate giver or receiver rows,
// self-pairings, ids outside the roster) is not repaired here; it is treated
// as if no source had produced data.
func Project(raw models.AssignmentState, party models.Party, viewer ViewerContext, participants []models.Participant) Projection {
	proj := Projection{PartyID: party.ID}

	if !raw.Generated {
		return proj
	}
	if len(raw.Assignments) > 0 && !validDraw(raw.Assignments, participants) {
		return proj
	}
	proj.Generated = true

	self := viewerParticipant(viewer, participants)

	if raw.MyAssignment != nil {
		mine := *raw.MyAssignment
		proj.MyAssignment = &mine
	} else if self != nil {
		proj.MyAssignment = ownAssignment(*self, raw.Assignments, participants)
	}

	if party.HostCanSeeAll && viewer.Authenticated() && self != nil && self.IsHost {
		proj.AllAssignments = pairings(raw.Assignments, participants)
	}

	return proj
}

// viewerParticipant matches the viewer to a participant record: by linked
// user id (falling back to normalized email) for authenticated viewers, by
// bound access token for anonymous ones. Returns nil for a viewer without a
// participant record, such as a non-participating host.
func viewerParticipant(viewer ViewerContext, participants []models.Participant) *models.Participant {
	if viewer.Authenticated() {
		user := viewer.User()
		for i := range participants {
			if participants[i].UserID != nil && *participants[i].UserID == user.ID {
				return &participants[i]
			}
		}
		email := models.NormalizeEmail(user.Email)
		for i := range participants {
			if models.NormalizeEmail(participants[i].Email) == email {
				return &participants[i]
			}
		}
		return nil
	}

	token := viewer.AccessToken()
	if token == "" {
		return nil
	}
	for i := range participants {
		if participants[i].AccessToken == token {
			return &participants[i]
		}
	}
	return nil
}

// ownAssignment builds the viewer's pairing from the raw list: the row where
// the viewer is the giver, projected to the receiver's public fields plus
// wishlist. Only here does wishlist content cross the policy boundary.
func ownAssignment(self models.Participant, assignments []models.Assignment, participants []models.Participant) *models.MyAssignment {
	for _, a := range assignments {
		if a.GiverID != self.ID {
			continue
		}
		receiver := models.FindParticipantByID(participants, a.ReceiverID)
		if receiver == nil {
			return nil
		}
		mine := &models.MyAssignment{
			Receiver: models.PersonRef{ID: receiver.ID, Name: receiver.Name, Email: receiver.Email},
		}
		if receiver.Wishlist != nil {
			mine.Wishlist = *receiver.Wishlist
		}
		if receiver.WishlistDescription != nil {
			mine.WishlistDescription = *receiver.WishlistDescription
		}
		return mine
	}
	return nil
}

// pairings projects the raw assignment list to the host table, with public
// identity fields resolved against the roster and falling back to the
// denormalized fields on the assignment record.
func pairings(assignments []models.Assignment, participants []models.Participant) []Pairing {
	rows := make([]Pairing, 0, len(assignments))
	for _, a := range assignments {
		row := Pairing{
			AssignmentID: a.ID,
			Giver:        models.PersonRef{ID: a.GiverID, Name: a.GiverName, Email: a.GiverEmail},
			Receiver:     models.PersonRef{ID: a.ReceiverID, Name: a.ReceiverName, Email: a.ReceiverEmail},
		}
		if giver := models.FindParticipantByID(participants, a.GiverID); giver != nil {
			row.Giver = models.PersonRef{ID: giver.ID, Name: giver.Name, Email: giver.Email}
		}
		if receiver := models.FindParticipantByID(participants, a.ReceiverID); receiver != nil {
			row.Receiver = models.PersonRef{ID: receiver.ID, Name: receiver.Name, Email: receiver.Email}
		}
		rows = append(rows, row)
	}
	return rows
}

// validDraw checks the remote store's permutation invariants: no participant
// appears twice as giver or twice as receiver, nobody is paired with
// themselves, and (when a roster is available) every id belongs to it.
func validDraw(assignments []models.Assignment, participants []models.Participant) bool {
	givers := make(map[int64]bool, len(assignments))
	receivers := make(map[int64]bool, len(assignments))
	for _, a := range assignments {
		if a.GiverID == a.ReceiverID {
			return false
		}
		if givers[a.GiverID] || receivers[a.ReceiverID] {
			return false
		}
		givers[a.GiverID] = true
		receivers[a.ReceiverID] = true
		if len(participants) > 0 {
			if models.FindParticipantByID(participants, a.GiverID) == nil {
				return false
			}
			if models.FindParticipantByID(participants, a.ReceiverID) == nil {
				return false
			}
		}
	}
	return true
}
