package handlers

import (
	"giftdraw/internal/assignment"
	"giftdraw/internal/models"
)

// AssignmentRowView is one row of the host-visible table as sent to the
// frontend. The receiver is withheld until the row has been revealed, so a
// page load never shows a pairing without a deliberate click.
type AssignmentRowView struct {
	AssignmentID int64             `json:"assignmentId"`
	Giver        models.PersonRef  `json:"giver"`
	Revealed     bool              `json:"revealed"`
	Receiver     *models.PersonRef `json:"receiver,omitempty"`
}

// AssignmentViewData is the response body of an assignment view fetch.
type AssignmentViewData struct {
	PartyID        string               `json:"partyId"`
	Generated      bool                 `json:"generated"`
	MyAssignment   *models.MyAssignment `json:"myAssignment,omitempty"`
	AllAssignments []AssignmentRowView  `json:"allAssignments,omitempty"`
}

// assignmentView renders a projection with the view's reveal state applied.
func assignmentView(proj assignment.Projection, reveal *assignment.RevealTracker) AssignmentViewData {
	data := AssignmentViewData{
		PartyID:      proj.PartyID,
		Generated:    proj.Generated,
		MyAssignment: proj.MyAssignment,
	}

	for _, pairing := range proj.AllAssignments {
		row := AssignmentRowView{
			AssignmentID: pairing.AssignmentID,
			Giver:        pairing.Giver,
		}
		if reveal.Visible(pairing.AssignmentID) {
			row.Revealed = true
			receiver := pairing.Receiver
			row.Receiver = &receiver
		}
		data.AllAssignments = append(data.AllAssignments, row)
	}

	return data
}
