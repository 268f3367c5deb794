package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"giftdraw/internal/assignment"
	"giftdraw/internal/models"
	"giftdraw/internal/santa"
)

// AssignmentHandler exposes the assignment engine over HTTP: viewer-scoped
// assignment views, draw generation and deletion, reveal toggles and
// exclusion management.
type AssignmentHandler struct {
	engine *assignment.Engine
	santa  *santa.Client
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(engine *assignment.Engine, santaClient *santa.Client) *AssignmentHandler {
	return &AssignmentHandler{engine: engine, santa: santaClient}
}

// Get runs one resolution cycle for the viewer's assignment view and returns
// the policy-filtered projection with reveal state applied. A refresh that
// fails before the viewer ever saw a draw degrades to the ungenerated state
// instead of an error.
func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}
	partyID := r.PathValue("id")

	view := h.engine.Views.Open(viewer.Key(), partyID)
	seq := view.Begin()

	snapshot := h.fetchSnapshot(r.Context(), viewer, partyID)

	state, err := h.engine.Resolver.Resolve(r.Context(), assignment.ResolveRequest{
		PartyID:  partyID,
		Viewer:   viewer,
		Snapshot: snapshot,
	})
	if err != nil {
		if reportErr := view.ReportFailure(seq, err); reportErr != nil {
			respondServiceError(w, reportErr)
			return
		}
		respondJSON(w, http.StatusOK, assignmentView(assignment.Projection{PartyID: partyID}, view.Reveal()))
		return
	}

	party := models.Party{ID: partyID}
	var participants []models.Participant
	if snapshot != nil {
		party = snapshot.Party
		participants = snapshot.Participants
	}

	proj := assignment.Project(state, party, viewer, participants)
	view.Apply(seq, proj)
	h.engine.Orchestrator.Observe(partyID, proj.Generated)

	respondJSON(w, http.StatusOK, assignmentView(proj, view.Reveal()))
}

// fetchSnapshot fetches party details for the viewer. The snapshot doubles
// as the resolver's fallback source, so a fetch failure is tolerated here
// and surfaces only if every other source fails too.
func (h *AssignmentHandler) fetchSnapshot(ctx context.Context, viewer assignment.ViewerContext, partyID string) *models.PartyDetails {
	var details *models.PartyDetails
	var err error
	if viewer.Authenticated() {
		details, err = h.santa.Party(ctx, viewer.BearerToken(), partyID)
	} else {
		details, err = h.santa.PartyByToken(ctx, viewer.AccessToken())
	}
	if err != nil {
		return nil
	}
	return details
}

type generateRequest struct {
	Confirmed           bool  `json:"confirmed"`
	Regenerate          bool  `json:"regenerate"`
	ForceRegenerate     bool  `json:"forceRegenerate"`
	SendEmails          bool  `json:"sendEmails"`
	LockAfterGeneration bool  `json:"lockAfterGeneration"`
	MaxAttempts         int   `json:"maxAttempts"`
	Seed                int64 `json:"seed"`
}

// Generate runs the draw for a party.
func (h *AssignmentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok || !viewer.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}
	partyID := r.PathValue("id")

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	result, err := h.engine.Orchestrator.Generate(r.Context(), viewer, partyID, assignment.GenerateRequest{
		Confirmed: req.Confirmed,
		Options: models.GenerateOptions{
			Regenerate:          req.Regenerate,
			ForceRegenerate:     req.ForceRegenerate,
			SendEmails:          req.SendEmails,
			LockAfterGeneration: req.LockAfterGeneration,
			MaxAttempts:         req.MaxAttempts,
			Seed:                req.Seed,
		},
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type confirmRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Delete removes the party's draw.
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok || !viewer.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}
	partyID := r.PathValue("id")

	var req confirmRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
			return
		}
	}

	if err := h.engine.Orchestrator.Delete(r.Context(), viewer, partyID, req.Confirmed); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// Reveal toggles the visibility of one row of the viewer's assignment table.
func (h *AssignmentHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}
	partyID := r.PathValue("id")

	assignmentID, err := strconv.ParseInt(r.PathValue("assignmentId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid assignment id", "", nil)
		return
	}

	view, ok := h.engine.Views.Get(viewer.Key(), partyID)
	if !ok {
		respondError(w, http.StatusNotFound, "No open view for this party", "", nil)
		return
	}

	revealed := view.Reveal().Toggle(assignmentID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assignmentId": assignmentID,
		"revealed":     revealed,
	})
}

// CloseView tears down the viewer's assignment view. Late responses for it
// are discarded when they land.
func (h *AssignmentHandler) CloseView(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	h.engine.Views.Close(viewer.Key(), r.PathValue("id"))
	respondJSON(w, http.StatusOK, map[string]interface{}{"closed": true})
}

// ListExclusions lists the party's forbidden pairs.
func (h *AssignmentHandler) ListExclusions(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok || !viewer.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	exclusions, err := h.engine.Exclusions.List(r.Context(), viewer, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, exclusions)
}

type exclusionRequest struct {
	Participant1ID int64 `json:"participant1Id"`
	Participant2ID int64 `json:"participant2Id"`
}

// AddExclusion registers a forbidden pair. Re-adding an existing pair, in
// either order, succeeds without creating a duplicate.
func (h *AssignmentHandler) AddExclusion(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok || !viewer.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	var req exclusionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.engine.Exclusions.Add(r.Context(), viewer, r.PathValue("id"), req.Participant1ID, req.Participant2ID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"added": true})
}

// RemoveExclusion deletes a forbidden pair, accepting it in either order.
func (h *AssignmentHandler) RemoveExclusion(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok || !viewer.Authenticated() {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	var req exclusionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.engine.Exclusions.Remove(r.Context(), viewer, r.PathValue("id"), req.Participant1ID, req.Participant2ID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"removed": true})
}
