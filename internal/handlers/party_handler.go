package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"giftdraw/internal/models"
	"giftdraw/internal/santa"
	"giftdraw/internal/service"
	"giftdraw/internal/validation"
)

// PartyHandler proxies party and roster operations to the remote store,
// adding request validation, lifecycle checks and invitation email sending.
type PartyHandler struct {
	santa *santa.Client
	email *service.EmailService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(santaClient *santa.Client, email *service.EmailService) *PartyHandler {
	return &PartyHandler{santa: santaClient, email: email}
}

// Create creates a party with its initial roster.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	var req models.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if err := validation.ValidateCreateParty(req); err != nil {
		respondServiceError(w, err)
		return
	}

	details, err := h.santa.CreateParty(r.Context(), session.APIToken, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, details)
}

// Get fetches a party for the current viewer: by access token for anonymous
// viewers, by id through the session otherwise.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	var details *models.PartyDetails
	var err error
	if viewer.Authenticated() {
		details, err = h.santa.Party(r.Context(), viewer.BearerToken(), r.PathValue("id"))
	} else {
		details, err = h.santa.PartyByToken(r.Context(), viewer.AccessToken())
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// Update changes party settings. Status changes only move the lifecycle
// forward; cancelled is reachable from any non-terminal state.
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	partyID := r.PathValue("id")

	var req models.UpdatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if req.Status != nil {
		details, err := h.santa.Party(r.Context(), session.APIToken, partyID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if !details.Party.Status.CanTransition(*req.Status) {
			respondError(w, http.StatusBadRequest, "Invalid status transition", "", nil)
			return
		}
	}

	party, err := h.santa.UpdateParty(r.Context(), session.APIToken, partyID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, party)
}

// Delete removes a party and everything belonging to it.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	if err := h.santa.DeleteParty(r.Context(), session.APIToken, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// MyParties lists the parties hosted by the logged-in account.
func (h *PartyHandler) MyParties(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	parties, err := h.santa.MyParties(r.Context(), session.APIToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, parties)
}

// Account returns the account overview with hosted and joined parties.
func (h *PartyHandler) Account(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	account, err := h.santa.Account(r.Context(), session.APIToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

type addParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AddParticipant adds a person to the roster.
func (h *PartyHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	partyID := r.PathValue("id")

	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		respondServiceError(w, err)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondServiceError(w, err)
		return
	}

	participant, err := h.santa.AddParticipant(r.Context(), session.APIToken, partyID, req.Name, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, participant)
}

// RemoveParticipant removes a person from the roster.
func (h *PartyHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	partyID := r.PathValue("id")

	participantID, err := strconv.ParseInt(r.PathValue("participantId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid participant id", "", nil)
		return
	}

	if err := h.santa.RemoveParticipant(r.Context(), session.APIToken, partyID, participantID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"removed": true})
}

type wishlistRequest struct {
	Wishlist            string `json:"wishlist"`
	WishlistDescription string `json:"wishlistDescription"`
}

// UpdateWishlist replaces the viewer's wishlist: by access token for
// anonymous participants, by participant id through the session otherwise.
func (h *PartyHandler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	viewer, ok := GetViewerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	var participant *models.Participant
	var err error
	if viewer.Authenticated() {
		var participantID int64
		participantID, err = strconv.ParseInt(r.PathValue("participantId"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid participant id", "", nil)
			return
		}
		participant, err = h.santa.UpdateWishlist(r.Context(), viewer.BearerToken(), participantID, req.Wishlist, req.WishlistDescription)
	} else {
		participant, err = h.santa.UpdateWishlistByToken(r.Context(), viewer.AccessToken(), req.Wishlist, req.WishlistDescription)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, participant)
}

type inviteRequest struct {
	ParticipantIDs []int64 `json:"participantIds"`
}

// Invite mails invitation links to roster members. Without explicit ids the
// whole roster except the host is invited. Individual failures are logged
// and reported, not fatal to the rest of the batch.
func (h *PartyHandler) Invite(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	partyID := r.PathValue("id")

	var req inviteRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
			return
		}
	}

	if !h.email.IsEnabled() {
		respondError(w, http.StatusServiceUnavailable, "Email sending is not configured", "", nil)
		return
	}

	details, err := h.santa.Party(r.Context(), session.APIToken, partyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	hostName := session.User().DisplayName()
	if host := models.FindHost(details.Participants); host != nil {
		hostName = host.Name
	}

	wanted := make(map[int64]bool, len(req.ParticipantIDs))
	for _, id := range req.ParticipantIDs {
		wanted[id] = true
	}

	sent, failed := 0, 0
	for _, p := range details.Participants {
		if len(wanted) > 0 && !wanted[p.ID] {
			continue
		}
		if len(wanted) == 0 && p.IsHost {
			continue
		}
		if err := h.email.SendInvitationEmail(r.Context(), details.Party, p, hostName); err != nil {
			log.Printf("failed to invite %s to party %s: %v", p.Email, partyID, err)
			failed++
			continue
		}
		sent++
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"sent": sent, "failed": failed})
}
