package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"giftdraw/internal/assignment"
	"giftdraw/internal/santa"
	"giftdraw/internal/service"
	"giftdraw/internal/validation"
)

// apiResponse is the JSON envelope every endpoint answers with, mirroring
// the remote store's shape so the frontend sees one contract.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Message: userMsg})
}

// respondServiceError maps an error from the lower layers onto a status code
// and body. Remote store errors pass through with their original status and
// message so the frontend sees exactly what the store said.
func respondServiceError(w http.ResponseWriter, err error) {
	var apiErr *santa.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.StatusCode, apiErr.Message, "remote store error", err)
		return
	}

	var validationErr validation.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		return
	}

	switch {
	case errors.Is(err, assignment.ErrConfirmationRequired):
		respondError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, assignment.ErrOperationInFlight):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, assignment.ErrAlreadyGenerated):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, assignment.ErrNotGenerated):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, assignment.ErrSelfExclusion):
		respondError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error", "unexpected error", err)
	}
}
