package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"giftdraw/internal/assignment"
	"giftdraw/internal/models"
	"giftdraw/internal/santa"
)

func writeEnvelope(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func writeEnvelopeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}

func testPartyDetails() models.PartyDetails {
	hostUserID := int64(100)
	wishlist := "books"
	return models.PartyDetails{
		Party: models.Party{
			ID:            "party-1",
			Status:        models.PartyStatusActive,
			HostCanSeeAll: true,
			HostEmail:     "host@example.com",
		},
		Participants: []models.Participant{
			{ID: 1, PartyID: "party-1", Name: "Hannah", Email: "host@example.com", IsHost: true, UserID: &hostUserID, AccessToken: "tok-hannah"},
			{ID: 2, PartyID: "party-1", Name: "Bea", Email: "bea@example.com", Wishlist: &wishlist, AccessToken: "tok-bea"},
			{ID: 3, PartyID: "party-1", Name: "Carl", Email: "carl@example.com", AccessToken: "tok-carl"},
			{ID: 4, PartyID: "party-1", Name: "Dafne", Email: "dafne@example.com", AccessToken: "tok-dafne"},
		},
	}
}

func testDraw() models.AssignmentState {
	return models.AssignmentState{
		Generated: true,
		Assignments: []models.Assignment{
			{ID: 11, PartyID: "party-1", GiverID: 1, ReceiverID: 2},
			{ID: 12, PartyID: "party-1", GiverID: 2, ReceiverID: 3},
			{ID: 13, PartyID: "party-1", GiverID: 3, ReceiverID: 4},
			{ID: 14, PartyID: "party-1", GiverID: 4, ReceiverID: 1},
		},
	}
}

func newTestHandler(t *testing.T, remote http.Handler) (*AssignmentHandler, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(remote)
	t.Cleanup(server.Close)

	client := santa.NewClient(server.URL, 5*time.Second)
	return NewAssignmentHandler(assignment.NewEngine(client), client), server
}

func viewerRequest(method, target string, body io.Reader, viewer assignment.ViewerContext, pathValues map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	r = r.WithContext(context.WithValue(r.Context(), ViewerContextKey, viewer))
	for key, value := range pathValues {
		r.SetPathValue(key, value)
	}
	return r
}

func decodeViewData(t *testing.T, recorder *httptest.ResponseRecorder) AssignmentViewData {
	t.Helper()
	var body struct {
		Success bool               `json:"success"`
		Data    AssignmentViewData `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success response, got %s", recorder.Body.String())
	}
	return body.Data
}

func hostTestViewer() assignment.ViewerContext {
	name := "Hannah"
	return assignment.AuthenticatedViewer(models.User{ID: 100, Email: "host@example.com", FullName: &name}, "bearer-host")
}

func TestAssignmentGetForTokenViewer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /parties/by-token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "tok-carl" {
			writeEnvelopeError(w, http.StatusNotFound, "unknown token")
			return
		}
		writeEnvelope(w, testPartyDetails())
	})
	mux.HandleFunc("GET /parties/party-1/assignments/public", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, testDraw())
	})

	handler, _ := newTestHandler(t, mux)

	recorder := httptest.NewRecorder()
	req := viewerRequest(http.MethodGet, "/api/parties/party-1/assignments?token=tok-carl", nil,
		assignment.TokenViewer("tok-carl"), map[string]string{"id": "party-1"})
	handler.Get(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	data := decodeViewData(t, recorder)
	if !data.Generated {
		t.Fatal("expected a generated party")
	}
	if data.MyAssignment == nil || data.MyAssignment.Receiver.Name != "Dafne" {
		t.Errorf("expected Carl's receiver Dafne, got %+v", data.MyAssignment)
	}
	if data.AllAssignments != nil {
		t.Error("token viewer must never receive the full table")
	}
}

func TestAssignmentGetAndRevealForHost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /parties/party-1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, testPartyDetails())
	})
	mux.HandleFunc("GET /parties/party-1/assignments", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeEnvelopeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		writeEnvelope(w, testDraw())
	})

	handler, _ := newTestHandler(t, mux)
	viewer := hostTestViewer()
	pathValues := map[string]string{"id": "party-1"}

	recorder := httptest.NewRecorder()
	handler.Get(recorder, viewerRequest(http.MethodGet, "/api/parties/party-1/assignments", nil, viewer, pathValues))

	data := decodeViewData(t, recorder)
	if len(data.AllAssignments) != 4 {
		t.Fatalf("expected 4 table rows, got %d", len(data.AllAssignments))
	}
	for _, row := range data.AllAssignments {
		if row.Revealed || row.Receiver != nil {
			t.Errorf("row %d must start hidden", row.AssignmentID)
		}
	}
	if data.MyAssignment == nil || data.MyAssignment.Wishlist != "books" {
		t.Errorf("expected the host's own pairing with wishlist, got %+v", data.MyAssignment)
	}

	// Reveal one row.
	recorder = httptest.NewRecorder()
	handler.Reveal(recorder, viewerRequest(http.MethodPost, "/api/parties/party-1/assignments/reveal/11", nil,
		viewer, map[string]string{"id": "party-1", "assignmentId": "11"}))
	if recorder.Code != http.StatusOK {
		t.Fatalf("reveal status = %d", recorder.Code)
	}
	var revealBody struct {
		Data struct {
			Revealed bool `json:"revealed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &revealBody); err != nil {
		t.Fatalf("reveal response is not JSON: %v", err)
	}
	if !revealBody.Data.Revealed {
		t.Error("first toggle should reveal")
	}

	// A refresh installs a fresh projection, hiding every row again.
	recorder = httptest.NewRecorder()
	handler.Get(recorder, viewerRequest(http.MethodGet, "/api/parties/party-1/assignments", nil, viewer, pathValues))
	data = decodeViewData(t, recorder)
	for _, row := range data.AllAssignments {
		if row.Revealed {
			t.Errorf("row %d still revealed after refresh", row.AssignmentID)
		}
	}
}

func TestAssignmentGetSuppressesFirstFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusInternalServerError, "store is down")
	})

	handler, _ := newTestHandler(t, mux)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, viewerRequest(http.MethodGet, "/api/parties/party-1/assignments", nil,
		hostTestViewer(), map[string]string{"id": "party-1"}))

	if recorder.Code != http.StatusOK {
		t.Fatalf("a failure before any draw was seen must degrade, got status %d", recorder.Code)
	}
	data := decodeViewData(t, recorder)
	if data.Generated {
		t.Error("expected the ungenerated state")
	}
}

func TestAssignmentGetSurfacesFailureAfterDrawSeen(t *testing.T) {
	healthy := true
	mux := http.NewServeMux()
	mux.HandleFunc("GET /parties/party-1", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			writeEnvelopeError(w, http.StatusInternalServerError, "store is down")
			return
		}
		writeEnvelope(w, testPartyDetails())
	})
	mux.HandleFunc("GET /parties/party-1/assignments", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			writeEnvelopeError(w, http.StatusInternalServerError, "store is down")
			return
		}
		writeEnvelope(w, testDraw())
	})

	handler, _ := newTestHandler(t, mux)
	viewer := hostTestViewer()
	pathValues := map[string]string{"id": "party-1"}

	recorder := httptest.NewRecorder()
	handler.Get(recorder, viewerRequest(http.MethodGet, "/api/parties/party-1/assignments", nil, viewer, pathValues))
	if data := decodeViewData(t, recorder); !data.Generated {
		t.Fatal("expected a generated party on the first fetch")
	}

	healthy = false
	recorder = httptest.NewRecorder()
	handler.Get(recorder, viewerRequest(http.MethodGet, "/api/parties/party-1/assignments", nil, viewer, pathValues))
	if recorder.Code == http.StatusOK {
		t.Fatalf("losing an established draw must surface the failure, got 200 with body %s", recorder.Body.String())
	}
}

func TestGenerateRequiresConfirmationFlag(t *testing.T) {
	remoteCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("POST /parties/party-1/assignments/generate", func(w http.ResponseWriter, r *http.Request) {
		remoteCalled = true
		writeEnvelope(w, models.GenerateResult{AssignmentCount: 4, Attempts: 1})
	})

	handler, _ := newTestHandler(t, mux)
	viewer := hostTestViewer()
	pathValues := map[string]string{"id": "party-1"}

	recorder := httptest.NewRecorder()
	handler.Generate(recorder, viewerRequest(http.MethodPost, "/api/parties/party-1/assignments/generate",
		strings.NewReader(`{"confirmed":false}`), viewer, pathValues))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed generate: status = %d", recorder.Code)
	}
	if remoteCalled {
		t.Fatal("unconfirmed generate must never reach the remote store")
	}

	recorder = httptest.NewRecorder()
	handler.Generate(recorder, viewerRequest(http.MethodPost, "/api/parties/party-1/assignments/generate",
		strings.NewReader(`{"confirmed":true,"sendEmails":true}`), viewer, pathValues))
	if recorder.Code != http.StatusOK {
		t.Fatalf("confirmed generate: status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if !remoteCalled {
		t.Fatal("confirmed generate should reach the remote store")
	}
}

func TestGenerateConflictPassesRemoteMessageThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /parties/party-1/assignments/generate", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusUnprocessableEntity, "Exclusions make assignment impossible")
	})

	handler, _ := newTestHandler(t, mux)

	recorder := httptest.NewRecorder()
	handler.Generate(recorder, viewerRequest(http.MethodPost, "/api/parties/party-1/assignments/generate",
		strings.NewReader(`{"confirmed":true}`), hostTestViewer(), map[string]string{"id": "party-1"}))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", recorder.Code)
	}
	var body apiResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Message != "Exclusions make assignment impossible" {
		t.Errorf("remote message must pass through verbatim, got %q", body.Message)
	}
}

func TestAnonymousViewerCannotGenerate(t *testing.T) {
	handler, _ := newTestHandler(t, http.NewServeMux())

	recorder := httptest.NewRecorder()
	handler.Generate(recorder, viewerRequest(http.MethodPost, "/api/parties/party-1/assignments/generate",
		strings.NewReader(`{"confirmed":true}`), assignment.TokenViewer("tok-bea"), map[string]string{"id": "party-1"}))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}
