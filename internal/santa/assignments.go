package santa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"giftdraw/internal/models"
)

// Assignments fetches the assignment state for a party, scoped to the
// authenticated viewer.
func (c *Client) Assignments(ctx context.Context, bearer, partyID string) (*models.AssignmentState, error) {
	var state models.AssignmentState
	path := fmt.Sprintf("/parties/%s/assignments", url.PathEscape(partyID))
	if err := c.do(ctx, http.MethodGet, path, nil, bearer, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// AssignmentsByToken fetches the assignment state scoped to the participant
// bound to the access token. No login required; used for email links.
func (c *Client) AssignmentsByToken(ctx context.Context, partyID, token string) (*models.AssignmentState, error) {
	query := url.Values{"token": []string{token}}
	var state models.AssignmentState
	path := fmt.Sprintf("/parties/%s/assignments/public", url.PathEscape(partyID))
	if err := c.do(ctx, http.MethodGet, path, query, "", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GenerateAssignments asks the remote store to run the draw. The store owns
// the pairing algorithm; exclusion feasibility and conflicts with an existing
// draw are its verdicts and come back as APIErrors.
func (c *Client) GenerateAssignments(ctx context.Context, bearer, partyID string, opts models.GenerateOptions) (*models.GenerateResult, error) {
	var result models.GenerateResult
	path := fmt.Sprintf("/parties/%s/assignments/generate", url.PathEscape(partyID))
	if err := c.do(ctx, http.MethodPost, path, nil, bearer, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAssignments removes a party's draw. Host only.
func (c *Client) DeleteAssignments(ctx context.Context, bearer, partyID string) error {
	path := fmt.Sprintf("/parties/%s/assignments", url.PathEscape(partyID))
	return c.do(ctx, http.MethodDelete, path, nil, bearer, nil, nil)
}

// Exclusions lists a party's exclusion pairs.
func (c *Client) Exclusions(ctx context.Context, bearer, partyID string) ([]models.Exclusion, error) {
	var exclusions []models.Exclusion
	path := fmt.Sprintf("/parties/%s/assignments/exclusions", url.PathEscape(partyID))
	if err := c.do(ctx, http.MethodGet, path, nil, bearer, nil, &exclusions); err != nil {
		return nil, err
	}
	return exclusions, nil
}

// exclusionRequest is the body of exclusion add/remove calls.
type exclusionRequest struct {
	Participant1ID int64 `json:"participant1Id"`
	Participant2ID int64 `json:"participant2Id"`
}

// AddExclusion registers a forbidden pair. Host only; the store enforces
// authorization.
func (c *Client) AddExclusion(ctx context.Context, bearer, partyID string, participant1, participant2 int64) error {
	body := exclusionRequest{Participant1ID: participant1, Participant2ID: participant2}
	path := fmt.Sprintf("/parties/%s/assignments/exclusions", url.PathEscape(partyID))
	return c.do(ctx, http.MethodPost, path, nil, bearer, body, nil)
}

// RemoveExclusion deletes a forbidden pair.
func (c *Client) RemoveExclusion(ctx context.Context, bearer, partyID string, participant1, participant2 int64) error {
	body := exclusionRequest{Participant1ID: participant1, Participant2ID: participant2}
	path := fmt.Sprintf("/parties/%s/assignments/exclusions", url.PathEscape(partyID))
	return c.do(ctx, http.MethodDelete, path, nil, bearer, body, nil)
}
