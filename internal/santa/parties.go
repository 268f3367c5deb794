package santa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"giftdraw/internal/models"
)

// CreateParty creates a new party with its initial roster.
func (c *Client) CreateParty(ctx context.Context, bearer string, req models.CreatePartyRequest) (*models.PartyDetails, error) {
	var details models.PartyDetails
	if err := c.do(ctx, http.MethodPost, "/parties", nil, bearer, req, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Party fetches a party by id. Requires an authenticated viewer.
func (c *Client) Party(ctx context.Context, bearer, partyID string) (*models.PartyDetails, error) {
	var details models.PartyDetails
	if err := c.do(ctx, http.MethodGet, "/parties/"+url.PathEscape(partyID), nil, bearer, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// PartyByToken fetches a party through a party or participant access token,
// with no login required.
func (c *Client) PartyByToken(ctx context.Context, token string) (*models.PartyDetails, error) {
	query := url.Values{"token": []string{token}}
	var details models.PartyDetails
	if err := c.do(ctx, http.MethodGet, "/parties/by-token", query, "", nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// UpdateParty updates party settings.
func (c *Client) UpdateParty(ctx context.Context, bearer, partyID string, req models.UpdatePartyRequest) (*models.Party, error) {
	var party models.Party
	if err := c.do(ctx, http.MethodPut, "/parties/"+url.PathEscape(partyID), nil, bearer, req, &party); err != nil {
		return nil, err
	}
	return &party, nil
}

// DeleteParty deletes a party and everything belonging to it.
func (c *Client) DeleteParty(ctx context.Context, bearer, partyID string) error {
	return c.do(ctx, http.MethodDelete, "/parties/"+url.PathEscape(partyID), nil, bearer, nil, nil)
}

// MyParties lists the parties hosted by the authenticated account.
func (c *Client) MyParties(ctx context.Context, bearer string) ([]models.Party, error) {
	var parties []models.Party
	if err := c.do(ctx, http.MethodGet, "/parties/my-parties", nil, bearer, nil, &parties); err != nil {
		return nil, err
	}
	return parties, nil
}

// Account fetches the account overview (hosted and joined parties).
func (c *Client) Account(ctx context.Context, bearer string) (*models.AccountData, error) {
	var account models.AccountData
	if err := c.do(ctx, http.MethodGet, "/users/account", nil, bearer, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// AddParticipant adds a person to a party's roster.
func (c *Client) AddParticipant(ctx context.Context, bearer, partyID, name, email string) (*models.Participant, error) {
	body := map[string]string{"name": name, "email": email}
	var participant models.Participant
	path := fmt.Sprintf("/parties/%s/participants", url.PathEscape(partyID))
	if err := c.do(ctx, http.MethodPost, path, nil, bearer, body, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// RemoveParticipant removes a person from a party's roster.
func (c *Client) RemoveParticipant(ctx context.Context, bearer, partyID string, participantID int64) error {
	path := fmt.Sprintf("/parties/%s/participants/%d", url.PathEscape(partyID), participantID)
	return c.do(ctx, http.MethodDelete, path, nil, bearer, nil, nil)
}

// UpdateWishlist replaces a participant's wishlist.
func (c *Client) UpdateWishlist(ctx context.Context, bearer string, participantID int64, wishlist, description string) (*models.Participant, error) {
	body := map[string]string{"wishlist": wishlist, "wishlistDescription": description}
	var participant models.Participant
	path := fmt.Sprintf("/participants/%d", participantID)
	if err := c.do(ctx, http.MethodPut, path, nil, bearer, body, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// UpdateWishlistByToken replaces the wishlist of the participant bound to an
// access token, with no login required.
func (c *Client) UpdateWishlistByToken(ctx context.Context, token, wishlist, description string) (*models.Participant, error) {
	query := url.Values{"token": []string{token}}
	body := map[string]string{"wishlist": wishlist, "wishlistDescription": description}
	var participant models.Participant
	if err := c.do(ctx, http.MethodPut, "/participants/by-token", query, "", body, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// ParticipantByToken fetches the participant bound to an access token.
func (c *Client) ParticipantByToken(ctx context.Context, token string) (*models.Participant, error) {
	query := url.Values{"token": []string{token}}
	var participant models.Participant
	if err := c.do(ctx, http.MethodGet, "/participants/by-token", query, "", nil, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}
