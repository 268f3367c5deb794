// Package assignment decides which pairing facts a viewer may see, how the
// raw assignment state is reconciled from partially-available sources, and
// how exclusions and draw generation are coordinated against the remote
// store. All party data is owned by the remote store; this package only
// holds transient per-view snapshots.
package assignment

import "giftdraw/internal/models"

// ViewerContext identifies who is looking at a party: an authenticated
// account carrying its remote bearer token, or an anonymous holder of an
// access token. Never both. Derived per request, never persisted.
type ViewerContext struct {
	user        *models.User
	bearerToken string
	accessToken string
}

// AuthenticatedViewer builds the context for a logged-in account.
func AuthenticatedViewer(user models.User, bearerToken string) ViewerContext {
	return ViewerContext{user: &user, bearerToken: bearerToken}
}

// TokenViewer builds the context for an anonymous access-token holder.
func TokenViewer(accessToken string) ViewerContext {
	return ViewerContext{accessToken: accessToken}
}

// Authenticated reports whether the viewer is a logged-in account.
func (v ViewerContext) Authenticated() bool {
	return v.user != nil
}

// User returns the authenticated account, or nil for anonymous viewers.
func (v ViewerContext) User() *models.User {
	return v.user
}

// BearerToken returns the remote store token for authenticated viewers.
func (v ViewerContext) BearerToken() string {
	return v.bearerToken
}

// AccessToken returns the access token for anonymous viewers.
func (v ViewerContext) AccessToken() string {
	return v.accessToken
}

// Key returns a stable identifier for keying per-viewer state.
func (v ViewerContext) Key() string {
	if v.user != nil {
		return "session:" + v.bearerToken
	}
	return "token:" + v.accessToken
}
