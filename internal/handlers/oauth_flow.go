package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"giftdraw/internal/security"
)

// The gateway runs the Google authorization-code flow itself and forwards
// only the resulting id token to the remote store, which verifies it and
// issues the bearer token.

func (h *AuthHandler) googleConfig(r *http.Request) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.googleClientID,
		ClientSecret: h.googleClientSecret,
		RedirectURL:  h.oauthRedirectURL(r),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// StartOAuth initiates the Google sign-in flow.
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	if h.googleClientID == "" || h.googleClientSecret == "" {
		respondError(w, http.StatusBadRequest, "Google sign-in not configured", "", nil)
		return
	}

	state := security.GenerateSessionID()
	http.SetCookie(w, security.CreateTempCookie(r, "oauth_state", state, 10*time.Minute))

	authURL := h.googleConfig(r).AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback handles the Google redirect: it validates state, exchanges
// the code, and trades the id token for a remote account and local session.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleClientID == "" || h.googleClientSecret == "" {
		respondError(w, http.StatusBadRequest, "Google sign-in not configured", "", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Missing authorization code", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "Invalid OAuth state", "", nil)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "oauth_state"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := h.googleConfig(r).Exchange(ctx, code)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to exchange OAuth code", "oauth exchange failed", err)
		return
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		respondError(w, http.StatusBadRequest, "Missing Google id token", "", nil)
		return
	}

	session, _, err := h.authService.GoogleLogin(ctx, idToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) oauthRedirectURL(r *http.Request) string {
	baseURL := strings.TrimSpace(h.oauthRedirectBaseURL)
	if baseURL == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return strings.TrimRight(baseURL, "/") + "/auth/google/callback"
}
