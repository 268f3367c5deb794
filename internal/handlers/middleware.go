package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"giftdraw/internal/assignment"
	"giftdraw/internal/models"
	"giftdraw/internal/security"
	"giftdraw/internal/service"
)

const SessionCookieName = "session_id"

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	SessionContextKey ContextKey = "session"
	ViewerContextKey  ContextKey = "viewer"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	csrf        *security.CSRFGenerator
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, csrf *security.CSRFGenerator) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		csrf:        csrf,
	}
}

// RequireAuth rejects requests without a valid session and puts the session
// on the context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
			return
		}

		session, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// WithViewer derives the viewer identity for party endpoints: an access
// token in the query takes precedence, then a login session. Requests with
// neither are rejected.
func (m *Middleware) WithViewer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := r.URL.Query().Get("token"); token != "" {
			viewer := assignment.TokenViewer(token)
			ctx := context.WithValue(r.Context(), ViewerContextKey, viewer)
			next(w, r.WithContext(ctx))
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
			return
		}
		session, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			respondError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
			return
		}

		viewer := assignment.AuthenticatedViewer(session.User(), session.APIToken)
		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		ctx = context.WithValue(ctx, ViewerContextKey, viewer)
		next(w, r.WithContext(ctx))
	}
}

// RequireCSRF validates the X-CSRF-Token header against the session on
// mutating requests. Token viewers carry no session and are exempt.
func (m *Middleware) RequireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next(w, r)
			return
		}
		if !m.csrf.ValidateToken(cookie.Value, r.Header.Get("X-CSRF-Token")) {
			respondError(w, http.StatusForbidden, "Invalid CSRF token", "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit throttles per client IP, for the credential endpoints.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetSessionFromContext retrieves the session from the request context
func GetSessionFromContext(ctx context.Context) *models.Session {
	session, ok := ctx.Value(SessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// GetViewerFromContext retrieves the viewer from the request context
func GetViewerFromContext(ctx context.Context) (assignment.ViewerContext, bool) {
	viewer, ok := ctx.Value(ViewerContextKey).(assignment.ViewerContext)
	return viewer, ok
}
