package assignment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"giftdraw/internal/models"
)

// Resolver reconciles a party's raw assignment state from the candidate
// sources, in order: the token-scoped public endpoint, the session-scoped
// endpoint, then derivation from a party snapshot supplied by the caller.
// Sources are tried strictly in sequence; each later source runs only
// because the earlier ones produced nothing.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver backed by the remote store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveRequest describes one resolution cycle. Snapshot is optional: a
// token-scoped party fetch may embed assignment data inline when the
// dedicated endpoint is unavailable for that viewer, so callers pass along
// whatever party details they already hold.
type ResolveRequest struct {
	PartyID  string
	Viewer   ViewerContext
	Snapshot *models.PartyDetails
}

// Resolve returns the first state any source yields. A single source
// failing is swallowed and logged here; exhaustion without data is the valid
// terminal state {Generated: false}, not an error. Only when every
// applicable source fails does an error reach the caller; the view layer
// then decides whether the viewer ever saw a generated party and suppresses
// the failure otherwise.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (models.AssignmentState, error) {
	type source struct {
		name string
		run  func(context.Context) (*models.AssignmentState, error)
	}

	var sources []source
	if token := req.Viewer.AccessToken(); token != "" {
		sources = append(sources, source{"token", func(ctx context.Context) (*models.AssignmentState, error) {
			return r.store.AssignmentsByToken(ctx, req.PartyID, token)
		}})
	}
	if req.Viewer.Authenticated() {
		sources = append(sources, source{"session", func(ctx context.Context) (*models.AssignmentState, error) {
			return r.store.Assignments(ctx, req.Viewer.BearerToken(), req.PartyID)
		}})
	}
	if req.Snapshot != nil {
		snapshot := req.Snapshot
		sources = append(sources, source{"snapshot", func(context.Context) (*models.AssignmentState, error) {
			return deriveFromSnapshot(snapshot), nil
		}})
	}

	var failures []error
	for _, src := range sources {
		state, err := src.run(ctx)
		if err != nil {
			log.Printf("assignment source %s failed for party %s: %v", src.name, req.PartyID, err)
			failures = append(failures, fmt.Errorf("%s: %w", src.name, err))
			continue
		}
		if state == nil {
			continue
		}
		return *state, nil
	}

	if len(sources) > 0 && len(failures) == len(sources) {
		return models.AssignmentState{}, fmt.Errorf("all assignment sources failed: %w", errors.Join(failures...))
	}

	return models.AssignmentState{Generated: false}, nil
}

// deriveFromSnapshot builds assignment state from a full party snapshot. An
// empty assignment list means the party has no draw from this viewer's
// vantage point.
func deriveFromSnapshot(snapshot *models.PartyDetails) *models.AssignmentState {
	if len(snapshot.Assignments) == 0 {
		return &models.AssignmentState{Generated: false}
	}
	return &models.AssignmentState{
		Generated:   true,
		Assignments: snapshot.Assignments,
	}
}
