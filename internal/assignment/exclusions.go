package assignment

import (
	"context"
	"errors"

	"giftdraw/internal/models"
)

// ErrSelfExclusion means both ids of an exclusion pair are the same person.
var ErrSelfExclusion = errors.New("an exclusion needs two different participants")

// ExclusionManager maintains a party's forbidden pairs on the remote store.
// Pairs are unordered: (A, B) and (B, A) are the same exclusion. The remote
// store enforces host authorization and consults exclusions only at draw
// time; this manager only guarantees exclusion edits never overlap a
// generate or delete call for the same party.
type ExclusionManager struct {
	store Store
	guard *operationGuard
}

// NewExclusionManager creates a manager sharing the per-party operation
// guard with the orchestrator.
func NewExclusionManager(store Store, guard *operationGuard) *ExclusionManager {
	return &ExclusionManager{store: store, guard: guard}
}

// List returns the party's exclusion pairs.
func (m *ExclusionManager) List(ctx context.Context, viewer ViewerContext, partyID string) ([]models.Exclusion, error) {
	return m.store.Exclusions(ctx, viewer.BearerToken(), partyID)
}

// Add registers a forbidden pair. Adding a pair that is already present, in
// either order, is a no-op rather than an error or a duplicate.
func (m *ExclusionManager) Add(ctx context.Context, viewer ViewerContext, partyID string, a, b int64) error {
	if a == b {
		return ErrSelfExclusion
	}
	lo, hi := orderPair(a, b)

	if err := m.guard.acquire(partyID, "exclusion"); err != nil {
		return err
	}
	defer m.guard.release(partyID)

	existing, err := m.store.Exclusions(ctx, viewer.BearerToken(), partyID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Matches(lo, hi) {
			return nil
		}
	}

	return m.store.AddExclusion(ctx, viewer.BearerToken(), partyID, lo, hi)
}

// Remove deletes a forbidden pair, accepting the pair in either order.
func (m *ExclusionManager) Remove(ctx context.Context, viewer ViewerContext, partyID string, a, b int64) error {
	if a == b {
		return ErrSelfExclusion
	}
	lo, hi := orderPair(a, b)

	if err := m.guard.acquire(partyID, "exclusion"); err != nil {
		return err
	}
	defer m.guard.release(partyID)

	return m.store.RemoveExclusion(ctx, viewer.BearerToken(), partyID, lo, hi)
}

// orderPair canonicalizes an unordered pair.
func orderPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
