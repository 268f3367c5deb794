package assignment

import (
	"context"

	"giftdraw/internal/models"
)

// Store is the slice of the remote Secret Santa API the engine consumes.
// *santa.Client satisfies it; tests substitute a fake.
type Store interface {
	// Assignments fetches assignment state scoped to an authenticated viewer.
	Assignments(ctx context.Context, bearer, partyID string) (*models.AssignmentState, error)

	// AssignmentsByToken fetches assignment state scoped to an access token.
	AssignmentsByToken(ctx context.Context, partyID, token string) (*models.AssignmentState, error)

	// GenerateAssignments runs the draw on the remote store.
	GenerateAssignments(ctx context.Context, bearer, partyID string, opts models.GenerateOptions) (*models.GenerateResult, error)

	// DeleteAssignments removes the party's draw.
	DeleteAssignments(ctx context.Context, bearer, partyID string) error

	// Exclusions lists the party's forbidden pairs.
	Exclusions(ctx context.Context, bearer, partyID string) ([]models.Exclusion, error)

	// AddExclusion registers a forbidden pair.
	AddExclusion(ctx context.Context, bearer, partyID string, participant1, participant2 int64) error

	// RemoveExclusion deletes a forbidden pair.
	RemoveExclusion(ctx context.Context, bearer, partyID string, participant1, participant2 int64) error
}
