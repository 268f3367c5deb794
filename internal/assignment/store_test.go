package assignment

import (
	"context"
	"sync"

	"giftdraw/internal/models"
)

// fakeStore implements Store for tests. Each call delegates to the matching
// func when set and counts invocations.
type fakeStore struct {
	mu    sync.Mutex
	calls map[string]int

	assignmentsFn        func(ctx context.Context, bearer, partyID string) (*models.AssignmentState, error)
	assignmentsByTokenFn func(ctx context.Context, partyID, token string) (*models.AssignmentState, error)
	generateFn           func(ctx context.Context, bearer, partyID string, opts models.GenerateOptions) (*models.GenerateResult, error)
	deleteFn             func(ctx context.Context, bearer, partyID string) error
	exclusionsFn         func(ctx context.Context, bearer, partyID string) ([]models.Exclusion, error)
	addExclusionFn       func(ctx context.Context, bearer, partyID string, p1, p2 int64) error
	removeExclusionFn    func(ctx context.Context, bearer, partyID string, p1, p2 int64) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{calls: make(map[string]int)}
}

func (f *fakeStore) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeStore) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) Assignments(ctx context.Context, bearer, partyID string) (*models.AssignmentState, error) {
	f.record("Assignments")
	if f.assignmentsFn != nil {
		return f.assignmentsFn(ctx, bearer, partyID)
	}
	return &models.AssignmentState{Generated: false}, nil
}

func (f *fakeStore) AssignmentsByToken(ctx context.Context, partyID, token string) (*models.AssignmentState, error) {
	f.record("AssignmentsByToken")
	if f.assignmentsByTokenFn != nil {
		return f.assignmentsByTokenFn(ctx, partyID, token)
	}
	return &models.AssignmentState{Generated: false}, nil
}

func (f *fakeStore) GenerateAssignments(ctx context.Context, bearer, partyID string, opts models.GenerateOptions) (*models.GenerateResult, error) {
	f.record("GenerateAssignments")
	if f.generateFn != nil {
		return f.generateFn(ctx, bearer, partyID, opts)
	}
	return &models.GenerateResult{}, nil
}

func (f *fakeStore) DeleteAssignments(ctx context.Context, bearer, partyID string) error {
	f.record("DeleteAssignments")
	if f.deleteFn != nil {
		return f.deleteFn(ctx, bearer, partyID)
	}
	return nil
}

func (f *fakeStore) Exclusions(ctx context.Context, bearer, partyID string) ([]models.Exclusion, error) {
	f.record("Exclusions")
	if f.exclusionsFn != nil {
		return f.exclusionsFn(ctx, bearer, partyID)
	}
	return nil, nil
}

func (f *fakeStore) AddExclusion(ctx context.Context, bearer, partyID string, p1, p2 int64) error {
	f.record("AddExclusion")
	if f.addExclusionFn != nil {
		return f.addExclusionFn(ctx, bearer, partyID, p1, p2)
	}
	return nil
}

func (f *fakeStore) RemoveExclusion(ctx context.Context, bearer, partyID string, p1, p2 int64) error {
	f.record("RemoveExclusion")
	if f.removeExclusionFn != nil {
		return f.removeExclusionFn(ctx, bearer, partyID, p1, p2)
	}
	return nil
}

// fourPersonParty builds a roster and a valid 4-cycle draw used across tests.
func fourPersonParty(hostCanSeeAll bool) (models.Party, []models.Participant, []models.Assignment) {
	party := models.Party{
		ID:            "party-1",
		Status:        models.PartyStatusActive,
		HostCanSeeAll: hostCanSeeAll,
		HostEmail:     "host@example.com",
	}

	hostUserID := int64(100)
	participants := []models.Participant{
		{ID: 1, PartyID: party.ID, Name: "Hannah", Email: "host@example.com", IsHost: true, UserID: &hostUserID, AccessToken: "tok-hannah"},
		{ID: 2, PartyID: party.ID, Name: "Bea", Email: "bea@example.com", AccessToken: "tok-bea"},
		{ID: 3, PartyID: party.ID, Name: "Carl", Email: "carl@example.com", AccessToken: "tok-carl"},
		{ID: 4, PartyID: party.ID, Name: "Dafne", Email: "dafne@example.com", AccessToken: "tok-dafne"},
	}
	wishlist := "books"
	participants[1].Wishlist = &wishlist

	assignments := []models.Assignment{
		{ID: 11, PartyID: party.ID, GiverID: 1, ReceiverID: 2},
		{ID: 12, PartyID: party.ID, GiverID: 2, ReceiverID: 3},
		{ID: 13, PartyID: party.ID, GiverID: 3, ReceiverID: 4},
		{ID: 14, PartyID: party.ID, GiverID: 4, ReceiverID: 1},
	}

	return party, participants, assignments
}

func hostViewer() ViewerContext {
	name := "Hannah"
	return AuthenticatedViewer(models.User{ID: 100, Email: "host@example.com", FullName: &name}, "bearer-host")
}
