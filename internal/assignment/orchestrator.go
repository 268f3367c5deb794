package assignment

import (
	"context"
	"errors"
	"sync"
	"time"

	"giftdraw/internal/models"
)

var (
	// ErrConfirmationRequired means the caller never passed the yes/no gate.
	ErrConfirmationRequired = errors.New("operation requires explicit confirmation")

	// ErrOperationInFlight means another mutating call for the same party is
	// still outstanding; the new call was rejected without touching the
	// remote store.
	ErrOperationInFlight = errors.New("another operation is in progress for this party")

	// ErrAlreadyGenerated means a draw exists and regeneration was not forced.
	ErrAlreadyGenerated = errors.New("assignments already generated; regeneration must be explicitly forced")

	// ErrNotGenerated means there is no draw to delete.
	ErrNotGenerated = errors.New("no assignments have been generated for this party")
)

const defaultMaxAttempts = 1000

// operationGuard serializes mutating remote calls per party. Generate,
// delete and exclusion edits for one party never overlap; a call arriving
// while another is outstanding is rejected locally.
type operationGuard struct {
	mu       sync.Mutex
	inFlight map[string]string
}

func newOperationGuard() *operationGuard {
	return &operationGuard{inFlight: make(map[string]string)}
}

// acquire claims the party for an operation or reports what is in flight.
func (g *operationGuard) acquire(partyID, op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.inFlight[partyID]; ok {
		return ErrOperationInFlight
	}
	g.inFlight[partyID] = op
	return nil
}

// release frees the party. Always called via defer so a remote failure can
// never leave a party stuck busy.
func (g *operationGuard) release(partyID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, partyID)
}

// GenerateRequest carries the confirmation gate and the remote draw options.
type GenerateRequest struct {
	Confirmed bool
	Options   models.GenerateOptions
}

// Orchestrator drives the assignment lifecycle (ungenerated -> generated and
// back) against the remote store. It tracks the last observed lifecycle
// state per party, rejects calls that are invalid from that state, and
// invalidates cached projections after successful mutations so the next
// resolution cycle re-derives everything.
type Orchestrator struct {
	store Store
	views *Views
	guard *operationGuard

	mu        sync.Mutex
	generated map[string]bool
}

// NewOrchestrator creates an orchestrator sharing the views registry and the
// per-party operation guard with the rest of the engine.
func NewOrchestrator(store Store, views *Views, guard *operationGuard) *Orchestrator {
	return &Orchestrator{
		store:     store,
		views:     views,
		guard:     guard,
		generated: make(map[string]bool),
	}
}

// Observe records the lifecycle state a resolution cycle established, so the
// orchestrator validates transitions against what the viewer last saw.
func (o *Orchestrator) Observe(partyID string, generated bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generated[partyID] = generated
}

// Generated returns the last observed lifecycle state for a party.
func (o *Orchestrator) Generated(partyID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.generated[partyID]
}

// Forget drops lifecycle bookkeeping for a party, for view teardown.
func (o *Orchestrator) Forget(partyID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.generated, partyID)
}

// Generate runs the draw. Valid only from the ungenerated state, or from the
// generated state when regeneration is explicitly forced. Requires prior
// confirmation. On failure the lifecycle state is unchanged and the remote
// error is returned verbatim; nothing is retried.
func (o *Orchestrator) Generate(ctx context.Context, viewer ViewerContext, partyID string, req GenerateRequest) (*models.GenerateResult, error) {
	if !req.Confirmed {
		return nil, ErrConfirmationRequired
	}
	if err := o.guard.acquire(partyID, "generate"); err != nil {
		return nil, err
	}
	defer o.guard.release(partyID)

	if o.Generated(partyID) && !req.Options.ForceRegenerate {
		return nil, ErrAlreadyGenerated
	}

	opts := req.Options
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixMilli()
	}

	result, err := o.store.GenerateAssignments(ctx, viewer.BearerToken(), partyID, opts)
	if err != nil {
		return nil, err
	}

	o.Observe(partyID, true)
	o.views.InvalidateParty(partyID)
	return result, nil
}

// Delete removes the draw. Valid only from the generated state and requires
// confirmation. Local projections are cleared only after the remote call
// succeeds, never optimistically.
func (o *Orchestrator) Delete(ctx context.Context, viewer ViewerContext, partyID string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := o.guard.acquire(partyID, "delete"); err != nil {
		return err
	}
	defer o.guard.release(partyID)

	if !o.Generated(partyID) {
		return ErrNotGenerated
	}

	if err := o.store.DeleteAssignments(ctx, viewer.BearerToken(), partyID); err != nil {
		return err
	}

	o.Observe(partyID, false)
	o.views.InvalidateParty(partyID)
	return nil
}
