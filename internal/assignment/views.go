package assignment

import "sync"

// View is the ephemeral state of one viewer looking at one party: the cached
// projection from the last completed resolution cycle, the reveal tracker,
// and a monotonic sequence number guarding against stale responses. A view
// lives until it is closed or its projection is invalidated; it never
// outlives its party or crosses to another one.
type View struct {
	partyID string

	mu         sync.Mutex
	seq        uint64
	projection *Projection
	generated  bool
	reveal     *RevealTracker
	closed     bool
}

// PartyID returns the party this view belongs to.
func (v *View) PartyID() string {
	return v.partyID
}

// Begin starts a resolution cycle and returns its sequence number. A cycle
// started later supersedes every earlier one.
func (v *View) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	return v.seq
}

// Apply installs the projection produced by cycle seq. A result arriving for
// a superseded cycle or a closed view is discarded and Apply reports false;
// the discard is silent by design, not an error. Installing a projection
// hides every reveal-tracked row again.
func (v *View) Apply(seq uint64, proj Projection) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || seq != v.seq {
		return false
	}
	v.projection = &proj
	v.generated = proj.Generated
	v.reveal.Reset()
	return true
}

// ReportFailure decides what to do with a failed resolution cycle: a stale
// or closed cycle is dropped silently, and a failure on a party the viewer
// never saw generated is suppressed (the viewer simply sees no draw). Only a
// failure that would hide previously established assignments is returned.
func (v *View) ReportFailure(seq uint64, err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || seq != v.seq {
		return nil
	}
	if !v.generated {
		return nil
	}
	return err
}

// Projection returns the cached projection from the last completed cycle.
func (v *View) Projection() (Projection, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.projection == nil {
		return Projection{}, false
	}
	return *v.projection, true
}

// Generated reports whether the last completed cycle saw a draw.
func (v *View) Generated() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.generated
}

// Reveal returns the view's reveal tracker.
func (v *View) Reveal() *RevealTracker {
	return v.reveal
}

// invalidate drops the cached projection so the next cycle re-derives it,
// and bumps the sequence so any in-flight cycle lands stale.
func (v *View) invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	v.projection = nil
	v.reveal.Reset()
}

// close marks the view torn down; any in-flight result for it is discarded.
func (v *View) close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.projection = nil
}

type viewKey struct {
	viewer string
	party  string
}

// Views is the registry of live views, keyed by viewer and party. Nothing in
// it is shared across parties and nothing survives view teardown.
type Views struct {
	mu    sync.Mutex
	views map[viewKey]*View
}

// NewViews creates an empty registry.
func NewViews() *Views {
	return &Views{views: make(map[viewKey]*View)}
}

// Open returns the live view for (viewer, party), creating it when absent.
func (vs *Views) Open(viewerKey, partyID string) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	key := viewKey{viewer: viewerKey, party: partyID}
	if view, ok := vs.views[key]; ok {
		return view
	}
	view := &View{partyID: partyID, reveal: NewRevealTracker()}
	vs.views[key] = view
	return view
}

// Get returns the live view for (viewer, party) if one exists.
func (vs *Views) Get(viewerKey, partyID string) (*View, bool) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	view, ok := vs.views[viewKey{viewer: viewerKey, party: partyID}]
	return view, ok
}

// Close tears down the view for (viewer, party). Responses still in flight
// for it will be discarded when they land.
func (vs *Views) Close(viewerKey, partyID string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	key := viewKey{viewer: viewerKey, party: partyID}
	if view, ok := vs.views[key]; ok {
		view.close()
		delete(vs.views, key)
	}
}

// InvalidateParty drops the cached projection of every live view of a party,
// across all viewers, forcing re-resolution on next access.
func (vs *Views) InvalidateParty(partyID string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	for key, view := range vs.views {
		if key.party == partyID {
			view.invalidate()
		}
	}
}
