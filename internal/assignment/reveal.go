package assignment

import "sync"

// RevealTracker records which rows of a host-visible table the viewer has
// explicitly revealed. Every row starts hidden so that loading a party never
// discloses a pairing without a deliberate action. The tracker is ephemeral
// per view session: never persisted, never shared between viewers.
type RevealTracker struct {
	mu       sync.Mutex
	revealed map[int64]struct{}
}

// NewRevealTracker creates a tracker with every row hidden.
func NewRevealTracker() *RevealTracker {
	return &RevealTracker{revealed: make(map[int64]struct{})}
}

// Toggle flips the visibility of one row and returns the new visibility.
func (t *RevealTracker) Toggle(assignmentID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.revealed[assignmentID]; ok {
		delete(t.revealed, assignmentID)
		return false
	}
	t.revealed[assignmentID] = struct{}{}
	return true
}

// Visible reports whether a row is currently revealed.
func (t *RevealTracker) Visible(assignmentID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.revealed[assignmentID]
	return ok
}

// Reset hides every row again.
func (t *RevealTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.revealed = make(map[int64]struct{})
}
