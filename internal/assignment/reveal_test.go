package assignment

import "testing"

func TestRevealStartsHidden(t *testing.T) {
	tracker := NewRevealTracker()
	for _, id := range []int64{1, 2, 3} {
		if tracker.Visible(id) {
			t.Errorf("row %d visible before any toggle", id)
		}
	}
}

func TestRevealToggleIsAnInvolution(t *testing.T) {
	tracker := NewRevealTracker()

	if !tracker.Toggle(11) {
		t.Error("first toggle should reveal")
	}
	if !tracker.Visible(11) {
		t.Error("row should be visible after one toggle")
	}
	if tracker.Toggle(11) {
		t.Error("second toggle should hide")
	}
	if tracker.Visible(11) {
		t.Error("row should be hidden after two toggles")
	}
}

func TestRevealRowsAreIndependent(t *testing.T) {
	tracker := NewRevealTracker()
	tracker.Toggle(11)

	if tracker.Visible(12) {
		t.Error("toggling one row must not affect another")
	}

	tracker.Reset()
	if tracker.Visible(11) {
		t.Error("reset must hide every row")
	}
}
