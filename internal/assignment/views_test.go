package assignment

import (
	"errors"
	"testing"
)

func TestViewStaleResultDiscarded(t *testing.T) {
	views := NewViews()
	view := views.Open("session:abc", "party-1")

	first := view.Begin()
	second := view.Begin()

	if view.Apply(first, Projection{PartyID: "party-1", Generated: true}) {
		t.Error("a superseded cycle must be discarded")
	}
	if _, ok := view.Projection(); ok {
		t.Error("discarded cycle must not install a projection")
	}

	if !view.Apply(second, Projection{PartyID: "party-1", Generated: true}) {
		t.Error("the latest cycle must be applied")
	}
	if proj, ok := view.Projection(); !ok || !proj.Generated {
		t.Error("expected the latest projection installed")
	}
}

func TestViewApplyResetsReveals(t *testing.T) {
	views := NewViews()
	view := views.Open("session:abc", "party-1")

	seq := view.Begin()
	view.Apply(seq, Projection{PartyID: "party-1", Generated: true})
	view.Reveal().Toggle(11)
	if !view.Reveal().Visible(11) {
		t.Fatal("toggle should reveal the row")
	}

	seq = view.Begin()
	view.Apply(seq, Projection{PartyID: "party-1", Generated: true})
	if view.Reveal().Visible(11) {
		t.Error("a fresh projection must hide every row again")
	}
}

func TestViewFailureSuppression(t *testing.T) {
	views := NewViews()
	view := views.Open("session:abc", "party-1")
	cause := errors.New("upstream down")

	// Never saw a draw: the failure is absorbed.
	seq := view.Begin()
	if err := view.ReportFailure(seq, cause); err != nil {
		t.Errorf("failure on a never-generated view must be suppressed, got %v", err)
	}

	// A draw was established, so losing it is worth reporting.
	seq = view.Begin()
	view.Apply(seq, Projection{PartyID: "party-1", Generated: true})
	seq = view.Begin()
	if err := view.ReportFailure(seq, cause); !errors.Is(err, cause) {
		t.Errorf("expected the failure surfaced, got %v", err)
	}

	// A stale cycle's failure is always dropped.
	stale := view.Begin()
	view.Begin()
	if err := view.ReportFailure(stale, cause); err != nil {
		t.Errorf("stale failure must be dropped, got %v", err)
	}
}

func TestViewsCloseDiscardsInFlightResults(t *testing.T) {
	views := NewViews()
	view := views.Open("session:abc", "party-1")
	seq := view.Begin()

	views.Close("session:abc", "party-1")

	if view.Apply(seq, Projection{PartyID: "party-1", Generated: true}) {
		t.Error("a closed view must discard late results")
	}
	if err := view.ReportFailure(seq, errors.New("late failure")); err != nil {
		t.Errorf("a closed view must drop late failures, got %v", err)
	}
	if _, ok := views.Get("session:abc", "party-1"); ok {
		t.Error("closed view must leave the registry")
	}
}

func TestViewsAreScopedPerViewerAndParty(t *testing.T) {
	views := NewViews()
	host := views.Open("session:host", "party-1")
	guest := views.Open("token:tok-bea", "party-1")
	other := views.Open("session:host", "party-2")

	if host == guest || host == other {
		t.Fatal("views must not be shared across viewers or parties")
	}

	seq := host.Begin()
	host.Apply(seq, Projection{PartyID: "party-1", Generated: true})
	host.Reveal().Toggle(11)

	if guest.Reveal().Visible(11) {
		t.Error("reveal state leaked across viewers")
	}
	if same := views.Open("session:host", "party-1"); same != host {
		t.Error("Open must return the existing live view")
	}
}

func TestInvalidatePartySparesOtherParties(t *testing.T) {
	views := NewViews()
	one := views.Open("session:host", "party-1")
	two := views.Open("session:host", "party-2")

	seq := one.Begin()
	one.Apply(seq, Projection{PartyID: "party-1", Generated: true})
	seq = two.Begin()
	two.Apply(seq, Projection{PartyID: "party-2", Generated: true})

	views.InvalidateParty("party-1")

	if _, ok := one.Projection(); ok {
		t.Error("expected party-1 view invalidated")
	}
	if _, ok := two.Projection(); !ok {
		t.Error("party-2 view must be untouched")
	}
}
