package lexpair

import "testing"

func TestDiffBalancedEmpty(t *testing.T) {
	d := Empty()
	if !d.Balanced() {
		t.Errorf("expected empty diff to be balanced")
	}
	if d.Leaning() != Equal {
		t.Errorf("expected empty diff leaning Equal, got %v", d.Leaning())
	}
}

func TestDiffAddOpenLeansLeft(t *testing.T) {
	d := Empty()
	if err := d.Add(Event{Kind: DefEnd, Role: Open}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Balanced() {
		t.Errorf("expected unbalanced diff")
	}
	if d.Leaning() != Left {
		t.Errorf("expected Left, got %v", d.Leaning())
	}
}

func TestDiffAddCloseLeansRight(t *testing.T) {
	d := Empty()
	if err := d.Add(Event{Kind: DefEnd, Role: Close}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Leaning() != Right {
		t.Errorf("expected Right, got %v", d.Leaning())
	}
}

func TestDiffMixedKindsLeansBoth(t *testing.T) {
	d := Empty()
	mustAdd(t, &d, Event{Kind: DefEnd, Role: Open})
	mustAdd(t, &d, Event{Kind: IfEnd, Role: Close})
	if d.Leaning() != Both {
		t.Errorf("expected Both, got %v", d.Leaning())
	}
}

func TestDiffConcatCancelsAcrossLines(t *testing.T) {
	// Line A: "def foo" -> open DefEnd
	a := Empty()
	mustAdd(t, &a, Event{Kind: DefEnd, Role: Open})

	// Line B: "end" -> close DefEnd
	b := Empty()
	mustAdd(t, &b, Event{Kind: DefEnd, Role: Close})

	if _, err := a.Concat(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Balanced() {
		t.Errorf("expected concatenated diff to be balanced, got open=%d close=%d",
			a.OpenCount(DefEnd), a.CloseCount(DefEnd))
	}
}

func TestDiffConcatLeavesResidualOpen(t *testing.T) {
	a := Empty()
	mustAdd(t, &a, Event{Kind: DefEnd, Role: Open})
	mustAdd(t, &a, Event{Kind: DefEnd, Role: Open})

	b := Empty()
	mustAdd(t, &b, Event{Kind: DefEnd, Role: Close})

	if _, err := a.Concat(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.OpenCount(DefEnd) != 1 {
		t.Errorf("expected 1 residual open, got %d", a.OpenCount(DefEnd))
	}
	if a.Leaning() != Left {
		t.Errorf("expected Left, got %v", a.Leaning())
	}
}

func TestDiffConcatLeavesResidualClose(t *testing.T) {
	a := Empty()
	mustAdd(t, &a, Event{Kind: DefEnd, Role: Open})

	b := Empty()
	mustAdd(t, &b, Event{Kind: DefEnd, Role: Close})
	mustAdd(t, &b, Event{Kind: DefEnd, Role: Close})

	if _, err := a.Concat(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.CloseCount(DefEnd) != 1 {
		t.Errorf("expected 1 residual close, got %d", a.CloseCount(DefEnd))
	}
	if a.Leaning() != Right {
		t.Errorf("expected Right, got %v", a.Leaning())
	}
}

func TestDiffConcatOrderMatters(t *testing.T) {
	// "end" then "def foo": closes arrive before the open they'd cancel, so
	// nothing cancels -- order is not commutative.
	a := Empty()
	mustAdd(t, &a, Event{Kind: DefEnd, Role: Close})

	b := Empty()
	mustAdd(t, &b, Event{Kind: DefEnd, Role: Open})

	if _, err := a.Concat(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Leaning() != Both {
		t.Errorf("expected Both (unmatched close followed by unmatched open), got %v", a.Leaning())
	}
}

func mustAdd(t *testing.T, d *Diff, ev Event) {
	t.Helper()
	if err := d.Add(ev); err != nil {
		t.Fatalf("unexpected error adding event: %v", err)
	}
}
