package selector

import "testing"

func TestSelectFindsSmallestValidatingSubset(t *testing.T) {
	items := []int{1, 2, 3, 4}
	validates := func(subset []int) (bool, error) {
		sum := 0
		for _, v := range subset {
			sum += v
		}
		return sum == 3, nil // {3} and {1,2} both sum to 3; {3} is smaller
	}

	got, err := Select(items, validates, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("expected [3], got %v", got)
	}
}

func TestSelectReturnsEmptyWhenNoSubsetValidates(t *testing.T) {
	items := []int{1, 2}
	validates := func(subset []int) (bool, error) { return false, nil }

	got, err := Select(items, validates, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSelectReturnsNilForEmptyItems(t *testing.T) {
	got, err := Select[int](nil, func([]int) (bool, error) { return true, nil }, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSelectFallsBackToFullSetWhenCapped(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	// Only the full-set removal validates, but cap at 2 so it's never tried.
	validates := func(subset []int) (bool, error) { return len(subset) == len(items), nil }

	got, err := Select(items, validates, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(items) {
		t.Errorf("expected fallback to full item list, got %v", got)
	}
}

func TestSelectPropagatesValidatesError(t *testing.T) {
	items := []int{1}
	wantErr := errTest{}
	_, err := Select(items, func([]int) (bool, error) { return false, wantErr }, 0)
	if err != wantErr {
		t.Errorf("expected propagated error, got %v", err)
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }
