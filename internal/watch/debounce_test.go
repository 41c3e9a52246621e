package watch

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncerMergesRapidWritesIntoOneFlush(t *testing.T) {
	d := NewDebouncer(20)

	results := make(chan [2][]string, 1)
	callback := func(changed, removed []string) {
		results <- [2][]string{changed, removed}
	}

	d.Add("a.rb", fsnotify.Write, callback)
	d.Add("a.rb", fsnotify.Write, callback)
	d.Add("b.rb", fsnotify.Create, callback)

	select {
	case got := <-results:
		if len(got[0]) != 2 {
			t.Fatalf("expected 2 changed paths, got %v", got[0])
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced flush")
	}
}

func TestDebouncerSeparatesRemovedFromChanged(t *testing.T) {
	d := NewDebouncer(20)

	results := make(chan [2][]string, 1)
	callback := func(changed, removed []string) {
		results <- [2][]string{changed, removed}
	}

	d.Add("a.rb", fsnotify.Write, callback)
	d.Add("b.rb", fsnotify.Remove, callback)

	select {
	case got := <-results:
		if len(got[0]) != 1 || got[0][0] != "a.rb" {
			t.Fatalf("expected changed=[a.rb], got %v", got[0])
		}
		if len(got[1]) != 1 || got[1][0] != "b.rb" {
			t.Fatalf("expected removed=[b.rb], got %v", got[1])
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced flush")
	}
}
