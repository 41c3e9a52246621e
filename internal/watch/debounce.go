// Package watch re-runs Locate against changed files as they're saved,
// grounded on the teacher's internal/watcher (fsnotify.Watcher + Debouncer),
// adapted from "dispatch a changed/removed path list to an LSP handler" to
// "read the file, run Locate, report its suspect ranges."
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type pendingChange struct {
	path string
	op   fsnotify.Op
}

// Debouncer batches file change events so a burst of writes (editors often
// fire several fsnotify events per save) triggers one Locate run, not one
// per event.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]*pendingChange
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer returns a Debouncer that flushes intervalMs after the last
// call to Add.
func NewDebouncer(intervalMs int) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]*pendingChange),
		interval: time.Duration(intervalMs) * time.Millisecond,
	}
}

// Add records a change for path, merging it with any pending change for the
// same path, and (re)arms the flush timer.
func (d *Debouncer) Add(path string, op fsnotify.Op, callback func(changed, removed []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.pending[path]; ok {
		existing.op |= op
	} else {
		d.pending[path] = &pendingChange{path: path, op: op}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() { d.flush(callback) })
}

func (d *Debouncer) flush(callback func(changed, removed []string)) {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}

	var changed, removed []string
	for path, change := range d.pending {
		switch {
		case change.op.Has(fsnotify.Remove) || change.op.Has(fsnotify.Rename):
			removed = append(removed, path)
		case change.op.Has(fsnotify.Write) || change.op.Has(fsnotify.Create):
			changed = append(changed, path)
		}
	}
	d.pending = make(map[string]*pendingChange)
	d.mu.Unlock()

	if len(changed) > 0 || len(removed) > 0 {
		callback(changed, removed)
	}
}
