package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/jarredhawkins/blocklocate"
	"github.com/jarredhawkins/blocklocate/internal/logging"
)

// Result is what Watcher reports for one changed or removed file.
type Result struct {
	Path    string
	Ranges  []blocklocate.Range
	Err     error
	Removed bool
}

// ResultHandler is called once per changed or removed file after debounce.
type ResultHandler func(Result)

// Watcher re-runs Locate against Ruby-family files under rootPath as they
// change, debounced the way the teacher's Watcher+Debouncer pair batches
// editor save bursts into one dispatch.
type Watcher struct {
	watcher   *fsnotify.Watcher
	rootPath  string
	opts      blocklocate.Options
	handler   ResultHandler
	debouncer *Debouncer
	done      chan struct{}
}

// New creates a Watcher rooted at rootPath. opts configures every Locate
// call the watcher makes; the zero value uses blocklocate's Ruby-flavored
// defaults.
func New(rootPath string, opts blocklocate.Options, handler ResultHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   fsw,
		rootPath:  rootPath,
		opts:      opts,
		handler:   handler,
		debouncer: NewDebouncer(100),
		done:      make(chan struct{}),
	}, nil
}

// Start adds every directory under rootPath to the watch set and begins the
// event loop in a goroutine.
func (w *Watcher) Start() error {
	log := logging.Default()

	err := filepath.WalkDir(w.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Warn("failed to watch directory", "path", path, "err", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.eventLoop()

	log.Info("watching for changes", "root", w.rootPath)
	return nil
}

func (w *Watcher) eventLoop() {
	log := logging.Default()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error("watcher error", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Lstat(path); err == nil && info.IsDir() {
			name := filepath.Base(path)
			if !strings.HasPrefix(name, ".") && name != "vendor" && name != "node_modules" {
				_ = w.watcher.Add(path)
			}
			return
		}
	}

	if !isRubyFile(path) {
		return
	}

	w.debouncer.Add(path, event.Op, w.dispatch)
}

func (w *Watcher) dispatch(changed, removed []string) {
	for _, path := range removed {
		w.handler(Result{Path: path, Removed: true})
	}
	for _, path := range changed {
		w.handler(w.locate(path))
	}
}

func (w *Watcher) locate(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	ranges, err := blocklocate.Locate(string(data), w.opts)
	return Result{Path: path, Ranges: ranges, Err: err}
}

// Close stops the event loop and releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func isRubyFile(path string) bool {
	switch filepath.Ext(path) {
	case ".rb", ".rake", ".gemspec":
		return true
	}
	switch filepath.Base(path) {
	case "Gemfile", "Rakefile", "Guardfile", "Vagrantfile":
		return true
	}
	return false
}
