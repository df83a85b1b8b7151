// Package watcher watches the site source tree and triggers full rebuilds
// with intelligent debouncing. Each change batch reruns the whole build
// pipeline; there is no incremental rebuild.
package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Path    string
	Op      string
	ModTime time.Time
}

// FileFilter determines if a file should trigger a rebuild
type FileFilter func(path string) bool

// ChangeHandler handles a debounced batch of file change events
type ChangeHandler func(events []ChangeEvent) error

// FileWatcher watches for file changes with debouncing
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	delay    time.Duration
	filters  []FileFilter
	handlers []ChangeHandler

	mu      sync.Mutex
	pending []ChangeEvent
	timer   *time.Timer
}

// NewFileWatcher creates a new file watcher. Changes arriving within the
// debounce delay of each other are grouped into one handler call.
func NewFileWatcher(debounceDelay time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		watcher: watcher,
		delay:   debounceDelay,
	}, nil
}

// AddFilter adds a file filter
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.handlers = append(fw.handlers, handler)
}

// AddRecursive watches dir and all of its subdirectories. A missing
// directory is skipped, matching the registry's tolerance for absent source
// directories.
func (fw *FileWatcher) AddRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if filepath.Clean(path) == filepath.Clean(dir) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return fw.watcher.Add(path)
		}
		return nil
	})
}

// Start consumes fsnotify events until ctx is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				fw.handleEvent(event)
			case _, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

// Stop closes the underlying watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// New directories need to join the watch set for recursion to hold.
	if event.Op.Has(fsnotify.Create) {
		_ = fw.AddRecursive(event.Name)
	}

	for _, filter := range fw.filters {
		if !filter(event.Name) {
			return
		}
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.pending = append(fw.pending, ChangeEvent{
		Path:    event.Name,
		Op:      event.Op.String(),
		ModTime: time.Now(),
	})

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.delay, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	events := fw.pending
	fw.pending = nil
	fw.mu.Unlock()

	if len(events) == 0 {
		return
	}
	for _, handler := range fw.handlers {
		_ = handler(events)
	}
}
