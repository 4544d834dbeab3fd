package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"ckpecfg/internal/clock"
)

// FileWatcher watches a single file for external changes and emits one
// notification per burst of filesystem events.
type FileWatcher struct {
	Path     string
	Debounce time.Duration

	clk     clock.Clock
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	eventCh chan struct{}
	errorCh chan error
}

// NewFileWatcher creates a watcher for path. The clock drives the
// debounce window, so tests can control it.
func NewFileWatcher(path string, debounce time.Duration, clk clock.Clock) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watching the directory instead of the file itself catches atomic
	// replaces, where the file is renamed over and its own watch would
	// go stale.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &FileWatcher{
		Path:     path,
		Debounce: debounce,
		clk:      clk,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		eventCh:  make(chan struct{}, 1),
		errorCh:  make(chan error, 2),
	}, nil
}

// Start begins delivering notifications in a background goroutine.
func (fw *FileWatcher) Start() {
	go func() {
		var pending <-chan time.Time
		for {
			select {
			case <-fw.stopCh:
				return
			case event, ok := <-fw.fsw.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(fw.Path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Each event restarts the debounce window, so a rapid
				// burst collapses into a single notification.
				pending = fw.clk.After(fw.Debounce)
			case err, ok := <-fw.fsw.Errors:
				if !ok {
					return
				}
				select {
				case fw.errorCh <- err:
				default:
				}
			case <-pending:
				pending = nil
				select {
				case fw.eventCh <- struct{}{}:
				default:
					// A notification is already waiting; one is enough.
				}
			}
		}
	}()
}

// Stop ends watching and releases the filesystem watcher. Stop must be
// called once.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	fw.fsw.Close()
}

// Events returns a channel receiving one element per detected change.
func (fw *FileWatcher) Events() <-chan struct{} {
	return fw.eventCh
}

// Errors returns a channel of errors encountered while watching.
func (fw *FileWatcher) Errors() <-chan error {
	return fw.errorCh
}
