package sample

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/good-yellow-bee/powerconnect/internal/metrics"
)

// debounce collapses the burst of events editors produce on save.
const debounce = 200 * time.Millisecond

// Watcher reloads a seed file whenever it changes on disk.
type Watcher struct {
	path     string
	onChange func(*Data)
	watcher  *fsnotify.Watcher
	running  atomic.Bool
}

// NewWatcher creates a watcher for path. onChange receives every
// successfully validated reload; invalid files are logged and skipped.
func NewWatcher(path string, onChange func(*Data)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve seed path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{path: abs, onChange: onChange, watcher: w}, nil
}

// Run watches the file's directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.running.Store(false)

	// Watch the directory so atomic rename-on-save is seen.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	w.running.Store(true)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("seed watcher error: %v", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// Running reports whether the watch loop is active.
func (w *Watcher) Running() bool {
	return w.running.Load()
}

func (w *Watcher) reload() {
	data, err := LoadFile(w.path)
	if err != nil {
		log.Printf("warning: seed reload failed, keeping previous data: %v", err)
		metrics.SeedReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	for _, warn := range data.Warnings {
		log.Printf("warning: %s", warn)
	}
	log.Printf("seed reloaded from %s (%d outages, %d notifications)",
		w.path, len(data.Outages), len(data.Notifications))
	metrics.SeedReloadsTotal.WithLabelValues("success").Inc()
	w.onChange(data)
}
