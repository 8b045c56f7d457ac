package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/logger"
)

// DefaultSettle is how long the watcher waits after the last change
// before reloading. Editors often write a file in several steps.
const DefaultSettle = 150 * time.Millisecond

// Watcher reloads a catalog file whenever it changes on disk.
type Watcher struct {
	path     string
	settle   time.Duration
	onReload func([]*domain.ContentRef)
	fsw      *fsnotify.Watcher
}

// NewWatcher watches path and passes every successfully parsed version to
// onReload. The directory is watched rather than the file so atomic
// replace-by-rename saves are seen.
func NewWatcher(path string, onReload func([]*domain.ContentRef)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		settle:   DefaultSettle,
		onReload: onReload,
		fsw:      fsw,
	}, nil
}

// Run handles file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("catalog %s changed (%s)", w.path, event.Op)
				timer.Reset(w.settle)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher: %v", err)
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	items, err := Load(w.path)
	if err != nil {
		// Keep serving the previous catalog until the file parses again.
		logger.Warn("reloading catalog: %v", err)
		return
	}
	logger.Info("catalog reloaded: %d items", len(items))
	w.onReload(items)
}
