// Package watcher regenerates output when the schema or a template override
// changes, for `modelgen dev`.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/modelgen/modelgen/core/cache"
	"github.com/modelgen/modelgen/core/config"
	"github.com/modelgen/modelgen/core/logger"
)

type Watcher struct {
	cfg      *config.Config
	fsw      *fsnotify.Watcher
	onChange func()

	mu       sync.Mutex
	debounce *time.Timer
}

func New(cfg *config.Config, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		onChange: onChange,
	}, nil
}

// Watch blocks, dispatching debounced change callbacks until Close is
// called or the underlying watcher fails.
func (w *Watcher) Watch() error {
	schemaDir := filepath.Dir(w.cfg.Schema)
	if err := w.fsw.Add(schemaDir); err != nil {
		return fmt.Errorf("failed to watch schema directory %s: %w", schemaDir, err)
	}
	logger.Debug("Watching schema directory %s", schemaDir)

	if dir := w.cfg.Codegen.TemplateDir; dir != "" {
		if err := w.fsw.Add(dir); err != nil {
			logger.Warn("Failed to watch template directory %s: %v", dir, err)
		} else {
			logger.Debug("Watching template directory %s", dir)
		}
	}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	if w.shouldExclude(event.Name) {
		return
	}

	logger.Debug("Change detected: %s (%s)", event.Name, event.Op)

	if dir := w.cfg.Codegen.TemplateDir; dir != "" && strings.HasPrefix(event.Name, dir) {
		cache.GetCache().Invalidate("file:" + event.Name)
	}

	w.scheduleChange()
}

func (w *Watcher) shouldExclude(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == filepath.ToSlash(filepath.Clean(w.cfg.Output)) {
		return true
	}
	for _, exclude := range w.cfg.Watch.Exclude {
		if strings.Contains(clean, filepath.ToSlash(exclude)) {
			return true
		}
	}
	return false
}

func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	delay := time.Duration(w.cfg.Watch.Debounce()) * time.Millisecond
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, w.onChange)
}
