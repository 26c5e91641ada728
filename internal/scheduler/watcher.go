package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/logger"
	"github.com/MrSnakeDoc/langdocs/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// Watcher turns bursts of changes under the content root into single reload triggers
type Watcher struct {
	root     string
	debounce time.Duration
	trigger  chan<- struct{}
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher sending on trigger once root has been quiet for debounce
func NewWatcher(root string, debounce time.Duration, trigger chan<- struct{}, log logger.Logger) *Watcher {
	return &Watcher{
		root:     root,
		debounce: debounce,
		trigger:  trigger,
		logger:   log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start watches the content root and its language directories
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.addTree(fw); err != nil {
		utils.Close(fw)
		return err
	}
	w.watcher = fw

	w.logger.Info("watching content directory",
		logger.String("root", w.root),
		logger.Duration("debounce", w.debounce))

	go w.loop(ctx)
	return nil
}

// addTree watches root and every directory directly below it
func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.root, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(w.root, e.Name())
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("content changed",
				logger.String("path", event.Name),
				logger.String("op", event.Op.String()))

			// New language directories are watched too
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(w.root) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory",
							logger.String("path", event.Name),
							logger.Error(err))
					}
				}
			}

			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case w.trigger <- struct{}{}:
				w.logger.Info("content change detected, reload requested")
			default:
				w.logger.Debug("reload already pending")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("content watcher error", logger.Error(err))

		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops watching and waits for the loop to exit
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		<-w.doneCh
	}
}
