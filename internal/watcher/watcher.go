// Package watcher implements the funcbridge intake daemon: it watches a
// directory for ExecutorInput documents and executes each one against a
// single component as it arrives. It makes no scheduling decisions;
// documents are dispatched in arrival order, one at a time.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDefault is the debounce interval for file events.
const debounceDefault = 200 * time.Millisecond

// pollDefault is the polling interval when fsnotify is unavailable.
const pollDefault = 5 * time.Second

// Config holds intake daemon configuration.
type Config struct {
	IntakeDir string   // where ExecutorInput documents land
	StateDir  string   // working state (processing/completed/failed)
	Component string   // component every document is executed against
	PollMode  bool     // poll instead of fsnotify
	ExecFn    ExecFunc // execution function (injected by cli)
}

// Watcher picks up ExecutorInput documents and executes them.
type Watcher struct {
	cfg       Config
	dirs      Dirs
	processor *Processor
}

// New creates a watcher with validated configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.IntakeDir == "" {
		return nil, fmt.Errorf("intake directory is required")
	}
	if cfg.StateDir == "" {
		return nil, fmt.Errorf("state directory is required")
	}
	if cfg.Component == "" {
		return nil, fmt.Errorf("component name is required")
	}
	if cfg.ExecFn == nil {
		return nil, fmt.Errorf("execution function is required")
	}

	dirs := NewDirs(cfg.IntakeDir, cfg.StateDir)
	return &Watcher{
		cfg:       cfg,
		dirs:      dirs,
		processor: NewProcessor(dirs, cfg.Component, cfg.ExecFn),
	}, nil
}

// Run starts the intake loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := EnsureDirs(w.dirs); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	slog.Info("intake starting",
		"intake", w.cfg.IntakeDir,
		"state", w.cfg.StateDir,
		"component", w.cfg.Component,
	)

	if err := w.recoverOrphans(); err != nil {
		return fmt.Errorf("recover orphans: %w", err)
	}

	if err := w.scanExisting(ctx); err != nil {
		return fmt.Errorf("scan existing: %w", err)
	}

	if w.cfg.PollMode {
		return w.runPollWatcher(ctx)
	}
	return w.runFSWatcher(ctx)
}

// recoverOrphans files documents left in processing/ by a previous crash.
func (w *Watcher) recoverOrphans() error {
	entries, err := os.ReadDir(w.dirs.Processing)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isDocumentFile(e.Name()) {
			continue
		}
		slog.Warn("orphaned document from interrupted run", "file", e.Name())
		err := w.processor.file(filepath.Join(w.dirs.Processing, e.Name()), &Outcome{
			Document:  e.Name(),
			Component: w.cfg.Component,
			State:     "failed",
			Error:     "interrupted: process exited mid-execution",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// scanExisting processes documents already waiting in the intake dir.
func (w *Watcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.IntakeDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isDocumentFile(e.Name()) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		path := filepath.Join(w.cfg.IntakeDir, e.Name())
		if err := w.processor.Process(ctx, path); err != nil {
			slog.Error("process document", "file", e.Name(), "error", err)
		}
	}
	return nil
}

// runFSWatcher watches the intake directory using fsnotify.
func (w *Watcher) runFSWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.cfg.IntakeDir); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	slog.Info("watching for documents", "mode", "fsnotify", "dir", w.cfg.IntakeDir)

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()
			slog.Info("intake stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isDocumentFile(filepath.Base(event.Name)) {
				continue
			}

			path := event.Name
			mu.Lock()
			if t, exists := pending[path]; exists {
				t.Stop()
			}
			pending[path] = time.AfterFunc(debounceDefault, func() {
				if err := w.processor.Process(ctx, path); err != nil {
					slog.Error("process document", "file", filepath.Base(path), "error", err)
				}
				mu.Lock()
				delete(pending, path)
				mu.Unlock()
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// runPollWatcher rescans the intake directory on a fixed interval.
func (w *Watcher) runPollWatcher(ctx context.Context) error {
	slog.Info("watching for documents", "mode", "poll", "dir", w.cfg.IntakeDir, "interval", pollDefault)

	ticker := time.NewTicker(pollDefault)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("intake stopped")
			return nil
		case <-ticker.C:
			if err := w.scanExisting(ctx); err != nil && err != context.Canceled {
				slog.Error("scan intake dir", "error", err)
			}
		}
	}
}

// isDocumentFile reports whether a file name looks like an ExecutorInput
// document. Outcome files written by the processor are excluded.
func isDocumentFile(name string) bool {
	return strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".outcome.json")
}
