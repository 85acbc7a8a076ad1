package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/funcbridge/pkg/wire"
)

// ExecFunc executes one ExecutorInput document. It decouples the watcher
// from the cli package, which owns the component registry.
type ExecFunc func(ctx context.Context, inputPath string) error

// Outcome is the result file written next to each processed document.
type Outcome struct {
	Document   string        `json:"document"`
	Component  string        `json:"component"`
	State      string        `json:"state"` // "completed" or "failed"
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Processor handles the lifecycle of a single document: validate, move to
// processing, execute, and file the outcome.
type Processor struct {
	dirs      Dirs
	component string
	execFn    ExecFunc
}

// NewProcessor creates a document processor for one component.
func NewProcessor(dirs Dirs, component string, execFn ExecFunc) *Processor {
	return &Processor{dirs: dirs, component: component, execFn: execFn}
}

// Process runs one intake document end to end. The document file ends up
// in completed/ or failed/ with an outcome file beside it.
func (p *Processor) Process(ctx context.Context, path string) error {
	name := filepath.Base(path)
	slog.Info("processing document", "file", name, "component", p.component)

	if _, err := wire.Load(path); err != nil {
		slog.Error("invalid document", "file", name, "error", err)
		return p.file(path, &Outcome{
			Document:  name,
			Component: p.component,
			State:     "failed",
			Error:     fmt.Sprintf("invalid document: %v", err),
		})
	}

	procPath := filepath.Join(p.dirs.Processing, name)
	if err := moveFile(path, procPath); err != nil {
		return fmt.Errorf("move to processing: %w", err)
	}

	start := time.Now()
	execErr := p.execFn(ctx, procPath)
	outcome := &Outcome{
		Document:  name,
		Component: p.component,
		State:     "completed",
		Duration:  time.Since(start),
	}
	if execErr != nil {
		outcome.State = "failed"
		outcome.Error = execErr.Error()
		slog.Error("document failed", "file", name, "error", execErr)
	} else {
		slog.Info("document completed", "file", name, "duration", outcome.Duration)
	}

	return p.file(procPath, outcome)
}

// file moves the document to its terminal directory and writes the outcome
// record beside it.
func (p *Processor) file(path string, outcome *Outcome) error {
	outcome.FinishedAt = time.Now()

	destDir := p.dirs.Completed
	if outcome.State == "failed" {
		destDir = p.dirs.Failed
	}
	name := filepath.Base(path)
	if err := moveFile(path, filepath.Join(destDir, name)); err != nil {
		return fmt.Errorf("file document: %w", err)
	}

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	outPath := filepath.Join(destDir, strings.TrimSuffix(name, ".json")+".outcome.json")
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}

// moveFile renames src to dst, falling back to copy+remove across devices.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
