package watcher

import (
	"os"
	"path/filepath"
)

// Dirs holds the directory layout for the intake loop.
type Dirs struct {
	Intake     string // orchestrator drops ExecutorInput documents here
	Processing string // documents currently being executed
	Completed  string // documents that executed successfully
	Failed     string // documents that failed
}

// NewDirs creates a Dirs from the intake and state directories.
func NewDirs(intake, stateDir string) Dirs {
	return Dirs{
		Intake:     intake,
		Processing: filepath.Join(stateDir, "processing"),
		Completed:  filepath.Join(stateDir, "completed"),
		Failed:     filepath.Join(stateDir, "failed"),
	}
}

// EnsureDirs creates the intake-loop directories.
func EnsureDirs(d Dirs) error {
	for _, dir := range []string{d.Intake, d.Processing, d.Completed, d.Failed} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
