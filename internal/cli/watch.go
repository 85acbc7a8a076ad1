package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ppiankov/funcbridge/internal/config"
	"github.com/ppiankov/funcbridge/internal/history"
	"github.com/ppiankov/funcbridge/internal/reporter"
	"github.com/ppiankov/funcbridge/internal/watcher"
	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/executor"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

func newWatchCmd() *cobra.Command {
	var (
		intakeDir string
		stateDir  string
		compName  string
		historyDB string
		pollMode  bool
		tuiMode   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory for ExecutorInput documents and execute each",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("intake") && cfg.IntakeDir != "" {
				intakeDir = cfg.IntakeDir
			}
			if !cmd.Flags().Changed("state-dir") && cfg.StateDir != "" {
				stateDir = cfg.StateDir
			}
			if !cmd.Flags().Changed("history-db") && cfg.HistoryDB != "" {
				historyDB = cfg.HistoryDB
			}
			if !cmd.Flags().Changed("tui") && cfg.TUI != "" {
				tuiMode = cfg.TUI
			}
			return runWatch(intakeDir, stateDir, compName, historyDB, pollMode, tuiMode)
		},
	}

	cmd.Flags().StringVar(&intakeDir, "intake", "intake", "directory to watch for documents")
	cmd.Flags().StringVar(&stateDir, "state-dir", ".funcbridge", "working state directory")
	cmd.Flags().StringVar(&compName, "component", "", "registered component to execute documents against (required)")
	cmd.Flags().StringVar(&historyDB, "history-db", history.DefaultPath(), "invocation history database path")
	cmd.Flags().BoolVar(&pollMode, "poll", false, "poll the intake dir instead of using fsnotify")
	cmd.Flags().StringVar(&tuiMode, "tui", "off", "display mode: live (terminal display) or off")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func runWatch(intakeDir, stateDir, compName, historyDB string, pollMode bool, tuiMode string) error {
	comp, ok := component.Default.Lookup(compName)
	if !ok {
		return fmt.Errorf("component %q is not registered (available: %s)",
			compName, strings.Join(component.Default.Names(), ", "))
	}

	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	execFn := func(ctx context.Context, inputPath string) error {
		in, err := wire.Load(inputPath)
		if err != nil {
			return err
		}

		rec := &history.Record{
			RunID:      newRunID(),
			Component:  compName,
			State:      history.StateCompleted,
			InputFile:  inputPath,
			OutputFile: in.OutputFile(),
			StartedAt:  time.Now(),
		}
		execErr := executor.Run(ctx, in, comp)
		rec.Duration = time.Since(rec.StartedAt)
		if execErr != nil {
			rec.State = history.StateFailed
			rec.Error = execErr.Error()
		}
		if err := store.Append(rec); err != nil {
			fmt.Fprintf(os.Stderr, "record history: %v\n", err)
		}
		return execErr
	}

	w, err := watcher.New(watcher.Config{
		IntakeDir: intakeDir,
		StateDir:  stateDir,
		Component: compName,
		PollMode:  pollMode,
		ExecFn:    execFn,
	})
	if err != nil {
		return err
	}

	if tuiMode != "live" {
		return w.Run(ctx)
	}

	// Live display: the watcher runs in the background, the terminal owns
	// the foreground until the watcher stops or the user quits.
	getRecent := func() []*history.Record {
		records, err := store.Recent(20)
		if err != nil {
			return nil
		}
		return records
	}
	model := reporter.NewWatchModel(compName, intakeDir, getRecent, cancel)
	prog := tea.NewProgram(model)

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Run(ctx)
		prog.Send(reporter.StopMsg{})
	}()

	if _, err := prog.Run(); err != nil {
		cancel()
		<-watchErr
		return fmt.Errorf("run display: %w", err)
	}
	return <-watchErr
}
