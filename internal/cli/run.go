package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/funcbridge/internal/config"
	"github.com/ppiankov/funcbridge/internal/history"
	"github.com/ppiankov/funcbridge/internal/reporter"
	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/executor"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

func newRunCmd() *cobra.Command {
	var (
		inputFile string
		compName  string
		historyDB string
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one ExecutorInput document against a registered component",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("history-db") && cfg.HistoryDB != "" {
				historyDB = cfg.HistoryDB
			}
			return runOnce(inputFile, compName, historyDB, noHistory)
		},
	}

	cmd.Flags().StringVar(&inputFile, "input", "executor_input.json", "path to the ExecutorInput document")
	cmd.Flags().StringVar(&compName, "component", "", "registered component to execute (required)")
	cmd.Flags().StringVar(&historyDB, "history-db", history.DefaultPath(), "invocation history database path")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the invocation")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func runOnce(inputFile, compName, historyDB string, noHistory bool) error {
	comp, ok := component.Default.Lookup(compName)
	if !ok {
		return fmt.Errorf("component %q is not registered (available: %s)",
			compName, strings.Join(component.Default.Names(), ", "))
	}

	in, err := wire.Load(inputFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := &history.Record{
		RunID:      newRunID(),
		Component:  compName,
		State:      history.StateCompleted,
		InputFile:  inputFile,
		OutputFile: in.OutputFile(),
		StartedAt:  time.Now(),
	}

	execErr := executor.Run(ctx, in, comp)
	rec.Duration = time.Since(rec.StartedAt)
	if execErr != nil {
		rec.State = history.StateFailed
		rec.Error = execErr.Error()
	}

	if !noHistory {
		if store, err := history.Open(historyDB); err == nil {
			if err := store.Append(rec); err != nil {
				fmt.Fprintf(os.Stderr, "record history: %v\n", err)
			}
			_ = store.Close()
		} else {
			fmt.Fprintf(os.Stderr, "open history: %v\n", err)
		}
	}

	reporter.NewTextReporter(nil, false).PrintInvocation(rec)
	return execErr
}

func newRunID() string {
	return "run-" + time.Now().Format("20060102-150405.000")
}
