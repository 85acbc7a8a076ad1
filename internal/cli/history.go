package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/funcbridge/internal/config"
	"github.com/ppiankov/funcbridge/internal/history"
	"github.com/ppiankov/funcbridge/internal/reporter"
)

func newHistoryCmd() *cobra.Command {
	var (
		historyDB string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("history-db") && cfg.HistoryDB != "" {
				historyDB = cfg.HistoryDB
			}

			store, err := history.Open(historyDB)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.Recent(limit)
			if err != nil {
				return err
			}
			rep := reporter.NewTextReporter(cmd.OutOrStdout(), true)
			rep.PrintHistory(records)
			return nil
		},
	}

	cmd.Flags().StringVar(&historyDB, "history-db", history.DefaultPath(), "invocation history database path")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of invocations to show")

	return cmd
}
