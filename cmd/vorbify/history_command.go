package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vorbify/internal/config"
	"vorbify/internal/errs"
	"vorbify/internal/history"
)

func newHistoryCommand(flags *rootFlags) *cobra.Command {
	var limit int
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(flags.configPath)
			if err != nil {
				return errs.Wrap(errs.ErrPrecondition, "cli", "history", "", err)
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return errs.Wrap(errs.ErrPrecondition, "cli", "history", "open store", err)
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit, failedOnly)
			if err != nil {
				return errs.Wrap(errs.ErrPrecondition, "cli", "history", "query", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), historyTable(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of rows")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "show failed conversions only")
	return cmd
}
