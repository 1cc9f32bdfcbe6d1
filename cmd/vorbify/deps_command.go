package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vorbify/internal/deps"
)

func newDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show external tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := deps.ResolveRegistry()
			statuses := deps.CheckBinaries(registry.Requirements())
			fmt.Fprintln(cmd.OutOrStdout(), depsTable(statuses))

			available := registry.Available()
			names := make([]string, 0, len(available))
			for _, id := range available {
				names = append(names, string(id))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Convertible formats: %s\n", joinOrNone(names))
			return nil
		},
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	out := values[0]
	for _, v := range values[1:] {
		out += ", " + v
	}
	return out
}
