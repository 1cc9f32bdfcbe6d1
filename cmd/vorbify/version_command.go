package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags; module metadata is the
// fallback for plain go install builds.
var version = ""

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vorbify version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "vorbify %s\n", resolveVersion())
			return nil
		},
	}
}

func newLicenseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "license",
		Short: "Print license information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(),
				"vorbify is free software, distributed under the GNU General Public\n"+
					"License, version 2 or (at your option) any later version. It comes\n"+
					"with ABSOLUTELY NO WARRANTY.")
			return nil
		},
	}
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
