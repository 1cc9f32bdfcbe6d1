package main

import (
	"github.com/spf13/cobra"

	"vorbify/internal/format"
)

// rootFlags holds every root-command flag. Format enables and decoder
// overrides are keyed by format identifier so the flag set tracks the format
// registry without per-format fields.
type rootFlags struct {
	configPath string

	formats  map[format.ID]*bool
	decoders map[format.ID]*string
	all      bool

	quality         float64
	smart           bool
	smartCorrection float64
	deleteInput     bool
	keepWav         bool
	noPipe          bool
	recursive       bool
	noHistory       bool
	verbose         bool
	quiet           bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{
		formats:  make(map[format.ID]*bool),
		decoders: make(map[format.ID]*string),
	}

	rootCmd := &cobra.Command{
		Use:           "vorbify [flags] PATH...",
		Short:         "Batch audio converter to Ogg Vorbis",
		Long: "vorbify converts mp3, m4a, wma, flac, ape, wv, mpc and wav files to\n" +
			"Ogg Vorbis using external decoder and encoder tools, carrying metadata\n" +
			"tags across formats.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args)
		},
	}

	pf := rootCmd.Flags()
	for _, def := range format.All() {
		enabled := new(bool)
		flags.formats[def.ID] = enabled
		pf.BoolVar(enabled, string(def.ID), false, "convert "+string(def.ID)+" files")

		if len(def.Decoders) > 1 {
			tool := new(string)
			flags.decoders[def.ID] = tool
			pf.StringVar(tool, string(def.ID)+"-decoder", "", "decoder for "+string(def.ID)+" files")
		}
	}
	pf.BoolVar(&flags.all, "all", false, "convert every format with an available decoder")

	pf.Float64VarP(&flags.quality, "quality", "q", 0, "encoding quality, -1 to 10")
	pf.BoolVarP(&flags.smart, "smart", "s", false, "derive quality from mp3 bitrate")
	pf.Float64Var(&flags.smartCorrection, "smart-correction", 0, "correction subtracted from smart quality")
	pf.BoolVar(&flags.deleteInput, "delete-input", false, "delete source files after successful conversion")
	pf.BoolVar(&flags.keepWav, "keep-wav", false, "keep intermediate wav files (implies --no-pipe)")
	pf.BoolVar(&flags.noPipe, "no-pipe", false, "decode to a wav file instead of piping")
	pf.BoolVarP(&flags.recursive, "recursive", "r", false, "descend into subdirectories")
	pf.BoolVar(&flags.noHistory, "no-history", false, "do not record conversions in the history database")
	pf.BoolVar(&flags.verbose, "verbose", false, "log external tool output")
	pf.BoolVar(&flags.quiet, "quiet", false, "log warnings and errors only")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "configuration file path")

	rootCmd.AddCommand(newDepsCommand())
	rootCmd.AddCommand(newHistoryCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newLicenseCommand())

	return rootCmd
}
