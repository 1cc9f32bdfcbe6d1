package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vorbify/internal/config"
	"vorbify/internal/convert"
	"vorbify/internal/deps"
	"vorbify/internal/errs"
	"vorbify/internal/format"
	"vorbify/internal/history"
	"vorbify/internal/logging"
	"vorbify/internal/runlock"
	"vorbify/internal/scan"
)

func runConvert(cmd *cobra.Command, flags *rootFlags, args []string) error {
	if len(args) == 0 {
		return errs.Wrap(errs.ErrUsage, "cli", "run", "no paths given", nil)
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return errs.Wrap(errs.ErrUsage, "cli", "run", "logger", err)
	}

	registry := deps.ResolveRegistry()
	if err := applyDecoderOverrides(registry, cfg, flags); err != nil {
		return err
	}

	active, err := activeFormats(flags, registry, args)
	if err != nil {
		return err
	}
	if err := registry.Require(active); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.EnsureDirectories(); err != nil {
		return errs.Wrap(errs.ErrPrecondition, "cli", "run", "state directory", err)
	}
	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	runID := uuid.NewString()
	log := logging.WithComponent(logger, "cli").With(logging.String(logging.FieldRun, runID))

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.HistoryPath())
		if err != nil {
			log.Warn("history store unavailable", logging.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	sets, err := scan.Collect(args, cfg.Conversion.Recursive)
	if err != nil {
		return err
	}

	converter := convert.New(convert.Options{
		Registry:        registry,
		Logger:          logger,
		Quality:         cfg.Conversion.Quality,
		Smart:           cfg.Conversion.Smart,
		SmartCorrection: cfg.Conversion.SmartCorrection,
		DeleteInput:     cfg.Conversion.DeleteInput,
		KeepWav:         cfg.Conversion.KeepWav,
		NoPipe:          cfg.Conversion.NoPipe,
		VerifyOutput:    cfg.Conversion.VerifyOutput,
		OnResult:        recordHistory(ctx, log, store, runID),
	})

	summary, runErr := converter.Run(ctx, sets, active)
	printSummary(cmd, summary)
	return runErr
}

// loadConfig reads the configuration file and layers changed CLI flags on
// top, then re-validates the merged result.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return nil, errs.Wrap(errs.ErrPrecondition, "cli", "config", "", err)
	}

	set := cmd.Flags().Changed
	if set("quality") {
		cfg.Conversion.Quality = flags.quality
	}
	if set("smart") {
		cfg.Conversion.Smart = flags.smart
	}
	if set("smart-correction") {
		cfg.Conversion.SmartCorrection = flags.smartCorrection
	}
	if set("delete-input") {
		cfg.Conversion.DeleteInput = flags.deleteInput
	}
	if set("keep-wav") {
		cfg.Conversion.KeepWav = flags.keepWav
	}
	if set("no-pipe") {
		cfg.Conversion.NoPipe = flags.noPipe
	}
	if set("recursive") {
		cfg.Conversion.Recursive = flags.recursive
	}
	if flags.noHistory {
		cfg.History.Enabled = false
	}
	if flags.verbose && flags.quiet {
		return nil, errs.Wrap(errs.ErrUsage, "cli", "config", "--verbose and --quiet are mutually exclusive", nil)
	}
	if flags.verbose {
		cfg.Logging.Level = "debug"
	}
	if flags.quiet {
		cfg.Logging.Level = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrUsage, "cli", "config", "", err)
	}
	return cfg, nil
}

func applyDecoderOverrides(registry *deps.Registry, cfg *config.Config, flags *rootFlags) error {
	for name, tool := range cfg.Decoders {
		def, ok := format.Parse(name)
		if !ok {
			continue
		}
		if err := registry.Select(def.ID, tool); err != nil {
			return err
		}
	}
	for id, tool := range flags.decoders {
		if tool == nil || *tool == "" {
			continue
		}
		if err := registry.Select(id, *tool); err != nil {
			return err
		}
	}
	return nil
}

// activeFormats resolves which formats this run converts: explicit format
// flags, --all for everything with a resolved decoder, plus implicit
// activation from file arguments whose extension matches a format.
func activeFormats(flags *rootFlags, registry *deps.Registry, args []string) ([]format.ID, error) {
	if flags.all {
		active := registry.Available()
		if len(active) == 0 {
			return nil, errs.Wrap(errs.ErrPrecondition, "cli", "formats", "no decoders available", nil)
		}
		return active, nil
	}

	enabled := make(map[format.ID]bool)
	for id, flag := range flags.formats {
		if flag != nil && *flag {
			enabled[id] = true
		}
	}
	// A file argument names its own format.
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
			if def, ok := format.Detect(arg); ok {
				enabled[def.ID] = true
			}
		}
	}
	if len(enabled) == 0 {
		return nil, errs.Wrap(errs.ErrUsage, "cli", "formats",
			"no formats selected (use format flags such as --mp3, or --all)", nil)
	}

	active := make([]format.ID, 0, len(enabled))
	for _, id := range format.IDs() {
		if enabled[id] {
			active = append(active, id)
		}
	}
	return active, nil
}

// recordHistory returns the per-result observer persisting conversion
// outcomes. Store failures degrade to warnings.
func recordHistory(ctx context.Context, log *slog.Logger, store *history.Store, runID string) func(convert.Result) {
	if store == nil {
		return nil
	}
	return func(result convert.Result) {
		rec := history.Record{
			RunID:      runID,
			JobID:      result.Job.ID,
			Source:     result.Job.Source,
			Output:     result.Job.OggPath,
			Format:     string(result.Job.Format),
			Decoder:    result.Job.Decoder,
			Quality:    result.Job.Quality,
			Status:     history.StatusConverted,
			StartedAt:  result.Job.StartedAt,
			FinishedAt: result.Job.FinishedAt,
		}
		if result.Err != nil {
			rec.Status = history.StatusFailed
			rec.Detail = result.Err.Error()
		}
		if err := store.Add(ctx, rec); err != nil {
			log.Warn("could not record conversion history", logging.Error(err))
		}
	}
}

func printSummary(cmd *cobra.Command, summary convert.Summary) {
	out := cmd.OutOrStdout()
	if len(summary.Results) > 0 {
		fmt.Fprintln(out, summaryTable(summary.Results))
	}
	fmt.Fprintf(out, "%d converted, %d failed, %d skipped\n",
		summary.Converted, summary.Failed, summary.Skipped)
}
