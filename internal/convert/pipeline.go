package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"vorbify/internal/deps"
	"vorbify/internal/errs"
	"vorbify/internal/format"
	"vorbify/internal/logging"
	"vorbify/internal/media"
	"vorbify/internal/scan"
	"vorbify/internal/tags"
	"vorbify/internal/tools"
)

// Options configures a Converter for one run.
type Options struct {
	Registry *deps.Registry
	Exec     tools.Executor
	Logger   *slog.Logger

	Quality         float64
	Smart           bool
	SmartCorrection float64
	DeleteInput     bool
	KeepWav         bool
	NoPipe          bool
	VerifyOutput    bool

	// OnResult observes each finished job, successful or not. Used for
	// history recording.
	OnResult func(Result)
}

// Converter executes conversion jobs sequentially.
type Converter struct {
	opts  Options
	exec  tools.Executor
	log   *slog.Logger
	probe func(string) (media.StreamInfo, error)
}

// New builds a Converter. The registry must already be resolved and the
// required formats checked.
func New(opts Options) *Converter {
	exec := opts.Exec
	if exec == nil {
		exec = tools.CommandExecutor{}
	}
	return &Converter{
		opts:  opts,
		exec:  exec,
		log:   logging.WithComponent(opts.Logger, "convert"),
		probe: media.Probe,
	}
}

// Run converts every file in the collected sets whose format is active.
// Processing is strictly sequential: set order, then format registry order,
// then name order within each format. A failed file never stops the run; the
// error reports partial failure when any job failed.
func (c *Converter) Run(ctx context.Context, sets []scan.DirSet, active []format.ID) (Summary, error) {
	enabled := make(map[format.ID]bool, len(active))
	for _, id := range active {
		enabled[id] = true
	}

	var summary Summary
	for _, set := range sets {
		for _, def := range format.All() {
			matched := format.Filter(def.Patterns, set.Names)
			if len(matched) == 0 {
				continue
			}
			if !enabled[def.ID] {
				summary.Skipped += len(matched)
				continue
			}
			for _, name := range matched {
				if err := ctx.Err(); err != nil {
					return summary, errs.Wrap(errs.ErrPrecondition, "convert", "run", "canceled", err)
				}

				result := c.Convert(ctx, filepath.Join(set.Dir, name), def)
				summary.Results = append(summary.Results, result)
				if result.Succeeded() {
					summary.Converted++
				} else {
					summary.Failed++
				}
				if c.opts.OnResult != nil {
					c.opts.OnResult(result)
				}
			}
		}
	}

	if summary.Failed > 0 {
		return summary, errs.Wrap(errs.ErrPartialFailure, "convert", "run",
			fmt.Sprintf("%d of %d files failed", summary.Failed, summary.Failed+summary.Converted), nil)
	}
	return summary, nil
}

// Convert runs the full pipeline for one source file.
func (c *Converter) Convert(ctx context.Context, source string, def format.Definition) Result {
	job := Job{
		ID:        uuid.NewString(),
		Source:    source,
		Format:    def.ID,
		Quality:   c.opts.Quality,
		StartedAt: time.Now(),
	}
	base := strings.TrimSuffix(source, filepath.Ext(source))
	job.OggPath = base + ".ogg"

	result := c.convert(ctx, &job, def)
	job.FinishedAt = time.Now()

	if result == nil {
		c.log.Info("converted",
			logging.String(logging.FieldFile, source),
			logging.String(logging.FieldFormat, string(def.ID)),
			logging.String(logging.FieldTool, job.Decoder),
			logging.Float64(logging.FieldQuality, job.Quality),
			logging.Duration("elapsed", job.FinishedAt.Sub(job.StartedAt)))
	} else {
		c.log.Error("conversion failed",
			logging.String(logging.FieldFile, source),
			logging.String(logging.FieldFormat, string(def.ID)),
			logging.Error(result))
	}
	return Result{Job: job, Err: result}
}

func (c *Converter) convert(ctx context.Context, job *Job, def format.Definition) error {
	var info *media.StreamInfo
	if def.ID == format.MP3 && (c.opts.Smart || !c.opts.NoPipe) {
		probed, err := c.probe(job.Source)
		if err != nil {
			c.log.Info("mp3 probe failed, using configured quality",
				logging.String(logging.FieldFile, job.Source),
				logging.Error(err))
		} else {
			info = &probed
		}
	}
	if c.opts.Smart && def.ID == format.MP3 && info != nil {
		job.Quality = media.SmartQuality(info.BitrateKbps, c.opts.SmartCorrection)
		c.log.Info("smart quality",
			logging.String(logging.FieldFile, job.Source),
			logging.Int("bitrate_kbps", info.BitrateKbps),
			logging.Float64(logging.FieldQuality, job.Quality))
	}

	c.extractTags(job, def)

	if err := c.encode(ctx, job, def, info); err != nil {
		return err
	}

	if c.opts.VerifyOutput {
		if err := VerifyOgg(job.OggPath); err != nil {
			return errs.Wrap(errs.ErrExternalTool, "convert", "verify", job.OggPath, err)
		}
	}

	if err := c.writeTags(ctx, job); err != nil {
		return err
	}

	if c.opts.DeleteInput {
		if err := os.Remove(job.Source); err != nil {
			c.log.Warn("could not delete input",
				logging.String(logging.FieldFile, job.Source),
				logging.Error(err))
		}
	}
	return nil
}

func (c *Converter) extractTags(job *Job, def format.Definition) {
	m, err := tags.Extract(job.Source)
	if err != nil {
		c.log.Warn("tags not readable",
			logging.String(logging.FieldFile, job.Source),
			logging.Error(err))
	}
	job.Tags = m
	if m.Empty() && def.ID != format.WAV && err == nil {
		c.log.Info("no tags found", logging.String(logging.FieldFile, job.Source))
	}
}

// encode decodes the source and produces the ogg file, choosing pipe or file
// mode per tool capability and configuration.
func (c *Converter) encode(ctx context.Context, job *Job, def format.Definition, info *media.StreamInfo) error {
	if def.ID == format.WAV {
		cmd := encodeFileCommand(deps.EncoderBinary, job.Quality, job.OggPath, job.Source)
		cmd.OnLine = c.toolLogger(deps.EncoderBinary)
		if err := c.exec.Run(ctx, cmd); err != nil {
			return errs.Wrap(errs.ErrExternalTool, "convert", "encode", job.Source, err)
		}
		return nil
	}

	tool, ok := c.opts.Registry.Decoder(def.ID)
	if !ok {
		return errs.Wrap(errs.ErrPrecondition, "convert", "decode",
			fmt.Sprintf("no decoder available for %s", def.ID), nil)
	}
	job.Decoder = tool

	pipe := !c.opts.NoPipe && CanPipe(tool)
	if pipe && rawPCM(tool) && info == nil {
		// A raw PCM stream cannot be encoded without rate and channel
		// hints, so an unprobeable mp3 falls back to file mode.
		pipe = false
	}
	job.Pipe = pipe

	if pipe {
		producer, err := decodePipeCommand(tool, job.Source)
		if err != nil {
			return errs.Wrap(errs.ErrExternalTool, "convert", "decode", job.Source, err)
		}
		producer.OnLine = c.toolLogger(tool)

		var raw *media.StreamInfo
		if rawPCM(tool) {
			raw = info
		}
		consumer := encodeStdinCommand(deps.EncoderBinary, job.Quality, job.OggPath, raw)
		consumer.OnLine = c.toolLogger(deps.EncoderBinary)

		if err := c.exec.RunPipe(ctx, producer, consumer); err != nil {
			return errs.Wrap(errs.ErrExternalTool, "convert", "pipe", job.Source, err)
		}
		return nil
	}

	job.WavPath = strings.TrimSuffix(job.Source, filepath.Ext(job.Source)) + ".wav"
	decode, err := decodeFileCommand(tool, job.Source, job.WavPath)
	if err != nil {
		return errs.Wrap(errs.ErrExternalTool, "convert", "decode", job.Source, err)
	}
	decode.OnLine = c.toolLogger(tool)

	if !c.opts.KeepWav {
		defer c.removeWav(job.WavPath)
	}
	if err := c.exec.Run(ctx, decode); err != nil {
		return errs.Wrap(errs.ErrExternalTool, "convert", "decode", job.Source, err)
	}

	encode := encodeFileCommand(deps.EncoderBinary, job.Quality, job.OggPath, job.WavPath)
	encode.OnLine = c.toolLogger(deps.EncoderBinary)
	if err := c.exec.Run(ctx, encode); err != nil {
		return errs.Wrap(errs.ErrExternalTool, "convert", "encode", job.Source, err)
	}
	return nil
}

func (c *Converter) writeTags(ctx context.Context, job *Job) error {
	if job.Tags.Empty() {
		return nil
	}
	if !c.opts.Registry.HasTagger() {
		c.log.Warn("vorbiscomment not found, tags not written",
			logging.String(logging.FieldFile, job.OggPath))
		return nil
	}
	writer := tags.Writer{
		Binary: deps.TaggerBinary,
		Exec:   c.exec,
		OnLine: c.toolLogger(deps.TaggerBinary),
	}
	return writer.Write(ctx, job.OggPath, job.Tags)
}

func (c *Converter) removeWav(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.log.Warn("could not remove wav intermediate",
			logging.String(logging.FieldFile, path),
			logging.Error(err))
	}
}

func (c *Converter) toolLogger(tool string) func(string) {
	return func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		c.log.Debug("tool output",
			logging.String(logging.FieldTool, tool),
			logging.String("line", line))
	}
}
