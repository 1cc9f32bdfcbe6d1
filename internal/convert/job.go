package convert

import (
	"time"

	"vorbify/internal/format"
	"vorbify/internal/tags"
)

// Job captures one file's conversion parameters and progress. Quality is a
// per-job value so a smart-quality estimate for one file never leaks into the
// next.
type Job struct {
	ID      string
	Source  string
	WavPath string
	OggPath string
	Format  format.ID
	Decoder string
	Quality float64
	Pipe    bool
	Tags    tags.Map

	StartedAt  time.Time
	FinishedAt time.Time
}

// Result pairs a finished job with its outcome.
type Result struct {
	Job Job
	Err error
}

// Succeeded reports whether the job produced a valid, tagged ogg file.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Summary aggregates a run over every collected directory set.
type Summary struct {
	Converted int
	Failed    int
	Skipped   int
	Results   []Result
}
