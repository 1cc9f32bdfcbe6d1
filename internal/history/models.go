package history

import "time"

// Status records the outcome of one conversion attempt.
type Status string

const (
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
)

// Record is one attempted conversion.
type Record struct {
	ID         int64
	RunID      string
	JobID      string
	Source     string
	Output     string
	Format     string
	Decoder    string
	Quality    float64
	Status     Status
	Detail     string
	StartedAt  time.Time
	FinishedAt time.Time
}
