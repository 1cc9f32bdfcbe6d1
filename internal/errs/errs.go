// Package errs classifies failures by severity so the CLI can map them to
// exit codes: fatal preconditions abort the whole run (exit 1), per-file
// failures are reported and aggregated (exit 2).
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUsage marks invalid command-line arguments.
	ErrUsage = errors.New("usage error")
	// ErrPrecondition marks fatal run-level failures detected before any
	// conversion starts: missing paths, unresolvable decoders.
	ErrPrecondition = errors.New("precondition failed")
	// ErrExternalTool marks a decode or encode subprocess failure.
	ErrExternalTool = errors.New("external tool error")
	// ErrTagRead marks a tag container that could not be parsed.
	ErrTagRead = errors.New("tag read error")
	// ErrTagWrite marks a failure writing tags to a produced ogg file.
	ErrTagWrite = errors.New("tag write error")
	// ErrPartialFailure marks a run in which some files converted and
	// others failed.
	ErrPartialFailure = errors.New("some conversions failed")
)

// Wrap builds an error that includes component context while tagging it with
// the provided severity marker for later exit-code classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error must abort the run before any conversion.
func Fatal(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrPrecondition)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrPartialFailure):
		return 2
	default:
		return 1
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "conversion failure"
	}
	return strings.Join(parts, ": ")
}
