package tags

import (
	"context"
	"strings"

	"vorbify/internal/errs"
	"vorbify/internal/tools"
)

// Writer applies a canonical tag map to a produced ogg file by feeding
// name=value lines to the vorbiscomment binary.
type Writer struct {
	Binary string
	Exec   tools.Executor
	OnLine func(string)
}

// Write replaces the file's comments with the map's contents. An empty map
// is a no-op. A failure leaves the ogg file in place; the caller decides how
// to report it.
func (w Writer) Write(ctx context.Context, oggPath string, m Map) error {
	if m.Empty() {
		return nil
	}
	exec := w.Exec
	if exec == nil {
		exec = tools.CommandExecutor{}
	}
	binary := w.Binary
	if binary == "" {
		binary = "vorbiscomment"
	}

	input := strings.Join(m.Lines(), "\n") + "\n"
	cmd := tools.Command{
		Binary: binary,
		Args:   []string{"-w", oggPath},
		Stdin:  strings.NewReader(input),
		OnLine: w.OnLine,
	}
	if err := exec.Run(ctx, cmd); err != nil {
		return errs.Wrap(errs.ErrTagWrite, "tags", "write", oggPath, err)
	}
	return nil
}
