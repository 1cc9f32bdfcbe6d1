// Package tools runs the external binaries vorbify orchestrates. Command
// lines are described declaratively as templates with named placeholders so
// process-launch logic exists in one place.
package tools

import (
	"fmt"
	"regexp"
	"strings"
)

// Template describes one fixed external invocation: the binary, its argument
// list with {name} placeholders, and whether the tool can write decoded audio
// to a stream. Tools that only produce file output force file mode.
type Template struct {
	Tool    string
	Args    []string
	Streams bool
}

var placeholderPattern = regexp.MustCompile(`\{[a-z]+\}`)

// Render substitutes placeholders and returns the runnable command. Leaving a
// placeholder unresolved is a programming error and is rejected.
func (t Template) Render(binary string, vars map[string]string) (Command, error) {
	if strings.TrimSpace(binary) == "" {
		binary = t.Tool
	}
	args := make([]string, 0, len(t.Args))
	for _, arg := range t.Args {
		rendered := placeholderPattern.ReplaceAllStringFunc(arg, func(match string) string {
			name := strings.Trim(match, "{}")
			if value, ok := vars[name]; ok {
				return value
			}
			return match
		})
		if leftover := placeholderPattern.FindString(rendered); leftover != "" {
			return Command{}, fmt.Errorf("template %s: unresolved placeholder %s", t.Tool, leftover)
		}
		args = append(args, rendered)
	}
	return Command{Binary: binary, Args: args}, nil
}
