// Package deps resolves the external decoder and encoder binaries vorbify
// orchestrates. Every supported format keeps an ordered decoder preference
// list; the first tool found on PATH becomes the format's default.
package deps

import (
	"fmt"
	"os/exec"
)

// Requirement defines an external binary vorbify relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status pairs a requirement with its PATH resolution result.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// CheckBinaries resolves each requirement against PATH. The requirement list
// comes from the registry, so every entry carries a command name.
func CheckBinaries(requirements []Requirement) []Status {
	statuses := make([]Status, len(requirements))
	for i, req := range requirements {
		statuses[i] = Status{Requirement: req, Available: true}
		if _, err := exec.LookPath(req.Command); err != nil {
			statuses[i].Available = false
			statuses[i].Detail = fmt.Sprintf("%q not found on PATH", req.Command)
		}
	}
	return statuses
}
