// Package runlock guards against concurrent vorbify runs sharing state.
package runlock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"vorbify/internal/errs"
)

// Lock is an advisory file lock held for the duration of a run.
type Lock struct {
	path  string
	flock *flock.Flock
}

// Acquire takes the lock at path or fails with a precondition error when
// another run already holds it.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrPrecondition, "runlock", "acquire", "create lock directory", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errs.Wrap(errs.ErrPrecondition, "runlock", "acquire", "acquire run lock", err)
	}
	if !ok {
		return nil, errs.Wrap(errs.ErrPrecondition, "runlock", "acquire", "another vorbify run is already active", nil)
	}
	return &Lock{path: path, flock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
