package runlock

import (
	"errors"
	"path/filepath"
	"testing"

	"vorbify/internal/errs"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "vorbify.lock")
	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if lock.Path() != path {
		t.Fatalf("Path = %q", lock.Path())
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestAcquireContended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vorbify.lock")
	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	defer first.Release()

	if _, err := Acquire(path); err == nil {
		t.Fatal("expected second acquire to fail")
	} else if !errors.Is(err, errs.ErrPrecondition) {
		t.Fatalf("want precondition error, got %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
