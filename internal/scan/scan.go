// Package scan expands command-line paths into per-directory file sets for
// the conversion dispatcher.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"vorbify/internal/errs"
)

// DirSet is one directory and the file names (not paths) found in it.
type DirSet struct {
	Dir   string
	Names []string
}

// Collect expands the given paths. A file contributes its own name under its
// parent directory; a directory contributes its listing, or every directory
// beneath it when recursive is set. A path that does not exist or is neither
// file nor directory is a fatal precondition. Results keep command-line
// order; names within a set are sorted.
func Collect(paths []string, recursive bool) ([]DirSet, error) {
	var sets []DirSet
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errs.Wrap(errs.ErrPrecondition, "scan", "stat", path, err)
		}
		switch {
		case info.Mode().IsRegular():
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, errs.Wrap(errs.ErrPrecondition, "scan", "resolve", path, err)
			}
			sets = append(sets, DirSet{Dir: filepath.Dir(abs), Names: []string{filepath.Base(abs)}})
		case info.IsDir():
			expanded, err := expandDir(path, recursive)
			if err != nil {
				return nil, err
			}
			sets = append(sets, expanded...)
		default:
			return nil, errs.Wrap(errs.ErrPrecondition, "scan", "stat",
				fmt.Sprintf("%s is neither a file nor a directory", path), nil)
		}
	}
	return sets, nil
}

func expandDir(dir string, recursive bool) ([]DirSet, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrPrecondition, "scan", "resolve", dir, err)
	}

	if !recursive {
		set, err := listDir(abs)
		if err != nil {
			return nil, err
		}
		return []DirSet{set}, nil
	}

	var sets []DirSet
	walkErr := filepath.WalkDir(abs, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		set, err := listDir(path)
		if err != nil {
			return err
		}
		sets = append(sets, set)
		return nil
	})
	if walkErr != nil {
		return nil, errs.Wrap(errs.ErrPrecondition, "scan", "walk", dir, walkErr)
	}
	return sets, nil
}

func listDir(dir string) (DirSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DirSet{}, errs.Wrap(errs.ErrPrecondition, "scan", "read dir", dir, err)
	}
	set := DirSet{Dir: dir}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			set.Names = append(set.Names, entry.Name())
		}
	}
	sort.Strings(set.Names)
	return set, nil
}
