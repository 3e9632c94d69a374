package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is applied to a new target. An existing target keeps its mode.
const DefaultFileMode os.FileMode = 0644

// AtomicFile stages writes in a temp file beside the target and moves it
// into place on Commit. The parent directory must already exist.
type AtomicFile struct {
	f      *os.File
	target string
	done   bool
}

// CreateAtomic opens a temp file in the directory of target.
func CreateAtomic(target string) (*AtomicFile, error) {
	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", target, err)
	}
	return &AtomicFile{f: f, target: target}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Commit flushes the temp file and renames it over the target. An empty
// file is discarded and reported as an error.
func (a *AtomicFile) Commit() (int64, error) {
	if a.done {
		return 0, fmt.Errorf("file %s already committed or closed", a.target)
	}
	if err := a.f.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync %s: %w", a.target, err)
	}
	info, err := a.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", a.target, err)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("file %s is empty after rendering", a.target)
	}
	if err := a.f.Chmod(targetMode(a.target)); err != nil {
		return 0, fmt.Errorf("failed to set mode on %s: %w", a.target, err)
	}
	if err := a.f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", a.target, err)
	}
	if err := os.Rename(a.f.Name(), a.target); err != nil {
		os.Remove(a.f.Name())
		a.done = true
		return 0, fmt.Errorf("failed to move file into place at %s: %w", a.target, err)
	}
	a.done = true
	return info.Size(), nil
}

// targetMode is the permission set the committed file should carry.
func targetMode(target string) os.FileMode {
	if info, err := os.Stat(target); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return DefaultFileMode
}

// Close discards the temp file unless Commit succeeded. Safe to call more than once.
func (a *AtomicFile) Close() error {
	if a.done {
		return nil
	}
	a.done = true
	a.f.Close()
	if err := os.Remove(a.f.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
