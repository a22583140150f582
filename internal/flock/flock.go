// Package flock provides the run lock that keeps two gitflow processes from
// changing the same repository at once. Locks are exclusive and non-blocking,
// and the operating system releases them when the holding process exits.
package flock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Lock is a held run lock.
type Lock struct {
	file *os.File
}

// TryLock acquires the lock file at path, creating it when missing. It fails
// with ErrRepositoryLocked when another process holds the lock. The holder's
// PID is written into the file for diagnosis.
func TryLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- path is derived from the git directory
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, gferrors.ErrRepositoryLocked)
	}

	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	}
	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file. It is safe to call on a nil Lock
// and more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
