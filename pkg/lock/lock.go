// Package lock provides an advisory file lock used to serialize workspace
// transitions across processes.
package lock

import (
	"errors"
	"fmt"
	"os"
)

// ErrLocked is returned by TryLock when another holder owns the lock.
var ErrLocked = errors.New("lock is held by another process")

type FileLock struct {
	path string
	file *os.File
}

func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Path returns the lock file location.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock blocks until the exclusive lock is acquired.
func (fl *FileLock) Lock() error {
	return fl.acquire(true)
}

// TryLock acquires the lock or fails immediately with ErrLocked.
func (fl *FileLock) TryLock() error {
	return fl.acquire(false)
}

func (fl *FileLock) acquire(wait bool) error {
	if fl.file != nil {
		return fmt.Errorf("lock %s already held", fl.path)
	}

	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := flock(f, wait); err != nil {
		f.Close()
		return err
	}

	// The PID is informational only.
	if err := f.Truncate(0); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
	}

	fl.file = f
	return nil
}

// Unlock releases the lock. The file is kept so waiters keep contending on
// the same inode.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}

	if err := funlock(fl.file); err != nil {
		fl.file.Close()
		fl.file = nil
		return fmt.Errorf("release lock: %w", err)
	}

	err := fl.file.Close()
	fl.file = nil
	if err != nil {
		return fmt.Errorf("close lock file: %w", err)
	}
	return nil
}
