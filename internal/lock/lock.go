// Package lock serializes commands that modify the database.
//
// The lock is an advisory file lock next to the database file. A second
// mutating command fails fast with ErrAlreadyLocked instead of waiting.
package lock

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileName is the name of the lock file inside the database directory.
const FileName = "effbatt.lock"

// ErrAlreadyLocked is returned when another effbatt process holds the lock.
var ErrAlreadyLocked = errors.New("another effbatt command is modifying the database")

// Flocker is the subset of flock.Flock used here.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Lock is a fail-fast advisory lock.
type Lock struct {
	flocker Flocker
	path    string
}

// New creates a Lock from the given Flocker.
func New(f Flocker) *Lock {
	return &Lock{flocker: f}
}

// ForDir creates a Lock backed by FileName in dbDir.
func ForDir(dbDir string) *Lock {
	path := filepath.Join(dbDir, FileName)
	return &Lock{flocker: flock.New(path), path: path}
}

// Path returns the lock file path, or "" when the Lock was built from a Flocker.
func (l *Lock) Path() string {
	return l.path
}

// TryLock acquires the lock without blocking.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ok, err := l.flocker.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyLocked
	}
	return nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// WithLock runs fn while holding the lock.
func (l *Lock) WithLock(ctx context.Context, fn func() error) (err error) {
	if err := l.TryLock(ctx); err != nil {
		return err
	}
	defer func() {
		if unlockErr := l.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()
	return fn()
}
