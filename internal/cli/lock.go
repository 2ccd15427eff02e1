package cli

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrWouldBlock is returned by tryLockDB when another pictdb process already
// holds the advisory lock on the database file.
var ErrWouldBlock = errors.New("cli: lock would block")

// dbLock is a process-exclusive advisory lock on a database path, held for
// the duration of a single mutating command (create/insert/delete/gc). The
// core engine enforces no concurrency of its own (spec's single-writer
// non-goal); this is a CLI-only convenience so two concurrent `pictdb`
// invocations against the same file fail fast instead of corrupting it.
// Grounded on the teacher's flock-based internal/fs.Locker, trimmed to the
// one mode the CLI needs: a single non-blocking exclusive lock per
// invocation, taken on a dedicated ".lock" sibling file rather than the
// database file itself (so read-only commands never need to touch it).
type dbLock struct {
	file *os.File
}

// tryLockDB acquires an exclusive, non-blocking lock on dbPath+".lock",
// creating it if necessary. Returns ErrWouldBlock if another process holds
// it.
func tryLockDB(dbPath string) (*dbLock, error) {
	lockPath := dbPath + ".lock"

	f, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cli: opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()

		if errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN) {
			return nil, ErrWouldBlock
		}

		return nil, fmt.Errorf("cli: locking %s: %w", lockPath, err)
	}

	return &dbLock{file: f}, nil
}

// Close releases the lock.
func (l *dbLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	err := l.file.Close()
	l.file = nil

	return err
}
