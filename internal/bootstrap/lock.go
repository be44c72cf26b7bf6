package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	lockDirPerm  = 0o755
	lockFilePerm = 0o600
	lockFileName = "startdash.lock"
)

// ErrDeskRunning is returned when another desk holds the lock for the same
// state directory.
var ErrDeskRunning = errors.New("another startdash desk is running")

// DeskLock keeps one desk per state directory, so two desks never race on
// the same layout database.
type DeskLock struct {
	f    *os.File
	path string
}

// AcquireDeskLock takes the exclusive lock in dir without blocking. The lock
// file records the holder's pid and start time.
func AcquireDeskLock(dir string, startedAt time.Time) (*DeskLock, error) {
	if dir == "" {
		return nil, errors.New("lock dir is empty")
	}
	if err := os.MkdirAll(dir, lockDirPerm); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	path := filepath.Join(dir, lockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerm)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	locked, err := tryLockExclusive(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		holder := readHolderPID(f)
		_ = f.Close()
		if holder != "" {
			return nil, fmt.Errorf("%w (pid %s)", ErrDeskRunning, holder)
		}
		return nil, ErrDeskRunning
	}

	content := fmt.Sprintf("pid=%d\nstarted_at=%s\n", os.Getpid(), startedAt.Format(time.RFC3339Nano))
	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(content), 0)
	}
	return &DeskLock{f: f, path: path}, nil
}

// Path returns the lock file path.
func (l *DeskLock) Path() string { return l.path }

// Release drops the lock and removes the lock file.
func (l *DeskLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := unlockAndClose(l.f)
	l.f = nil
	_ = os.Remove(l.path)
	return err
}

func readHolderPID(f *os.File) string {
	buf := make([]byte, 128)
	n, _ := f.ReadAt(buf, 0)
	for _, line := range strings.Split(string(buf[:n]), "\n") {
		if pid, ok := strings.CutPrefix(line, "pid="); ok {
			if _, err := strconv.Atoi(pid); err == nil {
				return pid
			}
		}
	}
	return ""
}
