//go:build !linux && !darwin

package bootstrap

import "os"

// Without flock the lock is advisory only: the file is created but never
// contended.
func tryLockExclusive(*os.File) (bool, error) { return true, nil }

func unlockAndClose(f *os.File) error {
	if f == nil {
		return nil
	}
	return f.Close()
}

// CoreDumpLimit is unsupported on this platform.
func CoreDumpLimit() (soft, hard string) { return "unsupported", "unsupported" }
