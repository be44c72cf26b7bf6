//go:build linux || darwin

package bootstrap

import (
	"errors"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

func tryLockExclusive(f *os.File) (bool, error) {
	if f == nil {
		return false, errors.New("nil file")
	}
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) {
		return false, nil
	}
	return false, err
}

func unlockAndClose(f *os.File) error {
	if f == nil {
		return nil
	}
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return f.Close()
}

// CoreDumpLimit reports the soft and hard RLIMIT_CORE values, for crash
// forensics in the startup log.
func CoreDumpLimit() (soft, hard string) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		return "unknown", "unknown"
	}
	return formatRlimitCore(limit.Cur), formatRlimitCore(limit.Max)
}

func formatRlimitCore(value uint64) string {
	if value == unix.RLIM_INFINITY {
		return "infinity"
	}
	return strconv.FormatUint(value, 10)
}
