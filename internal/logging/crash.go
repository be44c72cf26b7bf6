package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"
)

const crashFilePerm = 0o600

// CrashReport describes a recovered panic.
type CrashReport struct {
	Time    time.Time
	Panic   any
	Stack   []byte
	Version string
}

// WriteCrashReport writes r to a timestamped file in dir and returns its path.
func WriteCrashReport(dir string, r CrashReport) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	body := fmt.Sprintf(
		"startdash crash report\ntime: %s\nversion: %s\ngo: %s %s/%s\nmemory: alloc=%dKB sys=%dKB gc=%d\n\npanic: %v\n\n%s",
		r.Time.Format(time.RFC3339),
		r.Version,
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
		m.Alloc/1024, m.Sys/1024, m.NumGC,
		r.Panic,
		r.Stack,
	)

	path := filepath.Join(dir, "crash-"+r.Time.Format("20060102-150405")+".txt")
	if err := os.WriteFile(path, []byte(body), crashFilePerm); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

// RecoverCrash is deferred at the top of long-running commands. It logs a
// panic, writes a crash report to dir and re-panics so the process still
// exits with the runtime's traceback.
func RecoverCrash(ctx context.Context, dir, version string) {
	r := recover()
	if r == nil {
		return
	}

	log := FromContext(ctx)
	report := CrashReport{Time: time.Now(), Panic: r, Stack: debug.Stack(), Version: version}
	path, err := WriteCrashReport(dir, report)
	if err != nil {
		log.Error().Err(err).Msg("failed to write crash report")
	}
	log.Error().Interface("panic", r).Str("report", path).Msg("desk crashed")
	if path != "" {
		fmt.Fprintf(os.Stderr, "startdash crashed; report written to %s\n", path)
	}
	panic(r)
}
