//go:build linux || darwin

package main

import (
	"runtime/debug"

	"golang.org/x/sys/unix"
)

// enableCrashForensics makes a fatal error dump every goroutine. When core
// dumps are requested it also aborts with a core, lifting the soft
// RLIMIT_CORE to the hard limit so the kernel actually writes one.
func enableCrashForensics() {
	if !coreDumpsRequested() {
		debug.SetTraceback("all")
		return
	}
	debug.SetTraceback("crash")
	_ = raiseCoreLimit()
}

func raiseCoreLimit() error {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		return err
	}
	if limit.Cur == limit.Max {
		return nil
	}
	limit.Cur = limit.Max
	return unix.Setrlimit(unix.RLIMIT_CORE, &limit)
}
