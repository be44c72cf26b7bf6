//go:build !linux && !darwin

package main

import "runtime/debug"

func enableCrashForensics() {
	if coreDumpsRequested() {
		debug.SetTraceback("crash")
		return
	}
	debug.SetTraceback("all")
}
