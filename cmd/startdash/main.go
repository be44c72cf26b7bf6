package main

import (
	"os"
	"strconv"

	"github.com/bnema/startdash/internal/cli/cmd"
	"github.com/bnema/startdash/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = build.DevVersion
	commit    = build.Unknown
	buildDate = build.Unknown
)

// coreDumpEnv opts into core dumps on fatal errors.
const coreDumpEnv = "STARTDASH_CORE_DUMP"

func coreDumpsRequested() bool {
	on, _ := strconv.ParseBool(os.Getenv(coreDumpEnv))
	return on
}

func main() {
	enableCrashForensics()

	cmd.SetBuildInfo(build.Current(version, commit, buildDate))

	cmd.Execute()
}
