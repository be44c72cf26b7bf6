// Package build describes the running binary.
package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Repository is the project home, shown by `startdash about`.
const Repository = "https://github.com/bnema/startdash"

// Values the linker leaves in place when no -X flag is given.
const (
	DevVersion = "dev"
	Unknown    = "unknown"
)

const shortCommitLen = 7

// Info identifies a build.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Current returns the build info for this binary. Fields the linker did not
// set are filled from the module and VCS metadata the go command embeds, so a
// `go install`ed binary still reports its version.
func Current(version, commit, buildDate string) Info {
	info := Info{Version: version, Commit: commit, BuildDate: buildDate, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.WithModuleInfo(bi)
	}
	return info
}

// WithModuleInfo fills unset fields from bi.
func (i Info) WithModuleInfo(bi *debug.BuildInfo) Info {
	if bi == nil {
		return i
	}
	if unset(i.Version) && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if unset(i.Commit) {
				i.Commit = s.Value
			}
		case "vcs.time":
			if unset(i.BuildDate) {
				i.BuildDate = s.Value
			}
		}
	}
	if i.GoVersion == "" {
		i.GoVersion = bi.GoVersion
	}
	return i
}

// ShortCommit returns the abbreviated commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > shortCommitLen && !unset(i.Commit) {
		return i.Commit[:shortCommitLen]
	}
	return i.Commit
}

// String returns a one-line summary, e.g. "startdash v1.2.0 (1a2b3c4, go1.25.3)".
func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = DevVersion
	}
	commit := i.ShortCommit()
	if commit == "" {
		commit = Unknown
	}
	return fmt.Sprintf("startdash %s (%s, %s)", version, commit, i.GoVersion)
}

// Contributors returns the project contributors.
func Contributors() []string {
	return []string{"bnema"}
}

func unset(v string) bool {
	return v == "" || v == DevVersion || v == Unknown
}
