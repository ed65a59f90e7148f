package export

import (
	"runtime/debug"
)

var (
	// Set these at build time with -ldflags "-X 'github.com/idlab-discover/fraudboard-cli/internal/export.Version=...' -X '...Commit=...'"
	Version = ""
	Commit  = ""
)

var readBuildInfo = debug.ReadBuildInfo

// ToolVersion reports the version recorded in exported model cards.
func ToolVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	if Commit != "" {
		return "commit-" + Commit
	}
	return "devel"
}
