package version

import (
	"fmt"
	"runtime/debug"
)

var (
	VersionPrefix = "dev"     // Set via -ldflags
	VersionDate   = "edge"    // Set via -ldflags - Value should be: YYYYMMDD
	CommitHash    = "unknown" // Set via -ldflags, falls back to the VCS revision in build info
)

// Print returns the version as prefix-date-commit.
func Print() string {
	return format(VersionPrefix, VersionDate, commit(CommitHash, debug.ReadBuildInfo))
}

func format(prefix, date, hash string) string {
	return fmt.Sprintf(`%s-%s-%s`, prefix, date, hash)
}

// commit prefers the ldflags value and otherwise uses the first 12
// characters of vcs.revision, as stamped by `go build` inside a checkout.
func commit(hash string, readInfo func() (*debug.BuildInfo, bool)) string {
	if hash != "unknown" && hash != "" {
		return hash
	}
	info, ok := readInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
