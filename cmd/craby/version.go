package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version reports the build version. Module-aware installs carry their own
// version in the build info; anything else is a development build and gets
// the embedded version tagged with the short VCS revision when one is known.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		if rev := shortRevision(info); rev != "" {
			return "devel-" + strings.TrimSpace(rawVersion) + "+" + rev
		}
	}
	return "devel-" + strings.TrimSpace(rawVersion)
}

func shortRevision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key != "vcs.revision" {
			continue
		}
		if len(s.Value) > 7 {
			return s.Value[:7]
		}
		return s.Value
	}
	return ""
}
