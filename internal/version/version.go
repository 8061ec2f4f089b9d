// Package version reports the build identity of the reps binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Stamped by release ldflags. Plain `go install` builds leave these
// empty and resolve() recovers what it can from embedded build info.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Short returns the bare version number.
func Short() string {
	return Version
}

// Full renders the version with commit, build date, and Go runtime.
func Full() string {
	out := Version
	if Commit != "" {
		out = fmt.Sprintf("%s (%s)", out, Commit)
	}
	if Date != "" {
		out += ", built " + Date
	}
	return out + ", " + runtime.Version()
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		resolve(info)
	}
}

// resolve fills any field the ldflags left at its default from the
// module version and VCS stamps the toolchain embeds. A checkout with
// uncommitted changes gets a +dirty commit suffix.
func resolve(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, stamp string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			stamp = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		if dirty {
			revision += "+dirty"
		}
		Commit = revision
	}
	if Date == "" && stamp != "" {
		Date = stamp
	}
}
