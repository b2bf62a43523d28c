package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set by ldflags in release builds:
//
//	-X github.com/felixgeelhaar/alumni/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetInfo returns the ldflags values, falling back to the module and VCS stamps
// that `go install` and `go build` embed.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info
}

func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.Date == "" {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
}

// ShortCommit returns the first 8 characters of the commit
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// String is the one-line form printed by `alumni version --verbose`
func (i Info) String() string {
	s := "alumni " + i.Version
	if c := i.ShortCommit(); c != "" {
		if i.Modified {
			c += "-dirty"
		}
		s += " (" + c + ")"
	}
	if i.Date != "" {
		s += " built " + i.Date
	}
	return fmt.Sprintf("%s with %s for %s", s, i.GoVersion, i.Platform)
}

// UserAgent identifies the CLI to the portal API
func (i Info) UserAgent() string {
	return fmt.Sprintf("alumni-cli/%s (%s; %s)", i.Version, i.Platform, i.GoVersion)
}
