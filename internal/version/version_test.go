package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGetInfoUsesLdflags(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })

	Version, Commit, Date = "v1.4.0", "0123456789abcdef", "2026-10-01T09:00:00Z"

	info := GetInfo()

	if info.Version != "v1.4.0" || info.Commit != "0123456789abcdef" || info.Date != "2026-10-01T09:00:00Z" {
		t.Errorf("ldflags values should win, got %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestWithBuildInfo(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/felixgeelhaar/alumni", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "feedfacecafebeef"},
			{Key: "vcs.time", Value: "2026-09-30T18:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		info Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "dev build picks up module and vcs stamps",
			info: Info{Version: "dev"},
			bi:   stamped,
			want: Info{Version: "v0.3.1", Commit: "feedfacecafebeef", Date: "2026-09-30T18:00:00Z", Modified: true},
		},
		{
			name: "ldflags are not overridden",
			info: Info{Version: "v1.0.0", Commit: "abc", Date: "2026-01-01"},
			bi:   stamped,
			want: Info{Version: "v1.0.0", Commit: "abc", Date: "2026-01-01", Modified: true},
		},
		{
			name: "devel module version is ignored",
			info: Info{Version: "dev"},
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: Info{Version: "dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.withBuildInfo(tt.bi); got != tt.want {
				t.Errorf("withBuildInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	base := Info{Version: "v0.3.1", GoVersion: "go1.24.6", Platform: "linux/amd64"}

	tests := []struct {
		name string
		info func(Info) Info
		want string
	}{
		{"release", func(i Info) Info {
			i.Commit, i.Date = "feedfacecafebeef", "2026-09-30"
			return i
		}, "alumni v0.3.1 (feedface) built 2026-09-30 with go1.24.6 for linux/amd64"},
		{"dirty tree", func(i Info) Info {
			i.Commit, i.Modified = "feedface", true
			return i
		}, "alumni v0.3.1 (feedface-dirty) with go1.24.6 for linux/amd64"},
		{"no vcs stamps", func(i Info) Info { return i }, "alumni v0.3.1 with go1.24.6 for linux/amd64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info(base).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	ua := Info{Version: "v0.3.1", GoVersion: "go1.24.6", Platform: "darwin/arm64"}.UserAgent()

	if ua != "alumni-cli/v0.3.1 (darwin/arm64; go1.24.6)" {
		t.Errorf("UserAgent() = %q", ua)
	}
	if !strings.HasPrefix(GetInfo().UserAgent(), "alumni-cli/") {
		t.Error("UserAgent should identify the CLI")
	}
}
