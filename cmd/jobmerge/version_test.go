package main

import (
	rdebug "runtime/debug"
	"testing"
)

func TestVersionString(t *testing.T) {
	buildInfo := func(mainVersion string, settings ...rdebug.BuildSetting) func() (*rdebug.BuildInfo, bool) {
		return func() (*rdebug.BuildInfo, bool) {
			return &rdebug.BuildInfo{
				GoVersion: "go1.24.2",
				Main:      rdebug.Module{Path: "github.com/amishk599/jobmerge", Version: mainVersion},
				Settings:  settings,
			}, true
		}
	}
	noInfo := func() (*rdebug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name     string
		linked   string
		readInfo func() (*rdebug.BuildInfo, bool)
		want     string
	}{
		{name: "linker version wins", linked: "v1.2.0", readInfo: buildInfo("v0.9.0"), want: "jobmerge v1.2.0 (go1.24.2)"},
		{name: "module version", linked: "dev", readInfo: buildInfo("v0.9.0"), want: "jobmerge v0.9.0 (go1.24.2)"},
		{
			name:     "vcs revision",
			linked:   "dev",
			readInfo: buildInfo("(devel)", rdebug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef"}),
			want:     "jobmerge dev-0123456789ab (go1.24.2)",
		},
		{
			name:   "dirty tree",
			linked: "dev",
			readInfo: buildInfo("(devel)",
				rdebug.BuildSetting{Key: "vcs.revision", Value: "abc123"},
				rdebug.BuildSetting{Key: "vcs.modified", Value: "true"},
			),
			want: "jobmerge dev-abc123-dirty (go1.24.2)",
		},
		{name: "no build info", linked: "dev", readInfo: noInfo, want: "jobmerge dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionString(tt.linked, tt.readInfo); got != tt.want {
				t.Errorf("versionString = %q, want %q", got, tt.want)
			}
		})
	}
}
