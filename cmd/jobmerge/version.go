package main

import (
	"fmt"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X main.version=..." on release builds.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(version, rdebug.ReadBuildInfo))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString prefers the linker-set version, then the module version
// recorded by `go install`, then the VCS revision.
func versionString(linked string, readInfo func() (*rdebug.BuildInfo, bool)) string {
	v := linked
	info, ok := readInfo()
	if v == "dev" && ok {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			v = mv
		} else if rev := buildSetting(info, "vcs.revision"); rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			v = "dev-" + rev
			if buildSetting(info, "vcs.modified") == "true" {
				v += "-dirty"
			}
		}
	}

	out := "jobmerge " + v
	if ok && info.GoVersion != "" {
		out += " (" + info.GoVersion + ")"
	}
	return out
}

func buildSetting(info *rdebug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
