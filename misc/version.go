// Package misc keeps build related information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// set by linker.
var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns name of the program as it was started, without extension.
func GetAppName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit hash the program was built from. When it was not
// set at link time it is taken from the embedded build information.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
