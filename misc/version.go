// Package misc keeps build time program identity.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "bdr"

// set with -ldflags "-X bdr/misc.version=... -X bdr/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

var readBuildInfo = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 8 {
				return s.Value[:8]
			}
			return s.Value
		}
	}
	return "unknown"
})

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns short VCS revision program was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	return readBuildInfo()
}
