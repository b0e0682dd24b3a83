// Package hints adds actionable suggestions to error messages.
// A hint reads "\n  hint: <text>" and is appended to the error line.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-htmltox/internal/fileutil"
)

// IsInContainer detects Docker and similar runtimes through /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a CI runner is detected from its environment.
func inCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a browser that failed to start.
// noSandbox and browserBin are the engine settings that were in effect.
func ForBrowserConnect(noSandbox bool, browserBin string) string {
	var hints []string
	if !noSandbox && (inCI() || IsInContainer()) {
		hints = append(hints, "use --no-sandbox in Docker/CI")
	}
	if browserBin == "" && os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "use --browser-bin or ROD_BROWSER_BIN to pick an installed Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about slow pages.
func ForTimeout() string {
	return format("for slow pages, raise the limit with --timeout (e.g. --timeout 2m)")
}

// ForJobNotFound returns hints for a job that could not be located. For a
// job given by name it also names the user config location.
func ForJobNotFound(name string) string {
	hint := "use --config /path/to/job.yaml"
	if name != "" && !fileutil.IsFilePath(name) {
		if dir, err := os.UserConfigDir(); err == nil {
			hint += " or create " + filepath.Join(dir, "go-htmltox", name+".yaml")
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
