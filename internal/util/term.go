// Package util holds small terminal helpers shared by the hardcoverctl
// commands.
package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// InitColor disables colored output when asked to, or when stdout is not a
// terminal, so piped command output stays free of escape codes.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}

// InitColorFromEnv applies NO_COLOR (https://no-color.org) on top of the
// explicit flag.
func InitColorFromEnv(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		noColor = true
	}
	InitColor(noColor)
}
