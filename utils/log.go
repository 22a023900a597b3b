package utils

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/handegar/retroopl/settings"
)

// All console output goes to stderr. Stdout may be carrying a script.

var warnColor = color.New(color.FgYellow)
var errorColor = color.New(color.FgRed, color.Bold)

// Prints a "* ..." status line
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(color.Error, "* "+format+"\n", args...)
}

// Like Printf but only when debug output is enabled
func Logf(format string, args ...interface{}) {
	if !settings.PrintDebug {
		return
	}
	Printf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	warnColor.Fprintf(color.Error, "* WARNING: "+format+"\n", args...)
}

func Errorf(format string, args ...interface{}) {
	errorColor.Fprintf(color.Error, "ERROR: "+format+"\n", args...)
}
