package logger

import (
	"github.com/fatih/color"
)

// Colorized printing functions for the status lines myzsh emits while
// provisioning. Each behaves like fmt.Printf with text colored for its level.

// Info logs step progress in blue.
var Info = color.New(color.FgBlue).PrintfFunc()

// Success logs completed steps in green.
var Success = color.New(color.FgGreen).PrintfFunc()

// Warn logs non-fatal problems in bright magenta. Warnings never stop a run.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs fatal problems in red on standard error.
var Error = func(format string, a ...any) {
	errorf(color.Error, format, a...)
}

var errorf = color.New(color.FgRed).FprintfFunc()

// Debug logs diagnostic messages in cyan when enabled, otherwise is a no-op.
// It is assigned during Init based on the --debug flag.
var Debug func(format string, a ...any)

func init() {
	Init(false)
}

// Init enables or disables debug output. When disabled, Debug silently
// discards its input.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
