// Package detector selects how a parallel run reports target output.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is the rendering mode of a parallel run.
type OutputMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto OutputMode = iota
	// ModeLinear streams every target's output, prefixed with its label.
	ModeLinear
	// ModeQuiet prints only target start and completion lines.
	ModeQuiet
)

// StreamsLogs reports whether target output is printed.
func (m OutputMode) StreamsLogs() bool {
	return m != ModeQuiet
}

// DetectEnvironment returns ModeLinear in CI or when stdout is not a terminal,
// and ModeQuiet on an interactive terminal.
func DetectEnvironment() OutputMode {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeLinear
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeLinear
	}
	return ModeQuiet
}

// ResolveMode applies the --output flag over auto-detection.
// userFlag is one of "auto", "linear", "ci", "quiet" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "linear", "ci":
		return ModeLinear
	case "quiet":
		return ModeQuiet
	default:
		return autoDetected
	}
}
