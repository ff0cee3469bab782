package domain

import (
	"fmt"
	"strings"
)

// BuildTarget is one (board, sample) unit of work.
type BuildTarget struct {
	Board  BoardEntry
	Sample SampleSpec
	// Index is the 1-based position in the expanded matrix.
	Index int
	// Total is the size of the expanded matrix.
	Total int
}

// Label returns a short human-readable name for logs.
func (t BuildTarget) Label() string {
	return t.Board.Name + "/" + t.Sample.Key
}

// Line renders the target in the matrix listing format.
func (t BuildTarget) Line() string {
	return fmt.Sprintf("%s %s %s", t.Board.Dir, t.Board.Name, t.Sample.Key)
}

// MatrixLine is one parsed line of a matrix listing.
type MatrixLine struct {
	BoardDir string
	Board    string
	Sample   string
}

// ParseMatrixLine parses "board_dir board sample".
func ParseMatrixLine(line string) (MatrixLine, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return MatrixLine{}, false
	}
	return MatrixLine{BoardDir: fields[0], Board: fields[1], Sample: fields[2]}, true
}

// Key identifies a target across results and listings.
func (m MatrixLine) Key() string {
	return SanitizeLower(m.Board) + "/" + m.Sample
}

// BuildRequest is one toolchain invocation.
type BuildRequest struct {
	Board string
	// SourceDir is the absolute sample directory.
	SourceDir string
	// BuildDir is the isolated output directory, recreated on each invocation.
	BuildDir string
	// WorkspaceRoot is the source tree the toolchain runs in.
	WorkspaceRoot string
	// Args are extra toolchain arguments (CONF_FILE, sample extra args).
	Args []string
	// Overlays are device-tree overlays passed as DTC_OVERLAY_FILE.
	Overlays []string
	// ExtraConfFiles are Kconfig fragments passed as EXTRA_CONF_FILE.
	ExtraConfFiles []string
	// CMakeOnly configures the build without compiling it.
	CMakeOnly bool
}

// Invocation is the outcome of one toolchain invocation.
type Invocation struct {
	ExitCode int
	// Output is the combined output of the build step.
	Output string
}

// Succeeded reports whether the build step exited zero.
func (i Invocation) Succeeded() bool {
	return i.ExitCode == 0
}

// Command is one external process to run.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env holds extra "KEY=VALUE" entries layered over the inherited environment.
	Env []string
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}
