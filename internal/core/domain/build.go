package domain

// BuildState is a state of the single-target build state machine.
type BuildState string

const (
	StateInit     BuildState = "init"
	StateBuilding BuildState = "building"
	StateRetry    BuildState = "retry"
	StateSuccess  BuildState = "success"
	StateFailure  BuildState = "failure"
)

// Terminal reports whether no further transition is possible.
func (s BuildState) Terminal() bool {
	return s == StateSuccess || s == StateFailure
}

// MaxBuildAttempts bounds the toolchain invocations of one target, the
// cmake-only prepare pass excluded.
const MaxBuildAttempts = 2

// Overflow is one region overflow reported by the linker.
type Overflow struct {
	Region string
	Bytes  int64
}

// MemoryNode is a device-tree memory node selected through /chosen.
type MemoryNode struct {
	// Chosen is the /chosen property suffix, e.g. "sram" for zephyr,sram.
	Chosen string
	// Label is the node label the chosen property points to.
	Label string
	// Base is the base address cell as written in the source.
	Base string
	// Size is the region size in bytes.
	Size int64
}

// ResizeAlignment is the granularity memory nodes are grown by.
const ResizeAlignment = 4096

// Grow returns the node enlarged to cover an overflow, rounded up to ResizeAlignment.
func (n MemoryNode) Grow(overflow int64) MemoryNode {
	increase := (overflow + ResizeAlignment - 1) / ResizeAlignment * ResizeAlignment
	n.Size += increase
	return n
}

// BuildOutputs are the well-known files found in a toolchain output directory.
// Empty strings mark absent files.
type BuildOutputs struct {
	ELF    string
	DTS    string
	Config string
	SPDX   []string
}

// MissingRequired names the required outputs that are absent.
func (o BuildOutputs) MissingRequired() []string {
	var missing []string
	if o.ELF == "" {
		missing = append(missing, OutputELF)
	}
	if o.DTS == "" {
		missing = append(missing, OutputDTS)
	}
	if o.Config == "" {
		missing = append(missing, OutputConfig)
	}
	return missing
}

// Outcome is what the builder hands to the recorder.
type Outcome struct {
	State          BuildState
	ExtendedMemory bool
	Attempts       int
	WorkDir        string
	BuildDir       string
	LogPath        string
	// OriginalDTS is the preserved unmodified device tree, empty when the DTS was not modified.
	OriginalDTS string
	// ConfFile is the sample Kconfig fragment passed to the toolchain, empty when none.
	ConfFile string
	Outputs  BuildOutputs
	// FinalOutput is the build-step output of the last attempt.
	FinalOutput string
	// Resized lists the memory nodes grown for the retry, with their original sizes.
	Resized []MemoryNode
	// MissingKconfig lists required Kconfig lines absent from the generated .config.
	MissingKconfig []string
	// MissingOutputs lists the required outputs absent after a zero exit.
	MissingOutputs []string
}

// Success reports whether the outcome is a successful build.
func (o Outcome) Success() bool {
	return o.State == StateSuccess
}

// ArtifactPlan tells the extractor where every artifact goes.
type ArtifactPlan struct {
	Outputs     BuildOutputs
	LogPath     string
	OriginalDTS string
	// DestDir is the directory of the target's result document.
	DestDir string
	Sample  string
	// Board is the sanitized board name, used for archive entries.
	Board   string
	Success bool
	// MD5Path and ZipPath are produced only on success.
	MD5Path string
	ZipPath string
}

// CollectedArtifacts lists the files the extractor wrote.
type CollectedArtifacts struct {
	Log         string
	ELF         string
	DTS         string
	OriginalDTS string
	Config      string
	SPDX        []string
	MD5         string
	Zip         string
}
