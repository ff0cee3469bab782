package domain

// MemoryRegion is the toolchain-reported usage of one memory region, in bytes.
type MemoryRegion struct {
	Used  int64 `json:"used"`
	Total int64 `json:"total"`
}

// BuildResult is the durable record of one target build.
// Every field is always serialized; absent values are encoded as null.
type BuildResult struct {
	Platform         string                  `json:"platform"`
	PlatformOriginal string                  `json:"platform_original"`
	PlatformFullName string                  `json:"platform_full_name"`
	Arch             string                  `json:"arch"`
	SampleName       string                  `json:"sample_name"`
	Success          bool                    `json:"success"`
	ExtendedMemory   bool                    `json:"extended_memory"`
	Configs          *string                 `json:"configs"`
	ZephyrSHA        string                  `json:"zephyr_sha"`
	ZephyrSDK        string                  `json:"zephyr_sdk"`
	BoardDir         string                  `json:"board_dir"`
	Memory           map[string]MemoryRegion `json:"memory"`
	DTSIncludeChain  []string                `json:"dts_include_chain"`
}

// Normalize enforces that a failed build carries no build-derived data.
func (r BuildResult) Normalize() BuildResult {
	if !r.Success {
		r.Memory = nil
		r.DTSIncludeChain = nil
	}
	return r
}

// Key identifies the result's target: sanitized platform and sample.
func (r BuildResult) Key() string {
	return r.Platform + "/" + r.SampleName
}

// Status is the collective status label of a result.
func (r BuildResult) Status() string {
	if r.Success {
		return StatusBuilt
	}
	return StatusNotBuilt
}

// Collective status labels.
const (
	StatusBuilt    = "BUILT"
	StatusNotBuilt = "NOT BUILT"
)

// Versions are the tool and source revisions a run was built with.
type Versions struct {
	Zephyr      string `json:"zephyr"`
	SDK         string `json:"sdk"`
	MicroPython string `json:"micropython"`
}

// UnknownVersion is reported for versions not provided by the environment.
const UnknownVersion = "???"

// Environment variables carrying the run's versions.
const (
	EnvZephyrVersion      = "ZEPHYR_VERSION"
	EnvSDKVersion         = "ZEPHYR_SDK_VERSION"
	EnvMicroPythonVersion = "MICROPYTHON_VERSION"
)

// VersionsFromEnv reads the run's versions, defaulting each to UnknownVersion.
func VersionsFromEnv(lookup func(string) (string, bool)) Versions {
	get := func(key string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return UnknownVersion
	}
	return Versions{
		Zephyr:      get(EnvZephyrVersion),
		SDK:         get(EnvSDKVersion),
		MicroPython: get(EnvMicroPythonVersion),
	}
}
