package domain

import "go.trai.ch/zerr"

// Error classes. The app layer joins one of these onto every error it returns
// so that main can map it to an exit code.
var (
	// ErrConfigInvalid marks errors that abort before any build starts.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrBuildFailed marks a toolchain failure or a failed run.
	ErrBuildFailed = zerr.New("build failed")

	// ErrArtifactExtraction marks a successful build whose outputs could not be collected.
	ErrArtifactExtraction = zerr.New("artifact extraction failed")
)

var (
	// ErrConfigReadFailed is returned when the catalog file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the catalog file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingProjectPath is returned when the catalog does not declare project_path.
	ErrMissingProjectPath = zerr.New("project_path is required")

	// ErrNoSamples is returned when the catalog declares no samples.
	ErrNoSamples = zerr.New("catalog declares no samples")

	// ErrInvalidSampleKey is returned when a sample key contains characters unusable in artifact names.
	ErrInvalidSampleKey = zerr.New("sample key can only contain alphanumeric characters, hyphens and underscores")

	// ErrMissingSamplePath is returned when a sample does not declare a path.
	ErrMissingSamplePath = zerr.New("sample path is required")

	// ErrUnknownWorkspace is returned when a sample references an undeclared workspace.
	ErrUnknownWorkspace = zerr.New("unknown workspace")

	// ErrUnknownArtifactName is returned when a required artifact name is missing.
	ErrUnknownArtifactName = zerr.New("unknown artifact name")

	// ErrInvalidSignature is returned when an overflow signature cannot be compiled.
	ErrInvalidSignature = zerr.New("invalid overflow signature")

	// ErrUnknownRemediation is returned when a signature names an unsupported remediation.
	ErrUnknownRemediation = zerr.New("unknown remediation, expected 'dts-resize' or 'kconfig'")

	// ErrSampleNotFound is returned when a sample key is not in the catalog.
	ErrSampleNotFound = zerr.New("sample not found in catalog")

	// ErrSamplePathNotFound is returned when a sample path does not exist in its source tree.
	ErrSamplePathNotFound = zerr.New("sample path does not exist")

	// ErrBoardsDirNotFound is returned when the source tree has no boards directory.
	ErrBoardsDirNotFound = zerr.New("boards directory not found")

	// ErrBoardMetadataNotFound is returned when no board descriptor matches an identifier.
	ErrBoardMetadataNotFound = zerr.New("board metadata not found")

	// ErrBoardMetadataInvalid is returned when a board descriptor lacks required fields.
	ErrBoardMetadataInvalid = zerr.New("board metadata is missing name or arch")

	// ErrArtifactNameCollision is returned when two boards map to the same artifact directory.
	ErrArtifactNameCollision = zerr.New("boards collide on sanitized artifact name")

	// ErrInvalidShard is returned when a shard argument is not of the form i/n.
	ErrInvalidShard = zerr.New("invalid shard, expected i/N with 1 <= i <= N")

	// ErrMatrixReadFailed is returned when a matrix listing cannot be read.
	ErrMatrixReadFailed = zerr.New("failed to read matrix listing")

	// ErrToolchainStartFailed is returned when the toolchain process cannot be started.
	ErrToolchainStartFailed = zerr.New("failed to start toolchain")

	// ErrWorkDirFailed is returned when the isolated build directory cannot be prepared.
	ErrWorkDirFailed = zerr.New("failed to prepare build directory")

	// ErrLogWriteFailed is returned when the build log cannot be written.
	ErrLogWriteFailed = zerr.New("failed to write build log")

	// ErrOverlayWriteFailed is returned when a remediation overlay cannot be written.
	ErrOverlayWriteFailed = zerr.New("failed to write remediation overlay")

	// ErrDeviceTreeReadFailed is returned when a device-tree file cannot be read.
	ErrDeviceTreeReadFailed = zerr.New("failed to read device tree")

	// ErrMemoryNodeNotFound is returned when no chosen memory node matches a region.
	ErrMemoryNodeNotFound = zerr.New("memory node not found in device tree")

	// ErrMemoryNodeUnparsable is returned when a memory node's reg property lacks base and size cells.
	ErrMemoryNodeUnparsable = zerr.New("memory node reg property cannot be parsed")

	// ErrKconfigReadFailed is returned when a Kconfig file cannot be read.
	ErrKconfigReadFailed = zerr.New("failed to read kconfig file")

	// ErrMissingArtifact is returned when a successful build lacks an expected output.
	ErrMissingArtifact = zerr.New("expected build output is missing")

	// ErrArtifactCopyFailed is returned when an artifact cannot be copied.
	ErrArtifactCopyFailed = zerr.New("failed to copy artifact")

	// ErrChecksumFailed is returned when the binary checksum cannot be written.
	ErrChecksumFailed = zerr.New("failed to write binary checksum")

	// ErrArchiveFailed is returned when the SBOM archive cannot be written.
	ErrArchiveFailed = zerr.New("failed to write SBOM archive")

	// ErrResultMarshalFailed is returned when a result cannot be marshaled.
	ErrResultMarshalFailed = zerr.New("failed to marshal build result")

	// ErrResultWriteFailed is returned when a result cannot be written.
	ErrResultWriteFailed = zerr.New("failed to write build result")

	// ErrResultReadFailed is returned when a result cannot be read.
	ErrResultReadFailed = zerr.New("failed to read build result")

	// ErrResultUnmarshalFailed is returned when a result cannot be unmarshaled.
	ErrResultUnmarshalFailed = zerr.New("failed to unmarshal build result")

	// ErrReportWriteFailed is returned when a summary file cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write summary report")

	// ErrRemoteRequestFailed is returned when the published results cannot be fetched.
	ErrRemoteRequestFailed = zerr.New("failed to fetch published results")

	// ErrRemoteParseFailed is returned when the published results cannot be parsed.
	ErrRemoteParseFailed = zerr.New("failed to parse published results")

	// ErrTargetsFailed is returned by the parallel driver when at least one target failed.
	ErrTargetsFailed = zerr.New("one or more targets failed")

	// ErrInvalidRunnerCount is returned when MATRIX_RUNNERS is not a positive integer.
	ErrInvalidRunnerCount = zerr.New("runner count must be a positive integer")

	// ErrExecutableNotFound is returned when the driver cannot locate its own binary.
	ErrExecutableNotFound = zerr.New("failed to locate zsb executable")
)
