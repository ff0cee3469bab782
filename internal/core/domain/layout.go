package domain

import "path/filepath"

const (
	// ZsbDirName is the name of the internal workspace directory.
	ZsbDirName = ".zsb"

	// WorkDirName is the name of the directory holding per-target build trees.
	WorkDirName = "work"

	// DefaultCatalogFile is the catalog used when no --config flag is given.
	DefaultCatalogFile = "config.yaml"

	// BuildLogFile is the name of the per-target combined toolchain log.
	BuildLogFile = "build.log"

	// OriginalDTSFile is the name of the preserved, unmodified device tree.
	OriginalDTSFile = "zephyr.dts.orig"

	// ResizeOverlayFile is the name of the generated memory-resize overlay.
	ResizeOverlayFile = "memory.overlay"

	// ExtraConfFile is the name of the generated Kconfig remediation fragment.
	ExtraConfFile = "memory.conf"

	// BuildDirName is the name of the toolchain output directory inside a work dir.
	BuildDirName = "out"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Well-known files relative to the toolchain output directory.
const (
	OutputELF        = "zephyr/zephyr.elf"
	OutputDTS        = "zephyr/zephyr.dts"
	OutputConfig     = "zephyr/.config"
	OutputSPDXApp    = "spdx/app.spdx"
	OutputSPDXBuild  = "spdx/build.spdx"
	OutputSPDXZephyr = "spdx/zephyr.spdx"
)

// DefaultZsbPath returns the default root directory for zsb metadata.
func DefaultZsbPath() string {
	return ZsbDirName
}

// DefaultWorkPath returns the root of all isolated build directories.
// It joins .zsb and work.
func DefaultWorkPath() string {
	return filepath.Join(ZsbDirName, WorkDirName)
}

// TargetWorkPath returns the isolated work directory for one target.
func TargetWorkPath(root string, board, sample string) string {
	return filepath.Join(root, DefaultWorkPath(), SanitizeLower(board), sample)
}
