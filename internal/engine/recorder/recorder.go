// Package recorder turns a finished build into its artifacts and result document.
package recorder

import (
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
)

// Memory regions whose totals are reported from the unmodified device tree after a resize.
var reportedRegions = []string{"FLASH", "RAM"}

// Recorder collects artifacts and persists the result of one target.
type Recorder struct {
	outputs ports.ArtifactExtractor
	store   ports.ResultStore
	kconfig ports.Kconfig
	dts     ports.DeviceTree
	report  ports.ReportParser
}

// New creates a new Recorder.
func New(
	outputs ports.ArtifactExtractor,
	store ports.ResultStore,
	kconfig ports.Kconfig,
	dts ports.DeviceTree,
	report ports.ReportParser,
) *Recorder {
	return &Recorder{
		outputs: outputs,
		store:   store,
		kconfig: kconfig,
		dts:     dts,
		report:  report,
	}
}

// Record copies the target's artifacts and writes its result document.
// A result is written even when the artifacts cannot be collected; it is then
// marked as failed and the collection error is returned. An unreadable Kconfig
// fragment is recorded as no configs and its error is returned after the write.
func (r *Recorder) Record(
	cat *domain.Catalog,
	target domain.BuildTarget,
	outcome domain.Outcome,
	versions domain.Versions,
) (domain.BuildResult, error) {
	result, fragmentErr := r.result(cat, target, outcome, versions)

	_, collectErr := r.outputs.Collect(r.plan(cat, target, outcome))
	if collectErr != nil {
		result.Success = false
		collectErr = zerr.With(collectErr, "target", target.Label())
	}

	path, ok := cat.ArtifactPath(domain.ArtifactResult, target.Board.Name, target.Sample.Key)
	if !ok {
		return result, zerr.With(domain.ErrUnknownArtifactName, "name", domain.ArtifactResult)
	}
	if err := r.store.Put(path, result); err != nil {
		return result, err
	}

	return result.Normalize(), errors.Join(fragmentErr, collectErr)
}

func (r *Recorder) plan(cat *domain.Catalog, target domain.BuildTarget, outcome domain.Outcome) domain.ArtifactPlan {
	board, sample := target.Board.Name, target.Sample.Key
	md5Path, _ := cat.ArtifactPath(domain.ArtifactELFMD5, board, sample)
	zipPath, _ := cat.ArtifactPath(domain.ArtifactZipSBOM, board, sample)

	return domain.ArtifactPlan{
		Outputs:     outcome.Outputs,
		LogPath:     outcome.LogPath,
		OriginalDTS: outcome.OriginalDTS,
		DestDir:     cat.ArtifactDir(target.Board.Name, sample),
		Sample:      sample,
		Board:       target.Board.ArtifactName(),
		Success:     outcome.Success(),
		MD5Path:     md5Path,
		ZipPath:     zipPath,
	}
}

func (r *Recorder) result(
	cat *domain.Catalog,
	target domain.BuildTarget,
	outcome domain.Outcome,
	versions domain.Versions,
) (result domain.BuildResult, fragmentErr error) {
	result = domain.BuildResult{
		Platform:         target.Board.ArtifactName(),
		PlatformOriginal: target.Board.Name,
		PlatformFullName: target.Board.FullName,
		Arch:             target.Board.Arch,
		SampleName:       target.Sample.Key,
		Success:          outcome.Success(),
		ExtendedMemory:   outcome.ExtendedMemory,
		ZephyrSHA:        versions.Zephyr,
		ZephyrSDK:        versions.SDK,
		BoardDir:         relativeTo(cat.ProjectPath, target.Board.Dir),
	}

	if outcome.ConfFile != "" {
		lines, ok, err := r.kconfig.Fragment(outcome.ConfFile)
		switch {
		case err != nil:
			fragmentErr = zerr.With(err, "target", target.Label())
		case ok:
			configs := strings.Join(lines, "\n")
			result.Configs = &configs
		}
	}

	if !result.Success {
		return result, fragmentErr
	}

	result.Memory = r.memory(outcome)
	if source := r.dts.BoardSource(target.Board.Dir, target.Board.Name, target.Board.DescriptorPath); source != "" {
		result.DTSIncludeChain = r.dts.IncludeChain(cat.ProjectPath, target.Board.Arch, source)
	}
	return result, fragmentErr
}

// memory parses the final build report. After a resize the FLASH and RAM
// totals are taken from the unmodified device tree.
func (r *Recorder) memory(outcome domain.Outcome) map[string]domain.MemoryRegion {
	usage := r.report.MemoryUsage(outcome.FinalOutput)
	if usage == nil || len(outcome.Resized) == 0 || outcome.OriginalDTS == "" {
		return usage
	}

	for _, region := range reportedRegions {
		current, ok := usage[region]
		if !ok {
			continue
		}
		node, err := r.dts.RegionNode(outcome.OriginalDTS, region)
		if err != nil {
			continue
		}
		current.Total = node.Size
		usage[region] = current
	}
	return usage
}

func relativeTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
