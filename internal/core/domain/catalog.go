package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Artifact name keys.
const (
	ArtifactELF        = "elf"
	ArtifactELFMD5     = "elf-md5"
	ArtifactResult     = "result"
	ArtifactZipSBOM    = "zip-sbom"
	ArtifactSBOMApp    = "sbom-app"
	ArtifactSBOMBuild  = "sbom-build"
	ArtifactSBOMZephyr = "sbom-zephyr"
)

// SBOMArtifacts lists the artifact keys bundled into the SBOM archive.
var SBOMArtifacts = []string{ArtifactSBOMApp, ArtifactSBOMZephyr, ArtifactSBOMBuild}

// DefaultArtifactNames returns the default naming templates, relative to the artifact prefix.
func DefaultArtifactNames() map[string]string {
	return map[string]string{
		ArtifactELF:        "{board_name}/{sample_name}/{sample_name}.elf",
		ArtifactELFMD5:     "{board_name}/{sample_name}/{sample_name}.elf.md5",
		ArtifactResult:     "{board_name}/{sample_name}/{sample_name}-result.json",
		ArtifactZipSBOM:    "{board_name}/{sample_name}/{sample_name}-sbom.zip",
		ArtifactSBOMApp:    "{board_name}/{sample_name}/{sample_name}-app.spdx",
		ArtifactSBOMBuild:  "{board_name}/{sample_name}/{sample_name}-build.spdx",
		ArtifactSBOMZephyr: "{board_name}/{sample_name}/{sample_name}-zephyr.spdx",
	}
}

// Defaults applied by the catalog loader.
const (
	DefaultArtifactPrefix = "build/"
	DefaultConfigsDir     = "configs"
	DefaultOverlaysDir    = "overlays"
	DefaultResultsURL     = "https://storage.googleapis.com/zephyr-samples-builder/zephyr"
)

// DefaultExcludedArchs are architectures never built.
func DefaultExcludedArchs() []string {
	return []string{"posix"}
}

// DefaultExcludedTargets are identifier substrings never built.
func DefaultExcludedTargets() []string {
	return []string{"nsim", "xenvm", "xt-sim", "fvp_"}
}

// SampleSpec is one declared sample.
type SampleSpec struct {
	Key           string   `json:"-"`
	Name          string   `json:"name,omitempty"`
	Path          string   `json:"path"`
	Kconfig       []string `json:"kconfig,omitempty"`
	ExtraArgs     string   `json:"extra_args,omitempty"`
	Workspace     string   `json:"workspace,omitempty"`
	Boards        []string `json:"boards,omitempty"`
	OmitInResults bool     `json:"omit_in_results,omitempty"`
}

// ExtraArgList splits the free-form extra arguments into toolchain arguments.
func (s SampleSpec) ExtraArgList() []string {
	return strings.Fields(s.ExtraArgs)
}

// AllowsBoard reports whether the sample is restricted away from the board.
func (s SampleSpec) AllowsBoard(identifier string) bool {
	if len(s.Boards) == 0 {
		return true
	}
	for _, b := range s.Boards {
		if b == identifier {
			return true
		}
	}
	return false
}

// Exclusions filters discovered boards.
type Exclusions struct {
	Archs   []string `json:"archs"`
	Targets []string `json:"targets"`
}

// Excludes reports whether a board with the given arch and identifier is filtered out.
func (e Exclusions) Excludes(arch, identifier string) bool {
	for _, a := range e.Archs {
		if a == arch {
			return true
		}
	}
	for _, t := range e.Targets {
		if strings.Contains(identifier, t) {
			return true
		}
	}
	return false
}

// Catalog is the loaded, validated build catalog.
type Catalog struct {
	Project        string              `json:"project"`
	ProjectName    string              `json:"project_name"`
	ProjectGitTree string              `json:"project_git_tree"`
	ProjectPath    string              `json:"project_path"`
	Workspaces     map[string]string   `json:"workspaces,omitempty"`
	ArtifactPrefix string              `json:"artifact_prefix"`
	ArtifactNames  map[string]string   `json:"artifact_names"`
	ConfigsDir     string              `json:"configs_dir"`
	OverlaysDir    string              `json:"overlays_dir"`
	ResultsURL     string              `json:"results_url"`
	Exclude        Exclusions          `json:"exclude"`
	Signatures     []OverflowSignature `json:"overflow_signatures"`
	NonRetryable   []*regexp.Regexp    `json:"-"`

	// Samples keeps catalog order.
	Samples []SampleSpec `json:"-"`
}

// Sample returns the sample with the given key.
func (c *Catalog) Sample(key string) (SampleSpec, bool) {
	for _, s := range c.Samples {
		if s.Key == key {
			return s, true
		}
	}
	return SampleSpec{}, false
}

// WorkspaceRoot resolves the source tree a sample builds against.
func (c *Catalog) WorkspaceRoot(s SampleSpec) string {
	if s.Workspace == "" {
		return c.ProjectPath
	}
	if root, ok := c.Workspaces[s.Workspace]; ok {
		return root
	}
	return c.ProjectPath
}

// ArtifactPaths returns every naming template prefixed with the artifact prefix.
func (c *Catalog) ArtifactPaths() map[string]string {
	paths := make(map[string]string, len(c.ArtifactNames))
	for k, v := range c.ArtifactNames {
		paths[k] = c.ArtifactPrefix + v
	}
	return paths
}

// ArtifactPath renders one artifact path for a board and sample.
// The board name is sanitized before substitution.
func (c *Catalog) ArtifactPath(key, board, sample string) (string, bool) {
	tmpl, ok := c.ArtifactNames[key]
	if !ok {
		return "", false
	}
	r := strings.NewReplacer("{board_name}", SanitizeLower(board), "{sample_name}", sample)
	return r.Replace(c.ArtifactPrefix + tmpl), true
}

// OutputDir is the directory every artifact path is rendered under.
// Reports and the summary's result listing live there too.
func (c *Catalog) OutputDir() string {
	return filepath.Dir(filepath.FromSlash(c.ArtifactPrefix))
}

// ArtifactDir is the directory holding one target's artifacts, next to its result document.
func (c *Catalog) ArtifactDir(board, sample string) string {
	if p, ok := c.ArtifactPath(ArtifactResult, board, sample); ok {
		return filepath.Dir(filepath.FromSlash(p))
	}
	return filepath.Join(c.OutputDir(), SanitizeLower(board), sample)
}

// Visible returns the samples that are reported on, in catalog order.
func (c *Catalog) Visible() []SampleSpec {
	out := make([]SampleSpec, 0, len(c.Samples))
	for _, s := range c.Samples {
		if !s.OmitInResults {
			out = append(out, s)
		}
	}
	return out
}
