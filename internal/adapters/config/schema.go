package config

import "gopkg.in/yaml.v3"

// Catalogfile represents the structure of the catalog YAML file.
type Catalogfile struct {
	Project            string            `yaml:"project"`
	ProjectName        string            `yaml:"project_name"`
	ProjectGitTree     string            `yaml:"project_git_tree"`
	ProjectPath        string            `yaml:"project_path"`
	Samples            yaml.Node         `yaml:"samples"`
	Workspaces         map[string]string `yaml:"workspaces"`
	ArtifactPrefix     *string           `yaml:"artifact_prefix"`
	ArtifactNames      map[string]string `yaml:"artifact_names"`
	ConfigsDir         string            `yaml:"configs_dir"`
	OverlaysDir        string            `yaml:"overlays_dir"`
	ResultsURL         string            `yaml:"results_url"`
	Exclude            *ExcludeDTO       `yaml:"exclude"`
	OverflowSignatures []SignatureDTO    `yaml:"overflow_signatures"`
	NonRetryable       []string          `yaml:"non_retryable"`
}

// SampleDTO represents one entry of the samples mapping.
type SampleDTO struct {
	Name          string   `yaml:"name"`
	Path          string   `yaml:"path"`
	Kconfig       []string `yaml:"kconfig"`
	ExtraArgs     string   `yaml:"extra_args"`
	Workspace     string   `yaml:"workspace"`
	Boards        []string `yaml:"boards"`
	OmitInResults bool     `yaml:"omit_in_results"`
}

// ExcludeDTO represents the board exclusion rules. Nil lists keep the defaults.
type ExcludeDTO struct {
	Archs   []string `yaml:"archs"`
	Targets []string `yaml:"targets"`
}

// SignatureDTO represents one overflow signature.
type SignatureDTO struct {
	Name        string   `yaml:"name"`
	Pattern     string   `yaml:"pattern"`
	Remediation string   `yaml:"remediation"`
	Kconfig     []string `yaml:"kconfig"`
}
