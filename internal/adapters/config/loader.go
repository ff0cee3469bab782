// Package config provides the catalog loader for zsb.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.CatalogLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validSampleKeyRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// sampleKeys are the keys accepted inside a sample entry.
var sampleKeys = map[string]bool{
	"name": true, "path": true, "kconfig": true, "extra_args": true,
	"workspace": true, "boards": true, "omit_in_results": true,
}

// Load reads the catalog at path, applies defaults and validates it.
func (l *Loader) Load(path string) (*domain.Catalog, error) {
	var file Catalogfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if file.ProjectPath == "" {
		return nil, zerr.With(domain.ErrMissingProjectPath, "path", path)
	}

	cat := &domain.Catalog{
		Project:        file.Project,
		ProjectName:    file.ProjectName,
		ProjectGitTree: file.ProjectGitTree,
		ProjectPath:    file.ProjectPath,
		Workspaces:     file.Workspaces,
		ArtifactPrefix: domain.DefaultArtifactPrefix,
		ArtifactNames:  domain.DefaultArtifactNames(),
		ConfigsDir:     orDefault(file.ConfigsDir, domain.DefaultConfigsDir),
		OverlaysDir:    orDefault(file.OverlaysDir, domain.DefaultOverlaysDir),
		ResultsURL:     orDefault(file.ResultsURL, domain.DefaultResultsURL),
		Exclude: domain.Exclusions{
			Archs:   domain.DefaultExcludedArchs(),
			Targets: domain.DefaultExcludedTargets(),
		},
	}

	if file.ArtifactPrefix != nil {
		cat.ArtifactPrefix = *file.ArtifactPrefix
	}

	if err := mergeArtifactNames(cat.ArtifactNames, file.ArtifactNames); err != nil {
		return nil, err
	}

	if file.Exclude != nil {
		if file.Exclude.Archs != nil {
			cat.Exclude.Archs = file.Exclude.Archs
		}
		if file.Exclude.Targets != nil {
			cat.Exclude.Targets = file.Exclude.Targets
		}
	}

	signatures, err := l.buildSignatures(file.OverflowSignatures)
	if err != nil {
		return nil, err
	}
	cat.Signatures = signatures

	nonRetryable, err := compilePatterns(file.NonRetryable)
	if err != nil {
		return nil, err
	}
	cat.NonRetryable = nonRetryable

	samples, err := decodeSamples(&file.Samples)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, zerr.With(domain.ErrNoSamples, "path", path)
	}
	if err := validateSamples(samples, cat.Workspaces); err != nil {
		return nil, err
	}
	cat.Samples = samples

	return cat, nil
}

func mergeArtifactNames(names, overrides map[string]string) error {
	for key := range overrides {
		if _, ok := names[key]; !ok {
			return zerr.With(domain.ErrUnknownArtifactName, "artifact", key)
		}
	}
	maps.Copy(names, overrides)
	return nil
}

func (l *Loader) buildSignatures(dtos []SignatureDTO) ([]domain.OverflowSignature, error) {
	if dtos == nil {
		return domain.DefaultSignatures(), nil
	}

	signatures := make([]domain.OverflowSignature, 0, len(dtos))
	for i, dto := range dtos {
		name := orDefault(dto.Name, fmt.Sprintf("signature-%d", i+1))

		pattern, err := regexp.Compile(dto.Pattern)
		if err != nil {
			wrapped := zerr.Wrap(err, domain.ErrInvalidSignature.Error())
			return nil, zerr.With(wrapped, "signature", name)
		}

		remediation := domain.Remediation(dto.Remediation)
		switch remediation {
		case domain.RemediationDTSResize:
			if pattern.NumSubexp() < 2 {
				err := zerr.With(domain.ErrInvalidSignature, "signature", name)
				return nil, zerr.With(err, "reason", "dts-resize patterns must capture region and bytes")
			}
		case domain.RemediationKconfig:
			if len(dto.Kconfig) == 0 {
				l.Logger.Warn(fmt.Sprintf("signature %s has kconfig remediation without kconfig lines", name))
			}
		default:
			err := zerr.With(domain.ErrUnknownRemediation, "signature", name)
			return nil, zerr.With(err, "remediation", dto.Remediation)
		}

		signatures = append(signatures, domain.OverflowSignature{
			Name:        name,
			Pattern:     pattern,
			Remediation: remediation,
			Kconfig:     dto.Kconfig,
		})
	}
	return signatures, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	if patterns == nil {
		return domain.DefaultNonRetryable(), nil
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			wrapped := zerr.Wrap(err, domain.ErrInvalidSignature.Error())
			return nil, zerr.With(wrapped, "non_retryable", p)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// decodeSamples walks the samples mapping in document order.
func decodeSamples(node *yaml.Node) ([]domain.SampleSpec, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrConfigParseFailed, "line", node.Line)
	}

	samples := make([]domain.SampleSpec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value

		if err := checkSampleKeys(key, valueNode); err != nil {
			return nil, err
		}

		var dto SampleDTO
		if err := valueNode.Decode(&dto); err != nil {
			wrapped := zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
			return nil, zerr.With(wrapped, "sample", key)
		}

		samples = append(samples, domain.SampleSpec{
			Key:           key,
			Name:          orDefault(dto.Name, key),
			Path:          dto.Path,
			Kconfig:       dto.Kconfig,
			ExtraArgs:     dto.ExtraArgs,
			Workspace:     dto.Workspace,
			Boards:        dto.Boards,
			OmitInResults: dto.OmitInResults,
		})
	}
	return samples, nil
}

// checkSampleKeys rejects unknown fields, which Node.Decode does not.
func checkSampleKeys(sample string, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return zerr.With(zerr.With(domain.ErrConfigParseFailed, "sample", sample), "line", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		field := node.Content[i].Value
		if !sampleKeys[field] {
			err := zerr.With(domain.ErrConfigParseFailed, "sample", sample)
			err = zerr.With(err, "unknown_field", field)
			return zerr.With(err, "line", node.Content[i].Line)
		}
	}
	return nil
}

func validateSamples(samples []domain.SampleSpec, workspaces map[string]string) error {
	for _, s := range samples {
		if !validSampleKeyRegex.MatchString(s.Key) {
			return zerr.With(domain.ErrInvalidSampleKey, "sample", s.Key)
		}
		if s.Path == "" {
			return zerr.With(domain.ErrMissingSamplePath, "sample", s.Key)
		}
		if s.Workspace != "" {
			if _, ok := workspaces[s.Workspace]; !ok {
				err := zerr.With(domain.ErrUnknownWorkspace, "sample", s.Key)
				return zerr.With(err, "workspace", s.Workspace)
			}
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// readAndUnmarshalYAML reads a YAML file and strictly decodes it into target.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
