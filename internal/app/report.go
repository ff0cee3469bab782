package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/engine/diff"
	"go.trai.ch/zsb/internal/engine/matrix"
	"go.trai.ch/zsb/internal/engine/summary"
)

const (
	// EnvMatrixRunners sets the number of CI runners the matrix is sharded across.
	EnvMatrixRunners = "MATRIX_RUNNERS"
	// DefaultRunners is used when EnvMatrixRunners is unset.
	DefaultRunners = 2
)

// SummaryOptions configuration for the Summary method.
type SummaryOptions struct {
	ConfigPath string
	// MatrixPath is an optional target listing; expected targets without a result count as missing.
	MatrixPath string
}

// Summary aggregates every result, writes the report files and prints a markdown summary.
func (a *App) Summary(_ context.Context, opts SummaryOptions) error {
	cat, err := a.loadCatalog(opts.ConfigPath)
	if err != nil {
		return err
	}

	var expected []domain.MatrixLine
	if opts.MatrixPath != "" {
		expected, err = matrix.ReadListingFile(opts.MatrixPath)
		if err != nil {
			return errors.Join(domain.ErrConfigInvalid, err)
		}
	}

	s, err := a.aggregator.Summarize(cat, summary.Options{
		Expected: expected,
		Versions: domain.VersionsFromEnv(a.lookupEnv),
	})
	if err != nil {
		return err
	}

	for _, m := range s.Malformed {
		a.logger.Warn(fmt.Sprintf("skipping malformed result %s: %v", m.Path, m.Err))
	}

	if err := a.aggregator.Write(cat, s); err != nil {
		return err
	}
	return summary.Markdown(a.stdout, s)
}

// DiffOptions configuration for the Diff method.
type DiffOptions struct {
	ConfigPath string
}

// Diff compares the local collective result with the most recently published one.
// An unreachable remote is reported and does not fail the command.
func (a *App) Diff(ctx context.Context, opts DiffOptions) error {
	cat, err := a.loadCatalog(opts.ConfigPath)
	if err != nil {
		return err
	}

	local, err := a.store.GetCollective(filepath.Join(cat.OutputDir(), summary.CollectiveFile))
	if err != nil {
		return err
	}

	version, remote, err := a.remote.Latest(ctx, cat.ResultsURL)
	if err != nil {
		_, _ = fmt.Fprintf(a.stdout, "Failed to get remote results, quitting!\n%v\n", err)
		return nil
	}

	_, _ = fmt.Fprintf(a.stdout, "Comparing against published results %s\n", version)

	visible := cat.Visible()
	samples := make([]string, len(visible))
	for i, s := range visible {
		samples[i] = s.Key
	}
	diff.Print(a.stdout, diff.Compare(samples, remote, local))
	return nil
}

type catalogView struct {
	*domain.Catalog
	OutputDir     string                       `json:"output_dir"`
	Samples       map[string]domain.SampleSpec `json:"samples"`
	ArtifactPaths map[string]string            `json:"artifact_paths"`
	NonRetryable  []string                     `json:"non_retryable"`
}

// Catalog prints the loaded catalog as JSON, without the samples omitted from results.
func (a *App) Catalog(_ context.Context, configPath string) error {
	cat, err := a.loadCatalog(configPath)
	if err != nil {
		return err
	}

	view := catalogView{
		Catalog:       cat,
		OutputDir:     cat.OutputDir(),
		Samples:       make(map[string]domain.SampleSpec),
		ArtifactPaths: cat.ArtifactPaths(),
		NonRetryable:  make([]string, 0, len(cat.NonRetryable)),
	}
	for _, s := range cat.Visible() {
		view.Samples[s.Key] = s
	}
	for _, re := range cat.NonRetryable {
		view.NonRetryable = append(view.NonRetryable, re.String())
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return zerr.Wrap(err, "failed to encode catalog")
	}
	return nil
}

// Runners prints the CI runner indices as JSON.
func (a *App) Runners(_ context.Context) error {
	count := DefaultRunners
	if raw, ok := a.lookupEnv(EnvMatrixRunners); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return errors.Join(domain.ErrConfigInvalid, zerr.With(domain.ErrInvalidRunnerCount, "value", raw))
		}
		count = n
	}

	runners := make([]int, count)
	for i := range runners {
		runners[i] = i + 1
	}

	out, err := json.Marshal(map[string][]int{"runner": runners})
	if err != nil {
		return zerr.Wrap(err, "failed to encode runners")
	}
	_, _ = fmt.Fprintln(a.stdout, string(out))
	return nil
}
