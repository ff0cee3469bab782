package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/engine/builder"
)

// FrameWidth is the width of the job frames printed around a build.
const FrameWidth = 80

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	ConfigPath string
	BoardDir   string
	Board      string
	Sample     string
	// Job and Jobs are the 1-based position and size of the matrix; both set enables job frames.
	Job  int
	Jobs int
	// Verbose mirrors toolchain output to stdout.
	Verbose bool
}

func (o BuildOptions) framed() bool {
	return o.Job > 0 && o.Jobs > 0
}

// Build builds one target, collects its artifacts and records its result.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cat, err := a.loadCatalog(opts.ConfigPath)
	if err != nil {
		return err
	}

	sample, ok := cat.Sample(opts.Sample)
	if !ok {
		return errors.Join(domain.ErrConfigInvalid, zerr.With(domain.ErrSampleNotFound, "sample", opts.Sample))
	}

	if !sample.AllowsBoard(opts.Board) {
		a.logger.Warn(fmt.Sprintf("%s is not listed in the boards of %s", opts.Board, sample.Key))
	}

	board, err := a.boards.Lookup(opts.BoardDir, opts.Board)
	if err != nil {
		return errors.Join(domain.ErrConfigInvalid, err)
	}

	target := domain.BuildTarget{Board: board, Sample: sample, Index: opts.Job, Total: opts.Jobs}
	start := time.Now()
	if opts.framed() {
		a.frame(fmt.Sprintf("job %d / %d started", opts.Job, opts.Jobs))
	}

	var mirror io.Writer
	if opts.Verbose {
		mirror = a.stdout
	}

	outcome, buildErr := a.builder.Build(ctx, cat, target, builder.Options{Root: a.root, Mirror: mirror})
	if buildErr != nil && outcome.LogPath == "" {
		return errors.Join(domain.ErrBuildFailed, buildErr)
	}

	versions := domain.VersionsFromEnv(a.lookupEnv)
	result, recordErr := a.recorder.Record(cat, target, outcome, versions)

	if opts.framed() {
		elapsed := time.Since(start).Seconds()
		a.frame(fmt.Sprintf("job %d / %d finished in %.2fs", opts.Job, opts.Jobs, elapsed))
	}

	switch {
	case len(outcome.MissingOutputs) > 0:
		return errors.Join(domain.ErrArtifactExtraction, buildErr, recordErr)
	case buildErr != nil:
		return errors.Join(domain.ErrBuildFailed, buildErr, recordErr)
	case recordErr != nil:
		return errors.Join(domain.ErrArtifactExtraction, recordErr)
	}

	a.report(target, outcome, result)
	if !result.Success {
		return domain.ErrBuildFailed
	}
	return nil
}

func (a *App) report(target domain.BuildTarget, outcome domain.Outcome, result domain.BuildResult) {
	label := target.Label()
	switch {
	case result.Success && result.ExtendedMemory:
		a.logger.Info(fmt.Sprintf("%s built with extended memory", label))
	case result.Success:
		a.logger.Info(fmt.Sprintf("%s built", label))
	case len(outcome.MissingKconfig) > 0:
		a.logger.Warn(fmt.Sprintf("%s built without %s", label, strings.Join(outcome.MissingKconfig, ", ")))
	default:
		a.logger.Warn(fmt.Sprintf("%s failed after %d attempt(s), see %s", label, outcome.Attempts, outcome.LogPath))
	}
}

func (a *App) frame(text string) {
	line := strings.Repeat("=", FrameWidth)
	_, _ = fmt.Fprintf(a.stdout, "\n%s\n%s\n%s\n\n", line, text, line)
}
