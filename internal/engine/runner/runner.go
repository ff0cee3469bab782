// Package runner drives one build subprocess per target with bounded parallelism.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// RunSpanName names the span enclosing every target of a run.
const RunSpanName = "run"

// Options configure a parallel run.
type Options struct {
	// Executable is the zsb binary invoked once per target.
	Executable string
	// ConfigPath is passed to every build subprocess.
	ConfigPath string
	// Jobs caps the number of concurrent builds.
	Jobs int
	// FailFast cancels the remaining targets after the first failure.
	FailFast bool
}

// Report lists target labels by outcome.
type Report struct {
	Succeeded []string
	Failed    []string
	// Cancelled targets were never started or were killed by fail-fast.
	Cancelled []string
}

// Runner implements the parallel driver.
type Runner struct {
	executor ports.Executor
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a new Runner.
func New(executor ports.Executor, tracer ports.Tracer, logger ports.Logger) *Runner {
	return &Runner{executor: executor, tracer: tracer, logger: logger}
}

type runState struct {
	mu     sync.Mutex
	report Report
}

func (s *runState) add(list *[]string, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*list = append(*list, label)
}

var errTargetFailed = errors.New("target failed")

// Run builds every target and returns ErrTargetsFailed when any of them failed.
func (r *Runner) Run(ctx context.Context, targets []domain.BuildTarget, opts Options) (Report, error) {
	ctx, runSpan := r.tracer.Start(ctx, RunSpanName)
	defer runSpan.End()

	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = t.Label()
	}
	r.tracer.EmitPlan(ctx, labels)

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	state := &runState{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, target := range targets {
		g.Go(func() error {
			if gctx.Err() != nil {
				state.add(&state.report.Cancelled, target.Label())
				return nil
			}

			ok := r.buildTarget(gctx, state, target, opts)
			if !ok && opts.FailFast {
				return errTargetFailed
			}
			return nil
		})
	}
	_ = g.Wait()

	report := state.report
	runSpan.SetAttribute("zsb.failed", len(report.Failed))
	if len(report.Failed) == 0 {
		return report, nil
	}

	err := zerr.With(domain.ErrTargetsFailed, "failed", len(report.Failed))
	runSpan.RecordError(err)
	return report, err
}

// buildTarget runs one build subprocess inside its own span and reports whether it succeeded.
func (r *Runner) buildTarget(ctx context.Context, state *runState, target domain.BuildTarget, opts Options) bool {
	label := target.Label()
	ctx, span := r.tracer.Start(ctx, label)
	defer span.End()

	span.SetAttribute("zsb.board", target.Board.Name)
	span.SetAttribute("zsb.sample", target.Sample.Key)

	code, err := r.executor.Run(ctx, Command(target, opts), span)
	switch {
	case err != nil && ctx.Err() != nil:
		span.RecordError(ctx.Err())
		state.add(&state.report.Cancelled, label)
		return true
	case err != nil:
		r.logger.Warn(fmt.Sprintf("%s: %v", label, err))
		span.RecordError(err)
		state.add(&state.report.Failed, label)
		return false
	case code != 0:
		span.RecordError(zerr.With(domain.ErrBuildFailed, "exit_code", code))
		state.add(&state.report.Failed, label)
		return false
	}

	state.add(&state.report.Succeeded, label)
	return true
}

// Command is the build subprocess of one target.
func Command(target domain.BuildTarget, opts Options) domain.Command {
	args := []string{
		"build", target.Board.Dir, target.Board.Name, target.Sample.Key,
		"-j", strconv.Itoa(target.Index),
		"-J", strconv.Itoa(target.Total),
	}
	if opts.ConfigPath != "" {
		args = append(args, "-c", opts.ConfigPath)
	}
	return domain.Command{Name: opts.Executable, Args: args}
}
