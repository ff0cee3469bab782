package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/adapters/detector"
	"go.trai.ch/zsb/internal/adapters/linear"
	"go.trai.ch/zsb/internal/adapters/telemetry"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/engine/runner"
	"golang.org/x/sync/errgroup"
)

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath string
	Jobs       int
	FailFast   bool
	Shard      string
	// OutputMode is one of "auto", "linear", "ci" or "quiet".
	OutputMode string
}

// Run expands the matrix and builds every target in a subprocess of its own.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cat, err := a.loadCatalog(opts.ConfigPath)
	if err != nil {
		return err
	}

	targets, err := a.expand(cat, opts.Shard)
	if err != nil {
		return err
	}

	exe, err := a.executable()
	if err != nil {
		return zerr.Wrap(err, domain.ErrExecutableNotFound.Error())
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	renderer := linear.NewRenderer(a.stdout, a.stderr, mode.StreamsLogs())

	bridge := telemetry.NewBridge(renderer)
	provider := telemetry.NewProvider(bridge)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(provider, renderer)

	driver := runner.New(a.executor, tracer, a.logger)
	runOpts := runner.Options{
		Executable: exe,
		ConfigPath: opts.ConfigPath,
		Jobs:       opts.Jobs,
		FailFast:   opts.FailFast,
	}

	var report runner.Report
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		var runErr error
		report, runErr = driver.Run(gctx, targets, runOpts)
		return runErr
	})

	err = g.Wait()
	a.logger.Info(fmt.Sprintf(
		"%d succeeded, %d failed, %d cancelled",
		len(report.Succeeded), len(report.Failed), len(report.Cancelled),
	))

	if err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}
	if len(report.Cancelled) > 0 {
		return errors.Join(domain.ErrBuildFailed, ctx.Err())
	}
	return nil
}
