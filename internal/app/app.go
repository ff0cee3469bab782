// Package app implements the application layer for zsb.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
	"go.trai.ch/zsb/internal/engine/builder"
	"go.trai.ch/zsb/internal/engine/matrix"
	"go.trai.ch/zsb/internal/engine/recorder"
	"go.trai.ch/zsb/internal/engine/summary"
)

// App represents the main application logic.
type App struct {
	loader     ports.CatalogLoader
	boards     ports.BoardIndex
	executor   ports.Executor
	store      ports.ResultStore
	remote     ports.RemoteResults
	logger     ports.Logger
	expander   *matrix.Expander
	builder    *builder.Builder
	recorder   *recorder.Recorder
	aggregator *summary.Aggregator

	stdout     io.Writer
	stderr     io.Writer
	root       string
	lookupEnv  func(string) (string, bool)
	executable func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.CatalogLoader,
	boards ports.BoardIndex,
	executor ports.Executor,
	store ports.ResultStore,
	remote ports.RemoteResults,
	log ports.Logger,
	expander *matrix.Expander,
	build *builder.Builder,
	rec *recorder.Recorder,
	aggregator *summary.Aggregator,
) *App {
	return &App{
		loader:     loader,
		boards:     boards,
		executor:   executor,
		store:      store,
		remote:     remote,
		logger:     log,
		expander:   expander,
		builder:    build,
		recorder:   rec,
		aggregator: aggregator,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		root:       ".",
		lookupEnv:  os.LookupEnv,
		executable: os.Executable,
	}
}

// WithOutput redirects command output and progress output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithRoot sets the directory holding the .zsb work tree.
func (a *App) WithRoot(root string) *App {
	a.root = root
	return a
}

// WithEnv replaces the environment lookup.
func (a *App) WithEnv(lookup func(string) (string, bool)) *App {
	a.lookupEnv = lookup
	return a
}

// WithExecutable replaces how the driver locates the binary it spawns per target.
func (a *App) WithExecutable(fn func() (string, error)) *App {
	a.executable = fn
	return a
}

// SetLogJSON switches the logger to JSON output when it supports it.
func (a *App) SetLogJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// loadCatalog reads the catalog, marking every failure as a configuration error.
func (a *App) loadCatalog(path string) (*domain.Catalog, error) {
	cat, err := a.loader.Load(path)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigInvalid, err)
	}
	return cat, nil
}

// expand builds the matrix of a catalog, optionally restricted to one shard.
func (a *App) expand(cat *domain.Catalog, shardSpec string) ([]domain.BuildTarget, error) {
	targets, err := a.expander.Expand(cat)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigInvalid, err)
	}
	if shardSpec == "" {
		return targets, nil
	}

	shard, err := matrix.ParseShard(shardSpec)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigInvalid, err)
	}
	return shard.Apply(targets), nil
}

// MatrixOptions configuration for the Matrix method.
type MatrixOptions struct {
	ConfigPath string
	Shard      string
}

// Matrix prints the expanded target listing.
func (a *App) Matrix(_ context.Context, opts MatrixOptions) error {
	cat, err := a.loadCatalog(opts.ConfigPath)
	if err != nil {
		return err
	}

	targets, err := a.expand(cat, opts.Shard)
	if err != nil {
		return err
	}
	return matrix.Write(a.stdout, targets)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Work       bool
	Output     bool
}

// Clean removes the work tree and the artifact tree based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Work {
		remove(a.zsbPath(), "work tree")
	}

	if options.Output {
		cat, err := a.loadCatalog(options.ConfigPath)
		if err != nil {
			return errors.Join(errs, err)
		}
		remove(cat.OutputDir(), "artifact tree")
	}

	return errs
}

func (a *App) zsbPath() string {
	return filepath.Join(a.root, domain.DefaultZsbPath())
}
