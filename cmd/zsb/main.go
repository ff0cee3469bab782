// Package main is the entry point for the zsb build driver.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/cmd/zsb/commands"
	"go.trai.ch/zsb/internal/app"
	"go.trai.ch/zsb/internal/core/domain"
	_ "go.trai.ch/zsb/internal/wiring"
)

// Exit codes.
const (
	exitOK                 = 0
	exitBuildFailed        = 1
	exitConfigInvalid      = 2
	exitArtifactExtraction = 3
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitBuildFailed
	}
	defer cleanup()

	components.App.WithOutput(stdout, stderr)
	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	return exitCode(cli.Execute(ctx), components)
}

// exitCode maps an error class to the process exit status. Build failures
// have already been reported by the build itself.
func exitCode(err error, components *app.Components) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrArtifactExtraction):
		components.Logger.Error(err)
		return exitArtifactExtraction
	case errors.Is(err, domain.ErrConfigInvalid):
		components.Logger.Error(err)
		return exitConfigInvalid
	case errors.Is(err, domain.ErrBuildFailed):
		return exitBuildFailed
	default:
		components.Logger.Error(err)
		return exitBuildFailed
	}
}
