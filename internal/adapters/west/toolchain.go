// Package west drives Zephyr builds through the west meta-tool.
package west

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
)

// Binary is the west executable looked up on PATH.
const Binary = "west"

// Toolchain implements ports.Toolchain on top of an Executor.
type Toolchain struct {
	executor ports.Executor
}

// NewToolchain creates a new Toolchain.
func NewToolchain(executor ports.Executor) *Toolchain {
	return &Toolchain{executor: executor}
}

// Build runs the SPDX init, build and SPDX steps for req in its workspace root.
// Only the build step decides the invocation's exit code; SPDX failures leave
// the SBOM files absent.
func (t *Toolchain) Build(ctx context.Context, req domain.BuildRequest, log io.Writer) (domain.Invocation, error) {
	if err := os.RemoveAll(req.BuildDir); err != nil {
		return domain.Invocation{}, zerr.With(zerr.Wrap(err, domain.ErrWorkDirFailed.Error()), "build_dir", req.BuildDir)
	}

	if !req.CMakeOnly {
		if _, err := t.run(ctx, req, spdxInitArgs(req), log); err != nil {
			return domain.Invocation{}, err
		}
	}

	var output bytes.Buffer
	code, err := t.run(ctx, req, BuildArgs(req), io.MultiWriter(log, &output))
	if err != nil {
		return domain.Invocation{}, err
	}

	if !req.CMakeOnly {
		if _, err := t.run(ctx, req, spdxArgs(req), log); err != nil {
			return domain.Invocation{}, err
		}
	}

	return domain.Invocation{ExitCode: code, Output: output.String()}, nil
}

func (t *Toolchain) run(ctx context.Context, req domain.BuildRequest, args []string, out io.Writer) (int, error) {
	cmd := domain.Command{Name: Binary, Args: args, Dir: req.WorkspaceRoot}

	code, err := t.executor.Run(ctx, cmd, out)
	if err != nil {
		return code, zerr.With(zerr.Wrap(err, domain.ErrToolchainStartFailed.Error()), "command", cmd.String())
	}
	return code, nil
}

// BuildArgs renders the west build arguments for req.
func BuildArgs(req domain.BuildRequest) []string {
	args := []string{"build", "-b", req.Board, "-d", req.BuildDir, req.SourceDir}
	args = append(args, req.Args...)

	if len(req.Overlays) > 0 {
		args = append(args, "-DDTC_OVERLAY_FILE="+strings.Join(req.Overlays, ";"))
	}
	if len(req.ExtraConfFiles) > 0 {
		args = append(args, "-DEXTRA_CONF_FILE="+strings.Join(req.ExtraConfFiles, ";"))
	}

	// SPDX generation needs the build metadata output.
	args = append(args, "--pristine", "-DCONFIG_BUILD_OUTPUT_META=y")

	if req.CMakeOnly {
		args = append(args, "--cmake-only")
	}
	return args
}

func spdxInitArgs(req domain.BuildRequest) []string {
	return []string{"spdx", "--init", "-d", req.BuildDir}
}

func spdxArgs(req domain.BuildRequest) []string {
	return []string{"spdx", "-d", req.BuildDir}
}
