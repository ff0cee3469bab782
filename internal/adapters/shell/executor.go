// Package shell provides a PTY-backed executor for external processes.
package shell

import (
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Run starts cmd in a PTY, copies its combined output to out and waits for it.
// A non-zero exit is reported through the exit code, not the error; the error is
// set only when the process could not be started or was cancelled.
func (e *Executor) Run(ctx context.Context, cmd domain.Command, out io.Writer) (int, error) {
	if cmd.Name == "" {
		return 0, nil
	}
	if out == nil {
		out = io.Discard
	}

	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(cmd.Name) && !strings.Contains(cmd.Name, string(filepath.Separator)) {
		if lp, err := lookPath(cmd.Name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // commands are built by zsb
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = env

	ptmx, err := pty.Start(c)
	if err != nil {
		return -1, zerr.With(zerr.Wrap(err, "failed to start pty"), "command", cmd.String())
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading from the master fails with EIO once the child side closes.
		_, _ = io.Copy(&newlineWriter{w: out}, ptmx)
	}()

	waitErr := c.Wait()
	<-ioDone
	_ = ptmx.Close()

	if waitErr == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return -1, zerr.With(zerr.Wrap(ctx.Err(), "command cancelled"), "command", cmd.String())
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, zerr.With(zerr.Wrap(waitErr, "command failed"), "command", cmd.String())
}

// newlineWriter turns the PTY's CRLF line endings back into LF.
type newlineWriter struct {
	w       io.Writer
	pending bool
}

func (n *newlineWriter) Write(p []byte) (int, error) {
	buf := make([]byte, 0, len(p)+1)
	for _, b := range p {
		if n.pending {
			n.pending = false
			if b != '\n' {
				buf = append(buf, '\r')
			}
		}
		if b == '\r' {
			n.pending = true
			continue
		}
		buf = append(buf, b)
	}
	if _, err := n.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// resolveEnvironment inherits sysEnv and layers the command's own entries on top.
// TERM is forced to dumb so toolchain output stays free of escape sequences.
func resolveEnvironment(sysEnv, cmdEnv []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(cmdEnv)+1)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	envMap["TERM"] = "dumb"

	for _, entry := range cmdEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	keys := slices.Sorted(maps.Keys(envMap))
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the PATH of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
