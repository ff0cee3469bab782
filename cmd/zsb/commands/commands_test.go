package commands_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zsb/cmd/zsb/commands"
	"go.trai.ch/zsb/internal/app"
	"go.trai.ch/zsb/internal/build"
)

type mockApp struct {
	build   *app.BuildOptions
	run     *app.RunOptions
	matrix  *app.MatrixOptions
	summary *app.SummaryOptions
	diff    *app.DiffOptions
	clean   *app.CleanOptions
	catalog string
	runners bool
	logJSON bool
	err     error
}

func (m *mockApp) Build(_ context.Context, opts app.BuildOptions) error {
	m.build = &opts
	return m.err
}

func (m *mockApp) Run(_ context.Context, opts app.RunOptions) error {
	m.run = &opts
	return m.err
}

func (m *mockApp) Matrix(_ context.Context, opts app.MatrixOptions) error {
	m.matrix = &opts
	return m.err
}

func (m *mockApp) Summary(_ context.Context, opts app.SummaryOptions) error {
	m.summary = &opts
	return m.err
}

func (m *mockApp) Diff(_ context.Context, opts app.DiffOptions) error {
	m.diff = &opts
	return m.err
}

func (m *mockApp) Catalog(_ context.Context, configPath string) error {
	m.catalog = configPath
	return m.err
}

func (m *mockApp) Runners(_ context.Context) error {
	m.runners = true
	return m.err
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	m.clean = &opts
	return m.err
}

func (m *mockApp) SetLogJSON(enable bool) {
	m.logJSON = enable
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires arguments and flags", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "build", "boards/qemu/x86", "qemu_x86", "hello_world", "-j", "3", "-J", "10", "-v")
		require.NoError(t, err)

		require.NotNil(t, mock.build)
		assert.Equal(t, app.BuildOptions{
			ConfigPath: commands.DefaultConfigPath,
			BoardDir:   "boards/qemu/x86",
			Board:      "qemu_x86",
			Sample:     "hello_world",
			Job:        3,
			Jobs:       10,
			Verbose:    true,
		}, *mock.build)
	})

	t.Run("requires three arguments", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "build", "qemu_x86")
		require.Error(t, err)
		assert.Nil(t, mock.build)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, mock, "build", "d", "b", "s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Run(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "run")
		require.NoError(t, err)

		require.NotNil(t, mock.run)
		assert.Equal(t, runtime.NumCPU(), mock.run.Jobs)
		assert.Equal(t, "auto", mock.run.OutputMode)
		assert.False(t, mock.run.FailFast)
	})

	t.Run("wires flags correctly", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, mock, "run", "--jobs", "4", "--fail-fast", "--shard", "2/3", "--ci", "-c", "zsb.yaml")
		require.NoError(t, err)

		assert.Equal(t, app.RunOptions{
			ConfigPath: "zsb.yaml",
			Jobs:       4,
			FailFast:   true,
			Shard:      "2/3",
			OutputMode: "linear",
		}, *mock.run)
	})
}

func TestCommands_Matrix(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "matrix", "--shard", "1/2", "--config", "zsb.yaml")
	require.NoError(t, err)
	assert.Equal(t, app.MatrixOptions{ConfigPath: "zsb.yaml", Shard: "1/2"}, *mock.matrix)
}

func TestCommands_Reports(t *testing.T) {
	mock := &mockApp{}

	_, err := execute(t, mock, "summary", "--matrix", "matrix.txt")
	require.NoError(t, err)
	assert.Equal(t, app.SummaryOptions{ConfigPath: commands.DefaultConfigPath, MatrixPath: "matrix.txt"}, *mock.summary)

	_, err = execute(t, mock, "diff")
	require.NoError(t, err)
	assert.Equal(t, app.DiffOptions{ConfigPath: commands.DefaultConfigPath}, *mock.diff)

	_, err = execute(t, mock, "catalog", "-c", "other.yaml")
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", mock.catalog)

	_, err = execute(t, mock, "runners")
	require.NoError(t, err)
	assert.True(t, mock.runners)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default cleans work tree", args: nil, want: app.CleanOptions{Work: true}},
		{name: "output only", args: []string{"--output"}, want: app.CleanOptions{Output: true}},
		{name: "all", args: []string{"--all"}, want: app.CleanOptions{Work: true, Output: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{}
			_, err := execute(t, mock, append([]string{"clean"}, tt.args...)...)
			require.NoError(t, err)

			tt.want.ConfigPath = commands.DefaultConfigPath
			assert.Equal(t, tt.want, *mock.clean)
		})
	}
}

func TestCommands_LogJSON(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "--log-json", "runners")
	require.NoError(t, err)
	assert.True(t, mock.logJSON)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "zsb version "+build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)
}
