package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zsb/internal/app"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports/mocks"
	"go.trai.ch/zsb/internal/engine/builder"
	"go.trai.ch/zsb/internal/engine/matrix"
	"go.trai.ch/zsb/internal/engine/recorder"
	"go.trai.ch/zsb/internal/engine/summary"
	"go.uber.org/mock/gomock"
)

const configPath = "config.yaml"

type fixture struct {
	loader    *mocks.MockCatalogLoader
	boards    *mocks.MockBoardIndex
	executor  *mocks.MockExecutor
	store     *mocks.MockResultStore
	remote    *mocks.MockRemoteResults
	toolchain *mocks.MockToolchain
	dts       *mocks.MockDeviceTree
	kconfig   *mocks.MockKconfig
	outputs   *mocks.MockArtifactExtractor
	report    *mocks.MockReportParser

	app    *app.App
	cat    *domain.Catalog
	root   string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	env    map[string]string
}

var qemuX86 = domain.BoardEntry{
	Dir:      "boards/qemu/x86",
	Name:     "qemu_x86",
	FullName: "QEMU Emulation for X86",
	Arch:     "x86",
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	f := &fixture{
		loader:    mocks.NewMockCatalogLoader(ctrl),
		boards:    mocks.NewMockBoardIndex(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		store:     mocks.NewMockResultStore(ctrl),
		remote:    mocks.NewMockRemoteResults(ctrl),
		toolchain: mocks.NewMockToolchain(ctrl),
		dts:       mocks.NewMockDeviceTree(ctrl),
		kconfig:   mocks.NewMockKconfig(ctrl),
		outputs:   mocks.NewMockArtifactExtractor(ctrl),
		report:    mocks.NewMockReportParser(ctrl),
		root:      t.TempDir(),
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		env:       map[string]string{},
	}

	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, "samples", "hello_world"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "samples", "shell"), domain.DirPerm))

	f.cat = &domain.Catalog{
		ProjectPath:    project,
		ArtifactPrefix: filepath.Join(f.root, "build") + "/",
		ArtifactNames:  domain.DefaultArtifactNames(),
		ConfigsDir:     filepath.Join(project, "configs"),
		OverlaysDir:    filepath.Join(project, "overlays"),
		ResultsURL:     "https://results.example.com",
		Signatures:     domain.DefaultSignatures(),
		NonRetryable:   domain.DefaultNonRetryable(),
		Samples: []domain.SampleSpec{
			{Key: "hello_world", Path: "samples/hello_world"},
			{Key: "shell", Path: "samples/shell", OmitInResults: true},
		},
	}
	f.loader.EXPECT().Load(configPath).Return(f.cat, nil).AnyTimes()

	f.app = app.New(
		f.loader,
		f.boards,
		f.executor,
		f.store,
		f.remote,
		logger,
		matrix.NewExpander(f.boards),
		builder.New(f.toolchain, f.dts, f.kconfig, f.outputs, logger),
		recorder.New(f.outputs, f.store, f.kconfig, f.dts, f.report),
		summary.New(f.store),
	).
		WithOutput(f.stdout, f.stderr).
		WithRoot(f.root).
		WithEnv(func(key string) (string, bool) {
			v, ok := f.env[key]
			return v, ok
		}).
		WithExecutable(func() (string, error) { return "/usr/local/bin/zsb", nil })
	return f
}

func (f *fixture) expectToolchain(code int, output string) {
	f.toolchain.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.BuildRequest, log io.Writer) (domain.Invocation, error) {
			_, _ = io.WriteString(log, output)
			return domain.Invocation{ExitCode: code, Output: output}, nil
		})
}

func TestApp_Matrix(t *testing.T) {
	f := newFixture(t)
	nrf := domain.BoardEntry{Dir: "boards/nordic/nrf5340dk", Name: "nrf5340dk/nrf5340/cpuapp", Arch: "arm"}
	f.boards.EXPECT().Scan(filepath.Join(f.cat.ProjectPath, "boards"), f.cat.Exclude).
		Return([]domain.BoardEntry{nrf, qemuX86}, nil)

	err := f.app.Matrix(context.Background(), app.MatrixOptions{ConfigPath: configPath})
	require.NoError(t, err)

	assert.Equal(t,
		"boards/nordic/nrf5340dk nrf5340dk/nrf5340/cpuapp hello_world\n"+
			"boards/nordic/nrf5340dk nrf5340dk/nrf5340/cpuapp shell\n"+
			"boards/qemu/x86 qemu_x86 hello_world\n"+
			"boards/qemu/x86 qemu_x86 shell\n",
		f.stdout.String(),
	)
}

func TestApp_Matrix_InvalidShard(t *testing.T) {
	f := newFixture(t)
	f.boards.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]domain.BoardEntry{qemuX86}, nil)

	err := f.app.Matrix(context.Background(), app.MatrixOptions{ConfigPath: configPath, Shard: "3/2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
	assert.Empty(t, f.stdout.String())
}

func TestApp_Matrix_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockCatalogLoader(ctrl)
	loader.EXPECT().Load("missing.yaml").Return(nil, domain.ErrConfigReadFailed)

	a := app.New(loader, nil, nil, nil, nil, mocks.NewMockLogger(ctrl), nil, nil, nil, nil)
	err := a.Matrix(context.Background(), app.MatrixOptions{ConfigPath: "missing.yaml"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestApp_Build_Success(t *testing.T) {
	f := newFixture(t)
	f.env[domain.EnvZephyrVersion] = "v3.7.0"

	f.boards.EXPECT().Lookup("boards/qemu/x86", "qemu_x86").Return(qemuX86, nil)
	f.expectToolchain(0, "Memory region Used Size\n")
	f.outputs.EXPECT().Locate(gomock.Any()).
		Return(domain.BuildOutputs{ELF: "zephyr.elf", DTS: "zephyr.dts", Config: ".config"})
	f.kconfig.EXPECT().Missing(".config", gomock.Any()).Return(nil, nil)
	f.report.EXPECT().MemoryUsage(gomock.Any()).Return(nil)
	f.dts.EXPECT().BoardSource(qemuX86.Dir, qemuX86.Name, qemuX86.DescriptorPath).Return("")
	f.outputs.EXPECT().Collect(gomock.Any()).Return(domain.CollectedArtifacts{}, nil)
	f.store.EXPECT().Put(filepath.Join(f.root, "build/qemu_x86/hello_world/hello_world-result.json"), gomock.Any()).
		DoAndReturn(func(_ string, r domain.BuildResult) error {
			assert.True(t, r.Success)
			assert.Equal(t, "v3.7.0", r.ZephyrSHA)
			assert.Equal(t, domain.UnknownVersion, r.ZephyrSDK)
			return nil
		})

	err := f.app.Build(context.Background(), app.BuildOptions{
		ConfigPath: configPath,
		BoardDir:   "boards/qemu/x86",
		Board:      "qemu_x86",
		Sample:     "hello_world",
		Job:        1,
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Contains(t, f.stdout.String(), "job 1 / 2 started")
	assert.Contains(t, f.stdout.String(), "job 1 / 2 finished in ")
	assert.NotContains(t, f.stdout.String(), "Memory region")
}

func TestApp_Build_VerboseMirrorsOutput(t *testing.T) {
	f := newFixture(t)

	f.boards.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(qemuX86, nil)
	f.expectToolchain(1, "fatal error: foo.h: No such file\n")
	f.outputs.EXPECT().Locate(gomock.Any()).Return(domain.BuildOutputs{})
	f.outputs.EXPECT().Collect(gomock.Any()).Return(domain.CollectedArtifacts{}, nil)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	err := f.app.Build(context.Background(), app.BuildOptions{
		ConfigPath: configPath,
		BoardDir:   "boards/qemu/x86",
		Board:      "qemu_x86",
		Sample:     "hello_world",
		Verbose:    true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBuildFailed))
	assert.Contains(t, f.stdout.String(), "fatal error: foo.h")
	assert.NotContains(t, f.stdout.String(), "started")
}

func TestApp_Build_MissingOutputs(t *testing.T) {
	f := newFixture(t)

	f.boards.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(qemuX86, nil)
	f.expectToolchain(0, "")
	f.outputs.EXPECT().Locate(gomock.Any()).Return(domain.BuildOutputs{DTS: "zephyr.dts", Config: ".config"})
	f.outputs.EXPECT().Collect(gomock.Any()).Return(domain.CollectedArtifacts{}, nil)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, r domain.BuildResult) error {
			assert.False(t, r.Success)
			return nil
		})

	err := f.app.Build(context.Background(), app.BuildOptions{
		ConfigPath: configPath,
		BoardDir:   "boards/qemu/x86",
		Board:      "qemu_x86",
		Sample:     "hello_world",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArtifactExtraction))
	assert.ErrorContains(t, err, domain.ErrMissingArtifact.Error())
}

func TestApp_Build_CollectFailure(t *testing.T) {
	f := newFixture(t)

	f.boards.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(qemuX86, nil)
	f.expectToolchain(0, "")
	f.outputs.EXPECT().Locate(gomock.Any()).
		Return(domain.BuildOutputs{ELF: "zephyr.elf", DTS: "zephyr.dts", Config: ".config"})
	f.kconfig.EXPECT().Missing(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.report.EXPECT().MemoryUsage(gomock.Any()).Return(nil)
	f.dts.EXPECT().BoardSource(gomock.Any(), gomock.Any(), gomock.Any()).Return("")
	f.outputs.EXPECT().Collect(gomock.Any()).Return(domain.CollectedArtifacts{}, domain.ErrArtifactCopyFailed)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	err := f.app.Build(context.Background(), app.BuildOptions{
		ConfigPath: configPath,
		BoardDir:   "boards/qemu/x86",
		Board:      "qemu_x86",
		Sample:     "hello_world",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArtifactExtraction))
	assert.False(t, errors.Is(err, domain.ErrBuildFailed))
}

func TestApp_Build_ConfigErrors(t *testing.T) {
	t.Run("unknown sample", func(t *testing.T) {
		f := newFixture(t)
		err := f.app.Build(context.Background(), app.BuildOptions{
			ConfigPath: configPath,
			BoardDir:   "boards/qemu/x86",
			Board:      "qemu_x86",
			Sample:     "blinky",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
		assert.ErrorContains(t, err, domain.ErrSampleNotFound.Error())
	})

	t.Run("unknown board", func(t *testing.T) {
		f := newFixture(t)
		f.boards.EXPECT().Lookup("boards/qemu/x86", "qemu_x86").Return(domain.BoardEntry{}, domain.ErrBoardMetadataNotFound)

		err := f.app.Build(context.Background(), app.BuildOptions{
			ConfigPath: configPath,
			BoardDir:   "boards/qemu/x86",
			Board:      "qemu_x86",
			Sample:     "hello_world",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
	})
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	f.boards.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]domain.BoardEntry{qemuX86}, nil)

	var seen []string
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, out io.Writer) (int, error) {
			assert.Equal(t, "/usr/local/bin/zsb", cmd.Name)
			seen = append(seen, cmd.String())
			_, _ = io.WriteString(out, "building\n")
			return 0, nil
		}).Times(2)

	err := f.app.Run(context.Background(), app.RunOptions{
		ConfigPath: configPath,
		Jobs:       1,
		OutputMode: "linear",
	})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Contains(t, seen[0], "build boards/qemu/x86 qemu_x86 hello_world -j 1 -J 2 -c config.yaml")
	assert.Contains(t, seen[1], "build boards/qemu/x86 qemu_x86 shell -j 2 -J 2 -c config.yaml")
}

func TestApp_Run_FailedTarget(t *testing.T) {
	f := newFixture(t)
	f.boards.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]domain.BoardEntry{qemuX86}, nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil).Times(2)

	err := f.app.Run(context.Background(), app.RunOptions{
		ConfigPath: configPath,
		Jobs:       2,
		OutputMode: "quiet",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBuildFailed))
	assert.ErrorContains(t, err, domain.ErrTargetsFailed.Error())
}

func TestApp_Run_ExecutableNotFound(t *testing.T) {
	f := newFixture(t)
	f.boards.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]domain.BoardEntry{qemuX86}, nil)
	f.app.WithExecutable(func() (string, error) { return "", errors.New("no /proc") })

	err := f.app.Run(context.Background(), app.RunOptions{ConfigPath: configPath})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrExecutableNotFound.Error())
}

func TestApp_Summary(t *testing.T) {
	f := newFixture(t)
	f.env[domain.EnvZephyrVersion] = "v3.7.0"

	f.store.EXPECT().List(f.cat.OutputDir()).Return([]domain.BuildResult{
		{Platform: "qemu_x86", PlatformOriginal: "qemu_x86", PlatformFullName: "QEMU x86", Arch: "x86", SampleName: "hello_world", Success: true},
		{Platform: "qemu_x86", SampleName: "shell", Success: true},
	}, nil, nil)
	f.store.EXPECT().PutCollective(filepath.Join(f.cat.OutputDir(), summary.CollectiveFile), gomock.Any()).
		DoAndReturn(func(_ string, c domain.CollectiveResult) error {
			require.Contains(t, c, "qemu_x86")
			assert.NotContains(t, c["qemu_x86"].Samples, "shell")
			return nil
		})

	err := f.app.Summary(context.Background(), app.SummaryOptions{ConfigPath: configPath})
	require.NoError(t, err)

	assert.Contains(t, f.stdout.String(), "v3.7.0")
	assert.FileExists(t, filepath.Join(f.cat.OutputDir(), summary.ResultCSVFile))
	assert.FileExists(t, filepath.Join(f.cat.OutputDir(), summary.BoardsCSVFile))
}

func TestApp_Summary_BadMatrix(t *testing.T) {
	f := newFixture(t)

	err := f.app.Summary(context.Background(), app.SummaryOptions{
		ConfigPath: configPath,
		MatrixPath: filepath.Join(f.root, "missing.txt"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
}

func TestApp_Diff(t *testing.T) {
	local := domain.CollectiveResult{
		"qemu_x86": {Samples: map[string]domain.SampleStatus{"hello_world": {Status: domain.StatusBuilt}}},
	}
	remote := domain.CollectiveResult{
		"qemu_x86": {Samples: map[string]domain.SampleStatus{"hello_world": {Status: domain.StatusNotBuilt}}},
	}

	t.Run("prints changes", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		f := newFixture(t)
		f.store.EXPECT().GetCollective(filepath.Join(f.cat.OutputDir(), summary.CollectiveFile)).Return(local, nil)
		f.remote.EXPECT().Latest(gomock.Any(), f.cat.ResultsURL).Return("v3.7.0-42", remote, nil)

		require.NoError(t, f.app.Diff(context.Background(), app.DiffOptions{ConfigPath: configPath}))
		assert.Contains(t, f.stdout.String(), "v3.7.0-42")
		assert.Contains(t, f.stdout.String(), "Status changes for sample: hello_world")
		assert.NotContains(t, f.stdout.String(), "shell")
	})

	t.Run("unreachable remote is not an error", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetCollective(gomock.Any()).Return(local, nil)
		f.remote.EXPECT().Latest(gomock.Any(), gomock.Any()).Return("", nil, domain.ErrRemoteRequestFailed)

		require.NoError(t, f.app.Diff(context.Background(), app.DiffOptions{ConfigPath: configPath}))
		assert.Contains(t, f.stdout.String(), "Failed to get remote results, quitting!")
	})
}

func TestApp_Catalog(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.Catalog(context.Background(), configPath))

	out := f.stdout.String()
	assert.Contains(t, out, `"hello_world"`)
	assert.NotContains(t, out, `"shell"`)
	assert.Contains(t, out, `"artifact_paths"`)
	assert.Contains(t, out, `build/{board_name}/{sample_name}/{sample_name}.elf"`)
	assert.Contains(t, out, `"output_dir": "`+filepath.Join(f.root, "build")+`"`)
	assert.Contains(t, out, `"non_retryable"`)
}

func TestApp_Runners(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.app.Runners(context.Background()))
		assert.JSONEq(t, `{"runner":[1,2]}`, f.stdout.String())
	})

	t.Run("from environment", func(t *testing.T) {
		f := newFixture(t)
		f.env[app.EnvMatrixRunners] = "4"
		require.NoError(t, f.app.Runners(context.Background()))
		assert.JSONEq(t, `{"runner":[1,2,3,4]}`, f.stdout.String())
	})

	t.Run("invalid", func(t *testing.T) {
		f := newFixture(t)
		f.env[app.EnvMatrixRunners] = "zero"
		err := f.app.Runners(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
	})
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	work := filepath.Join(f.root, domain.DefaultWorkPath())
	require.NoError(t, os.MkdirAll(work, domain.DirPerm))
	require.NoError(t, os.MkdirAll(f.cat.OutputDir(), domain.DirPerm))

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{ConfigPath: configPath, Work: true}))
	assert.NoDirExists(t, filepath.Join(f.root, domain.DefaultZsbPath()))
	assert.DirExists(t, f.cat.OutputDir())

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{ConfigPath: configPath, Output: true}))
	assert.NoDirExists(t, f.cat.OutputDir())
}
