package west_test

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
	"go.trai.ch/zsb/internal/adapters/west"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		req  domain.BuildRequest
		want []string
	}{
		{
			name: "plain build",
			req:  domain.BuildRequest{Board: "qemu_x86", BuildDir: "/w/out", SourceDir: "/z/samples/hello_world"},
			want: []string{
				"build", "-b", "qemu_x86", "-d", "/w/out", "/z/samples/hello_world",
				"--pristine", "-DCONFIG_BUILD_OUTPUT_META=y",
			},
		},
		{
			name: "overlays, fragments and cmake-only",
			req: domain.BuildRequest{
				Board:          "qemu_x86",
				BuildDir:       "/w/out",
				SourceDir:      "/z/s",
				Args:           []string{"-DCONF_FILE=/c/s.conf", "-DFOO=1"},
				Overlays:       []string{"/o/qemu_x86.overlay", "/w/memory.overlay"},
				ExtraConfFiles: []string{"/w/memory.conf"},
				CMakeOnly:      true,
			},
			want: []string{
				"build", "-b", "qemu_x86", "-d", "/w/out", "/z/s",
				"-DCONF_FILE=/c/s.conf", "-DFOO=1",
				"-DDTC_OVERLAY_FILE=/o/qemu_x86.overlay;/w/memory.overlay",
				"-DEXTRA_CONF_FILE=/w/memory.conf",
				"--pristine", "-DCONFIG_BUILD_OUTPUT_META=y", "--cmake-only",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, west.BuildArgs(tt.req))
		})
	}
}

func TestToolchain_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	buildDir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "stale"), domain.DirPerm))

	req := domain.BuildRequest{Board: "qemu_x86", BuildDir: buildDir, SourceDir: "/z/s", WorkspaceRoot: "/z"}

	gomock.InOrder(
		executor.EXPECT().Run(gomock.Any(), domain.Command{
			Name: "west", Args: []string{"spdx", "--init", "-d", buildDir}, Dir: "/z",
		}, gomock.Any()).DoAndReturn(func(_ context.Context, _ domain.Command, out io.Writer) (int, error) {
			assert.NoDirExists(t, buildDir)
			_, _ = io.WriteString(out, "spdx init\n")
			return 0, nil
		}),
		executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.Command, out io.Writer) (int, error) {
				assert.Equal(t, west.BuildArgs(req), cmd.Args)
				_, _ = io.WriteString(out, "region `RAM' overflowed by 12 bytes\n")
				return 1, nil
			}),
		executor.EXPECT().Run(gomock.Any(), domain.Command{
			Name: "west", Args: []string{"spdx", "-d", buildDir}, Dir: "/z",
		}, gomock.Any()).Return(1, nil),
	)

	var log bytes.Buffer
	inv, err := west.NewToolchain(executor).Build(context.Background(), req, &log)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.ExitCode)
	assert.False(t, inv.Succeeded())
	assert.Equal(t, "region `RAM' overflowed by 12 bytes\n", inv.Output)
	assert.Equal(t, "spdx init\nregion `RAM' overflowed by 12 bytes\n", log.String())
}

func TestToolchain_Build_CMakeOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	req := domain.BuildRequest{Board: "qemu_x86", BuildDir: filepath.Join(t.TempDir(), "out"), CMakeOnly: true}
	executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).Times(1)

	inv, err := west.NewToolchain(executor).Build(context.Background(), req, io.Discard)
	require.NoError(t, err)
	assert.True(t, inv.Succeeded())
}

func TestToolchain_Build_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	req := domain.BuildRequest{Board: "qemu_x86", BuildDir: filepath.Join(t.TempDir(), "out")}
	executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(-1, errors.New("exec: not found"))

	_, err := west.NewToolchain(executor).Build(context.Background(), req, io.Discard)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrToolchainStartFailed.Error())
}
