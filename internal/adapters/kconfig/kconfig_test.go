package kconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zsb/internal/adapters/kconfig"
	"go.trai.ch/zsb/internal/core/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestReader_Fragment(t *testing.T) {
	path := writeFile(t, "# Shell\nCONFIG_SHELL=y\n\n   CONFIG_LOG=y  \n# CONFIG_FOO is not set\n")

	lines, ok, err := kconfig.NewReader().Fragment(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"CONFIG_SHELL=y", "CONFIG_LOG=y"}, lines)
}

func TestReader_Fragment_Missing(t *testing.T) {
	lines, ok, err := kconfig.NewReader().Fragment(filepath.Join(t.TempDir(), "none.conf"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, lines)
}

func TestReader_Missing(t *testing.T) {
	path := writeFile(t, "CONFIG_SHELL=y\nCONFIG_LOG=y\n# CONFIG_MCUBOOT is not set\n")
	r := kconfig.NewReader()

	missing, err := r.Missing(path, []string{"CONFIG_SHELL=y", "CONFIG_NET=y", "CONFIG_LOG"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CONFIG_NET=y", "CONFIG_LOG"}, missing)

	missing, err = r.Missing(filepath.Join(t.TempDir(), "none"), nil)
	require.NoError(t, err)
	assert.Empty(t, missing)

	_, err = r.Missing(filepath.Join(t.TempDir(), "none"), []string{"CONFIG_SHELL=y"})
	assert.Error(t, err)
}

func TestReader_WriteFragment(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.ExtraConfFile)
	require.NoError(t, kconfig.NewReader().WriteFragment(path, []string{"CONFIG_HEAP_MEM_POOL_SIZE=16384", "CONFIG_MAIN_STACK_SIZE=4096"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CONFIG_HEAP_MEM_POOL_SIZE=16384\nCONFIG_MAIN_STACK_SIZE=4096\n", string(data))
}
