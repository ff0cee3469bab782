package boards_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zsb/internal/adapters/boards"
	"go.trai.ch/zsb/internal/core/domain"
)

func writeBoard(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func newBoardTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "boards")

	writeBoard(t, root, "qemu/x86/qemu_x86.yaml", "identifier: qemu_x86\nname: QEMU Emulation for X86\narch: x86\n")
	writeBoard(t, root, "qemu/x86/qemu_x86_64.yaml", "identifier: qemu_x86_64\nname: QEMU Emulation for X86_64\narch: x86\n")
	writeBoard(t, root, "nordic/nrf5340dk/board.yaml",
		"name: Nordic nRF5340 DK\narch: arm\nvariants:\n  nrf5340dk/nrf5340/cpunet: {}\n  nrf5340dk/nrf5340/cpuapp: {}\n")
	writeBoard(t, root, "native/native_sim/native_sim.yaml", "identifier: native_sim\nname: Native\narch: posix\n")
	writeBoard(t, root, "snps/nsim/nsim_em.yaml", "identifier: nsim/nsim_em\nname: nSIM\narch: arc\n")
	writeBoard(t, root, "qemu/x86/dts/bindings/vendor.yaml", "identifier: bogus\narch: x86\n")
	writeBoard(t, root, "qemu/x86/support/openocd.yaml", "identifier: bogus_support\narch: x86\n")
	writeBoard(t, root, "qemu/x86/twister.yaml", "unrelated: true\n")
	writeBoard(t, root, "qemu/x86/broken.yaml", "identifier: [\n")
	// Duplicate identifier, lexically after qemu/x86.
	writeBoard(t, root, "qemu/x86_dup/qemu_x86.yaml", "identifier: qemu_x86\nname: Duplicate\narch: x86\n")

	return root
}

func TestIndex_Scan(t *testing.T) {
	root := newBoardTree(t)

	entries, err := boards.NewIndex().Scan(root, domain.Exclusions{
		Archs:   domain.DefaultExcludedArchs(),
		Targets: domain.DefaultExcludedTargets(),
	})
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"nrf5340dk/nrf5340/cpuapp",
		"nrf5340dk/nrf5340/cpunet",
		"qemu_x86",
		"qemu_x86_64",
	}, names)

	qemu := entries[2]
	assert.Equal(t, filepath.Join(root, "qemu", "x86"), qemu.Dir)
	assert.Equal(t, "x86", qemu.Arch)
	assert.Equal(t, "QEMU Emulation for X86", qemu.FullName)
	assert.Equal(t, filepath.Join(root, "qemu", "x86", "qemu_x86.yaml"), qemu.DescriptorPath)
}

func TestIndex_Scan_NoExclusions(t *testing.T) {
	entries, err := boards.NewIndex().Scan(newBoardTree(t), domain.Exclusions{})
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestIndex_Scan_MissingRoot(t *testing.T) {
	_, err := boards.NewIndex().Scan(filepath.Join(t.TempDir(), "nope"), domain.Exclusions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBoardsDirNotFound.Error())
}

func TestIndex_Lookup(t *testing.T) {
	root := newBoardTree(t)
	idx := boards.NewIndex()

	t.Run("identifier", func(t *testing.T) {
		e, err := idx.Lookup(filepath.Join(root, "qemu", "x86"), "qemu_x86")
		require.NoError(t, err)
		assert.Equal(t, "x86", e.Arch)
		assert.Equal(t, "QEMU Emulation for X86", e.FullName)
	})

	t.Run("variant", func(t *testing.T) {
		e, err := idx.Lookup(filepath.Join(root, "nordic", "nrf5340dk"), "nrf5340dk/nrf5340/cpuapp")
		require.NoError(t, err)
		assert.Equal(t, "arm", e.Arch)
		assert.Equal(t, "nrf5340dk_nrf5340_cpuapp", e.ArtifactName())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := idx.Lookup(filepath.Join(root, "qemu", "x86"), "qemu_riscv32")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrBoardMetadataNotFound.Error())
	})

	t.Run("missing name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "b")
		writeBoard(t, dir, "b.yaml", "identifier: b\narch: arm\n")

		_, err := idx.Lookup(dir, "b")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrBoardMetadataInvalid.Error())
	})
}
