package summary_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports/mocks"
	"go.trai.ch/zsb/internal/engine/summary"
	"go.uber.org/mock/gomock"
)

func testCatalog(outputDir string) *domain.Catalog {
	return &domain.Catalog{
		ArtifactPrefix: outputDir + "/",
		ArtifactNames:  domain.DefaultArtifactNames(),
		Samples: []domain.SampleSpec{
			{Key: "hello_world", Name: "Hello World", Path: "samples/hello_world"},
			{Key: "shell", Path: "samples/subsys/shell/shell_module"},
			{Key: "micropython", Path: ".", OmitInResults: true},
		},
	}
}

func testResults() []domain.BuildResult {
	return []domain.BuildResult{
		{
			Platform:         "nrf5340dk_nrf5340_cpuapp",
			PlatformOriginal: "nrf5340dk/nrf5340/cpuapp",
			PlatformFullName: "nRF5340-DK",
			Arch:             "arm",
			SampleName:       "hello_world",
			Success:          true,
			ExtendedMemory:   true,
			DTSIncludeChain:  []string{"!nrf5340_cpuapp_common", "!skeleton", "arm/armv8-m"},
		},
		{
			Platform:         "qemu_x86",
			PlatformOriginal: "qemu_x86",
			PlatformFullName: "QEMU Emulation for X86",
			Arch:             "x86",
			SampleName:       "hello_world",
			Success:          true,
			DTSIncludeChain:  []string{"x86/ia32"},
		},
		{Platform: "qemu_x86", PlatformOriginal: "qemu_x86", PlatformFullName: "QEMU Emulation for X86", Arch: "x86", SampleName: "micropython", Success: true},
		{Platform: "qemu_x86", PlatformOriginal: "qemu_x86", PlatformFullName: "QEMU Emulation for X86", Arch: "x86", SampleName: "shell"},
	}
}

func expectedMatrix() []domain.MatrixLine {
	return []domain.MatrixLine{
		{BoardDir: "zephyr/boards/nordic/nrf5340dk", Board: "nrf5340dk/nrf5340/cpuapp", Sample: "hello_world"},
		{BoardDir: "zephyr/boards/qemu/cortex_m3", Board: "qemu_cortex_m3", Sample: "shell"},
		{BoardDir: "zephyr/boards/qemu/x86", Board: "qemu_x86", Sample: "hello_world"},
		{BoardDir: "zephyr/boards/qemu/x86", Board: "qemu_x86", Sample: "micropython"},
		{BoardDir: "zephyr/boards/qemu/x86", Board: "qemu_x86", Sample: "shell"},
	}
}

var testVersions = domain.Versions{Zephyr: "v3.7.0", SDK: "0.16.8", MicroPython: domain.UnknownVersion}

func summarize(t *testing.T, store *mocks.MockResultStore, cat *domain.Catalog, expected []domain.MatrixLine) domain.Summary {
	t.Helper()
	s, err := summary.New(store).Summarize(cat, summary.Options{Expected: expected, Versions: testVersions})
	require.NoError(t, err)
	return s
}

func TestAggregator_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	store.EXPECT().List("build").Return(testResults(), nil, nil)

	s := summarize(t, store, testCatalog("build"), expectedMatrix())

	assert.Equal(t, domain.Stats{Built: 1, BuiltExt: 1, Failed: 1, Missing: 1}, s.Stats)
	assert.Equal(t, []string{"qemu_cortex_m3/shell"}, s.Missing)
	assert.Len(t, s.Results, 3)
	require.Len(t, s.BySample, 2)
	assert.Equal(t, "Hello World", s.BySample[0].Label)
	assert.Equal(t, "shell", s.BySample[1].Label)

	assert.Equal(t, domain.PlatformSummary{
		Arch: "x86",
		Name: "QEMU Emulation for X86",
		SoC:  "x86/ia32",
		Samples: map[string]domain.SampleStatus{
			"hello_world": {Status: domain.StatusBuilt},
			"shell":       {Status: domain.StatusNotBuilt},
		},
	}, s.Collective["qemu_x86"])
	assert.Equal(t, "Arm v8-m nrf5340_cpuapp_common", s.Collective["nrf5340dk_nrf5340_cpuapp"].SoC)
}

func TestAggregator_Summarize_MalformedWithoutMatrix(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	malformed := []domain.Malformed{{Path: "build/x/y/y-result.json", Err: domain.ErrResultUnmarshalFailed}}
	store.EXPECT().List("build").Return(testResults()[:1], malformed, nil)

	s := summarize(t, store, testCatalog("build"), nil)

	assert.Equal(t, 1, s.Stats.Missing)
	assert.Equal(t, malformed, s.Malformed)
	assert.Equal(t, 2, s.Stats.Total())
}

func TestAggregator_Summarize_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	store.EXPECT().List(gomock.Any()).Return(nil, nil, domain.ErrResultReadFailed)

	_, err := summary.New(store).Summarize(testCatalog("build"), summary.Options{})
	assert.ErrorIs(t, err, domain.ErrResultReadFailed)
}

func TestCollective_DuplicateNames(t *testing.T) {
	cat := testCatalog("build")
	results := []domain.BuildResult{
		{Platform: "actinius_icarus_1_0_0_nrf9160", PlatformOriginal: "actinius_icarus@1.0.0/nrf9160", PlatformFullName: "Actinius Icarus", SampleName: "hello_world"},
		{Platform: "actinius_icarus_2_0_0_nrf9160", PlatformOriginal: "actinius_icarus@2.0.0/nrf9160", PlatformFullName: "Actinius Icarus", SampleName: "hello_world"},
		{Platform: "esp32s3_devkitm", PlatformOriginal: "esp32s3_devkitm", PlatformFullName: "ESP32-S3", SampleName: "hello_world"},
		{Platform: "esp32s3_devkitm_procpu", PlatformOriginal: "esp32s3_devkitm/esp32s3/procpu", PlatformFullName: "ESP32-S3", SampleName: "hello_world"},
		{Platform: "nucleo_f429zi", PlatformOriginal: "nucleo_f429zi", PlatformFullName: "Nucleo", SampleName: "shell"},
		{Platform: "nucleo_f446re", PlatformOriginal: "nucleo_f446re", PlatformFullName: "Nucleo", SampleName: "shell"},
	}

	collective := summary.Collective(cat, results)

	assert.Equal(t, "Actinius Icarus 1.0.0", collective["actinius_icarus_1_0_0_nrf9160"].Name)
	assert.Equal(t, "Actinius Icarus 2.0.0", collective["actinius_icarus_2_0_0_nrf9160"].Name)
	assert.Equal(t, "ESP32-S3 esp32s3_devkitm", collective["esp32s3_devkitm"].Name)
	assert.Equal(t, "ESP32-S3 esp32s3_devkitm/esp32s3/procpu", collective["esp32s3_devkitm_procpu"].Name)
	assert.Equal(t, "Nucleo", collective["nucleo_f429zi"].Name, "only the first sample decides duplicates")
}

func TestSoCInfo(t *testing.T) {
	tests := []struct {
		name  string
		chain []string
		want  string
	}{
		{"empty", nil, ""},
		{"only skeleton", []string{"!skeleton"}, ""},
		{"single", []string{"x86/ia32"}, "x86/ia32"},
		{"arm", []string{"!nrf52840_qiaa", "nordic/nrf52840", "arm/armv7-m"}, "Arm v7-m nrf52840_qiaa"},
		{"arm64", []string{"!rpi_4b", "arm64/armv8-a"}, "Arm v8-a rpi_4b"},
		{"xtensa", []string{"espressif/esp32s3", "xtensa/xtensa"}, "Xtensa espressif/esp32s3"},
		{"duplicates", []string{"!board", "board", "riscv/riscv32"}, "riscv/riscv32 board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summary.SoCInfo(tt.chain))
		})
	}
}

func TestAggregator_Write(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	out := t.TempDir()
	cat := testCatalog(out)

	store.EXPECT().List(out).Return(testResults(), nil, nil)
	s := summarize(t, store, cat, expectedMatrix())

	store.EXPECT().PutCollective(filepath.Join(out, summary.CollectiveFile), s.Collective).Return(nil)
	require.NoError(t, summary.New(store).Write(cat, s))

	g := goldie.New(t)
	for _, name := range []string{summary.ResultCSVFile, summary.BoardsCSVFile} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		g.Assert(t, name, data)
	}
}

func TestMarkdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	store.EXPECT().List("build").Return(testResults(), nil, nil)
	s := summarize(t, store, testCatalog("build"), expectedMatrix())

	var buf bytes.Buffer
	require.NoError(t, summary.Markdown(&buf, s))

	g := goldie.New(t)
	g.Assert(t, "summary.md", buf.Bytes())
}
