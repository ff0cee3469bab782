package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zsb/internal/core/domain"
)

func TestBuildResult_RoundTrip(t *testing.T) {
	configs := "CONFIG_SHELL=y\nCONFIG_LOG=y"
	tests := []struct {
		name   string
		result domain.BuildResult
	}{
		{
			name: "successful build",
			result: domain.BuildResult{
				Platform:         "qemu_x86",
				PlatformOriginal: "qemu_x86",
				PlatformFullName: "QEMU Emulation for X86",
				Arch:             "x86",
				SampleName:       "hello_world",
				Success:          true,
				Configs:          &configs,
				ZephyrSHA:        "v3.7.0-1234-gdeadbeef",
				ZephyrSDK:        "0.16.8",
				BoardDir:         "boards/qemu/x86",
				Memory: map[string]domain.MemoryRegion{
					"FLASH": {Used: 1024, Total: 65536},
					"RAM":   {Used: 1 << 40, Total: 1<<40 + 1},
				},
				DTSIncludeChain: []string{"!qemu_x86", "x86/ia32"},
			},
		},
		{
			name: "failed build",
			result: domain.BuildResult{
				Platform:   "qemu_x86",
				SampleName: "hello_world",
				ZephyrSHA:  domain.UnknownVersion,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)

			var got domain.BuildResult
			require.NoError(t, json.Unmarshal(data, &got))

			if diff := cmp.Diff(tt.result, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildResult_EveryFieldSerialized(t *testing.T) {
	data, err := json.Marshal(domain.BuildResult{})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{
		"platform", "platform_full_name", "arch", "sample_name", "success",
		"extended_memory", "configs", "zephyr_sha", "zephyr_sdk", "board_dir",
		"memory", "dts_include_chain",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["configs"])
	assert.Nil(t, fields["memory"])
	assert.Nil(t, fields["dts_include_chain"])
}

func TestBuildResult_Normalize(t *testing.T) {
	r := domain.BuildResult{
		Success:         false,
		Memory:          map[string]domain.MemoryRegion{"FLASH": {Used: 1, Total: 2}},
		DTSIncludeChain: []string{"x86/ia32"},
	}.Normalize()

	assert.Nil(t, r.Memory)
	assert.Nil(t, r.DTSIncludeChain)

	ok := domain.BuildResult{Success: true, DTSIncludeChain: []string{"a"}}.Normalize()
	assert.Equal(t, []string{"a"}, ok.DTSIncludeChain)
}

func TestBuildResult_Status(t *testing.T) {
	assert.Equal(t, domain.StatusBuilt, domain.BuildResult{Success: true}.Status())
	assert.Equal(t, domain.StatusNotBuilt, domain.BuildResult{}.Status())
	assert.Equal(t, "qemu_x86/hello_world", domain.BuildResult{Platform: "qemu_x86", SampleName: "hello_world"}.Key())
}

func TestVersionsFromEnv(t *testing.T) {
	env := map[string]string{
		domain.EnvZephyrVersion: "v3.7.0",
		domain.EnvSDKVersion:    "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	assert.Equal(t, domain.Versions{
		Zephyr:      "v3.7.0",
		SDK:         domain.UnknownVersion,
		MicroPython: domain.UnknownVersion,
	}, domain.VersionsFromEnv(lookup))
}
