package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyOS(t *testing.T) {
	tests := []struct {
		goos     string
		expected string
	}{
		{"linux", "linux"},
		{"darwin", "mac"},
		{"windows", "windows"},
	}

	for _, test := range tests {
		result, err := IdentifyOS(test.goos)
		require.NoError(t, err)
		assert.Equal(t, test.expected, result, "IdentifyOS(%q)", test.goos)
	}
}

func TestIdentifyOS_Unsupported(t *testing.T) {
	for _, goos := range []string{"plan9", "js", ""} {
		_, err := IdentifyOS(goos)
		assert.ErrorIs(t, err, ErrUnsupportedPlatform, "IdentifyOS(%q)", goos)
	}
}

func TestIdentifyArch(t *testing.T) {
	tests := []struct {
		goarch   string
		expected string
	}{
		{"amd64", "x64"},
		{"arm64", "aarch64"},
		{"arm", "arm"},
		{"386", "x32"},
	}

	for _, test := range tests {
		result, err := IdentifyArch(test.goarch)
		require.NoError(t, err)
		assert.Equal(t, test.expected, result, "IdentifyArch(%q)", test.goarch)
	}
}

func TestIdentifyArch_Unsupported(t *testing.T) {
	for _, goarch := range []string{"mips", "riscv64", ""} {
		_, err := IdentifyArch(goarch)
		assert.ErrorIs(t, err, ErrUnsupportedPlatform, "IdentifyArch(%q)", goarch)
	}
}

func TestIdentify_CurrentHost(t *testing.T) {
	// The test host itself must be a supported platform.
	p, err := Identify()
	require.NoError(t, err)
	assert.Contains(t, []string{"linux", "mac", "windows"}, p.OS)
	assert.Contains(t, []string{"x64", "aarch64", "arm", "x32"}, p.Arch)
}
