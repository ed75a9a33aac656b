package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindLocalConfig(t *testing.T) {
	// Create a temporary directory structure
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "subdir")
	err := os.Mkdir(subDir, 0o755)
	assert.NoError(t, err)

	// Create config file
	configYML := filepath.Join(subDir, ".jarl.yml")
	err = os.WriteFile(configYML, []byte("java_version: 17"), 0o644)
	assert.NoError(t, err)

	// Test finding in subdir
	result := FindLocalConfig(subDir)
	assert.Equal(t, configYML, result)

	// Test finding in parent
	result = FindLocalConfig(filepath.Join(subDir, "deep"))
	assert.Equal(t, configYML, result)

	// Test not found
	result = FindLocalConfig(tempDir)
	assert.Equal(t, "", result)
}

func TestFindLocalConfig_PrefersYml(t *testing.T) {
	tempDir := t.TempDir()

	yml := filepath.Join(tempDir, ".jarl.yml")
	toml := filepath.Join(tempDir, ".jarl.toml")
	assert.NoError(t, os.WriteFile(yml, []byte(""), 0o644))
	assert.NoError(t, os.WriteFile(toml, []byte(""), 0o644))

	assert.Equal(t, yml, FindLocalConfig(tempDir))
}
