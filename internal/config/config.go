package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultJavaVersion = 21
	DefaultVerbose     = false
)

// Holds the launch options for jarl
type Config struct {
	// Requested Java major version
	JavaVersion int

	// Bypass the runtime archive cache entirely
	NoCache bool

	// Give up after the requested version instead of trying alternates
	NoFallback bool

	// Skip the standard execution attempt and start at the first
	// workaround flag set
	ForceWorkarounds bool

	// Keep the materialized runtime directory after exit
	KeepRuntime bool

	// Skip interactive confirmation prompts
	Yes bool

	// Print intended actions without performing any
	DryRun bool

	// Enable verbose diagnostic output
	Verbose bool

	// Target jar, resolved to an absolute path
	JarPath string

	// Arguments passed through to the jar
	JarArgs []string
}

func Load() (*Config, error) {
	cfg := &Config{
		JavaVersion:      viper.GetInt("java_version"),
		NoCache:          viper.GetBool("no_cache"),
		NoFallback:       viper.GetBool("no_fallback"),
		ForceWorkarounds: viper.GetBool("force_workarounds"),
		KeepRuntime:      viper.GetBool("keep_runtime"),
		Yes:              viper.GetBool("yes"),
		DryRun:           viper.GetBool("dry_run"),
		Verbose:          viper.GetBool("verbose"),
	}

	// The default version comes from the loader's viper defaults; an
	// explicit zero is an argument error, not a request for the default.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JavaVersion <= 0 {
		return fmt.Errorf("invalid java version: %d", c.JavaVersion)
	}

	if c.JarPath != "" {
		abs, err := filepath.Abs(c.JarPath)
		if err != nil {
			return fmt.Errorf("invalid jar path: %v", err)
		}

		c.JarPath = abs
	}

	return nil
}
