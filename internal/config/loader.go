package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForLaunch loads configuration for a launch: defaults, global and
// local config files, environment overrides, then command flags, in
// increasing precedence.
func (l *Loader) LoadForLaunch(cmd *cobra.Command, args []string) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig(args)
	l.bindEnvironment()
	l.bindCommandFlags(cmd)

	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.JarPath = args[0]
		cfg.JarArgs = args[1:]

		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("java_version", DefaultJavaVersion)
	viper.SetDefault("verbose", DefaultVerbose)
}

// loadGlobalConfig loads global configuration from the user config
// directory.
func (l *Loader) loadGlobalConfig() {
	base, err := os.UserConfigDir()
	if err != nil {
		return
	}

	globalDir := filepath.Join(base, "jarl")

	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig loads local configuration found near the target jar
func (l *Loader) loadLocalConfig(args []string) {
	if len(args) > 0 {
		absJar, err := filepath.Abs(args[0])
		if err != nil {
			return // silently ignore, Load() will handle validation
		}

		dir := filepath.Dir(absJar)
		localPath := FindLocalConfig(dir)
		if localPath != "" {
			viper.SetConfigFile(localPath)
			_ = viper.ReadInConfig()
		}
	}
}

// bindEnvironment binds environment variable overrides
func (l *Loader) bindEnvironment() {
	_ = viper.BindEnv("java_version", "JARL_JAVA_VERSION")
	_ = viper.BindEnv("verbose", "JARL_VERBOSE")
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("java_version", cmd.Flags().Lookup("java"))
	_ = viper.BindPFlag("no_cache", cmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("no_fallback", cmd.Flags().Lookup("no-fallback"))
	_ = viper.BindPFlag("force_workarounds", cmd.Flags().Lookup("force-workarounds"))
	_ = viper.BindPFlag("keep_runtime", cmd.Flags().Lookup("keep-runtime"))
	_ = viper.BindPFlag("yes", cmd.Flags().Lookup("yes"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
}
