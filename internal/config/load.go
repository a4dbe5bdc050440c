package config

import (
	"flag"
	"fmt"
	"path/filepath"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.edu/edu.toml or OS-specific config dir)
// 3. Project config file (edu.toml or .edu.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Flags for app are registered on fs before args are parsed; the caller can
// register its own flags on fs beforehand.
func Load(fs *flag.FlagSet, args []string, app App) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, app); err != nil {
		return nil, err
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// finalizeConfig resolves paths and validates values.
func finalizeConfig(cfg *Config) error {
	if cfg.DataDir == "" {
		dir, err := executableDir()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		cfg.DataDir = dir
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}

	cfg.TodoFile = resolveStorePath(cfg.DataDir, cfg.TodoFile)
	cfg.UserFile = resolveStorePath(cfg.DataDir, cfg.UserFile)

	return cfg.Validate()
}
