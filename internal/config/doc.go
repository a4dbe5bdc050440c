// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.edu/edu.toml or OS-specific config directory)
// 3. Project config file (edu.toml or .edu.toml in the current directory)
// 4. Environment variables (EDU_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.edu/edu.toml (preferred)
// - Windows: %APPDATA%\edu\edu.toml
// - macOS: ~/Library/Application Support/edu/edu.toml
// - Linux/BSD: $XDG_CONFIG_HOME/edu/edu.toml or ~/.config/edu/edu.toml
//
// Store files are resolved against data_dir, which defaults to the directory
// holding the running executable.
package config
