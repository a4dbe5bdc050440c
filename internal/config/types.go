package config

import (
	"fmt"
	"strings"
)

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// App selects which program's flags Load registers.
type App int

const (
	// AppTodo is the task list program.
	AppTodo App = iota
	// AppUser is the user registration program.
	AppUser
)

// Default values.
const (
	DefaultTodoFile  = "tasks.json"
	DefaultUserFile  = "db.json"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultBanner    = true
)

// Config holds the configuration shared by both programs.
type Config struct {
	// DataDir is the directory relative store files resolve against.
	DataDir string `toml:"data_dir"`

	// Store files
	TodoFile string `toml:"todo_file"`
	UserFile string `toml:"user_file"`

	// Logging configuration
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Banner prints the title banner before todo commands.
	Banner bool `toml:"banner"`

	// ConfigFiles lists the config files that were applied, lowest
	// precedence first.
	ConfigFiles []string `toml:"-"`

	// Sources maps config keys to where their value came from.
	Sources map[string]Source `toml:"-"`
}

// Keys returns the configurable keys in display order.
func Keys() []string {
	return []string{
		"data_dir",
		"todo_file",
		"user_file",
		"log_level",
		"log_format",
		"banner",
	}
}

// Value returns the string form of a config key's value.
func (c *Config) Value(key string) string {
	switch key {
	case "data_dir":
		return c.DataDir
	case "todo_file":
		return c.TodoFile
	case "user_file":
		return c.UserFile
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "banner":
		return fmt.Sprintf("%t", c.Banner)
	}
	return ""
}

// Validate checks values that have a fixed set of options.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug|info|warn|error)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q (expected text|json|logfmt)", c.LogFormat)
	}
	if strings.TrimSpace(c.TodoFile) == "" {
		return fmt.Errorf("todo_file is empty")
	}
	if strings.TrimSpace(c.UserFile) == "" {
		return fmt.Errorf("user_file is empty")
	}
	return nil
}

func (c *Config) setSource(key string, source Source) {
	if c.Sources == nil {
		c.Sources = make(map[string]Source)
	}
	c.Sources[key] = source
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
