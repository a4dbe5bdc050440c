package config

import "os"

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	setEnv := func(key, name string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
			cfg.setSource(key, SourceEnv)
		}
	}

	setEnv("data_dir", "EDU_DATA_DIR", &cfg.DataDir)
	setEnv("todo_file", "EDU_TODO_FILE", &cfg.TodoFile)
	setEnv("user_file", "EDU_USER_FILE", &cfg.UserFile)
	setEnv("log_level", "EDU_LOG_LEVEL", &cfg.LogLevel)
	setEnv("log_format", "EDU_LOG_FORMAT", &cfg.LogFormat)

	if v := os.Getenv("EDU_BANNER"); v != "" {
		cfg.Banner = boolFromString(v)
		cfg.setSource("banner", SourceEnv)
	}
}
