package config

import "flag"

// flagToKey maps flag names to config keys.
var flagToKey = map[string]string{
	"data-dir":   "data_dir",
	"todo-file":  "todo_file",
	"user-file":  "user_file",
	"log-level":  "log_level",
	"log-format": "log_format",
	"no-banner":  "banner",
}

// parseFlags defines the app's config flags on fs and parses args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, app App) error {
	if fs == nil {
		fs = flag.NewFlagSet("edu", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the store files (default: executable directory)")
	var noBanner bool
	switch app {
	case AppTodo:
		fs.StringVar(&cfg.TodoFile, "todo-file", cfg.TodoFile, "Path to the task file")
		fs.BoolVar(&noBanner, "no-banner", false, "Do not print the title banner")
	case AppUser:
		fs.StringVar(&cfg.UserFile, "user-file", cfg.UserFile, "Path to the user file")
	}
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagToKey[f.Name]; ok {
			cfg.setSource(key, SourceFlag)
		}
	})
	if noBanner {
		cfg.Banner = false
	}
	return nil
}
