package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nibzard/edu-cli/internal/config"
	"github.com/nibzard/edu-cli/internal/user"
)

// doctor reports the effective config and checks both store files.
func (a *todoApp) doctor(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	w := a.out.Writer()

	fmt.Fprintln(w, "Edu Doctor")
	fmt.Fprintln(w, "==========")
	fmt.Fprintln(w)

	printConfig(w, a.cfg)

	allOK := true

	fmt.Fprintf(w, "Task file: %s\n", a.cfg.TodoFile)
	allOK = checkStore(w, a.cfg.TodoFile, func() (int, error) {
		tasks, err := a.list.List()
		return len(tasks), err
	}) && allOK
	fmt.Fprintln(w)

	fmt.Fprintf(w, "User file: %s\n", a.cfg.UserFile)
	allOK = checkStore(w, a.cfg.UserFile, func() (int, error) {
		users, err := user.Open(a.cfg.UserFile, user.WithLogger(a.logger)).List()
		return len(users), err
	}) && allOK
	fmt.Fprintln(w)

	if !allOK {
		fmt.Fprintln(w, "❌ Some checks failed")
		return exitf(errors.New("doctor checks failed"))
	}
	fmt.Fprintln(w, "✅ All checks passed")
	return nil
}

// printConfig writes every config key with its value and source.
func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Config:")
	for _, key := range config.Keys() {
		source := cfg.Sources[key]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Fprintf(w, "  %s = %s (%s)\n", key, cfg.Value(key), source)
	}
	if len(cfg.ConfigFiles) == 0 {
		fmt.Fprintln(w, "  config files: none")
	}
	for _, path := range cfg.ConfigFiles {
		fmt.Fprintf(w, "  config file: %s\n", path)
	}
	fmt.Fprintln(w)
}

// checkStore reports whether the store at path loads cleanly. A missing
// file is fine; it is created on first use.
func checkStore(w io.Writer, path string, load func() (int, error)) bool {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(w, "  ✅ Not created yet")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}

	n, err := load()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  ✅ OK (%d records)\n", n)
	return true
}
