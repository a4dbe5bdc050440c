package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/edu-cli/internal/config"
	"github.com/nibzard/edu-cli/internal/logging"
	"github.com/nibzard/edu-cli/internal/ui"
	"github.com/nibzard/edu-cli/internal/user"
)

const userUsageLine = "Usage: edu-user <firstname> <lastname> <email>"

// RunUser executes the edu-user CLI.
func RunUser(ctx context.Context, args []string) error {
	return runUser(ctx, args, os.Stdout, os.Stderr)
}

func runUser(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("edu-user", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUserUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args, config.AppUser)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUserUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout, "edu-user")
	}

	out := ui.NewPrinter(stdout)
	positional := fs.Args()
	if len(positional) != 3 {
		out.Println(userUsageLine)
		return exitf(fmt.Errorf("expected 3 arguments, got %d", len(positional)))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat)
	registry := user.Open(cfg.UserFile, user.WithLogger(logger))

	u, err := registry.Register(positional[0], positional[1], positional[2])
	var invalid *user.ValidationError
	switch {
	case errors.As(err, &invalid):
		if invalid.Has("email") {
			out.Failure("Invalid email")
		} else {
			out.Failure("Firstname and lastname must be at least %d characters long", user.MinNameLength)
		}
		return exitf(err)
	case err != nil:
		return err
	}

	logger.Debug("user registered", "id", u.ID, "file", registry.Path())
	return nil
}

// printUserUsage prints the edu-user usage message.
func printUserUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, userUsageLine)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
