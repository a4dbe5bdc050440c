// Package cmd implements the command-line programs for edu.
package cmd

import (
	"errors"
	"fmt"
	"io"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errMissingArgument reports a command run without its task name.
var errMissingArgument = errors.New("missing argument")

// ExitError carries a process exit code for a failure that has already been
// reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitf wraps err as an ExitError with status 1.
func exitf(err error) *ExitError {
	return &ExitError{Code: 1, Err: err}
}

// versionCommand prints version information.
func versionCommand(w io.Writer, program string) error {
	fmt.Fprintf(w, "%s version %s\n", program, Version)
	return nil
}
