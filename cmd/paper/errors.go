package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/zxrys/weak-accept/internal/config"
	"github.com/zxrys/weak-accept/internal/reviews"
)

// exitError pins an error to a specific exit code. A silent exitError has
// already been reported to the user.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// errNoCommand is returned when paper is invoked without a subcommand.
// Help has already been printed.
var errNoCommand = &exitError{code: ExitError, err: errors.New("no command given"), silent: true}

// usageError reports invalid command-line input.
func usageError(format string, args ...any) error {
	return &exitError{code: ExitError, err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	var apiErr *reviews.APIError
	switch {
	case errors.As(err, &apiErr), errors.Is(err, reviews.ErrNetworkError):
		return ExitAPIError
	case errors.Is(err, reviews.ErrInvalidResponse):
		return ExitDataError
	case errors.Is(err, config.ErrNotFound), errors.Is(err, config.ErrMissingBaseURL):
		return ExitConfigError
	}
	return ExitError
}

// reportError prints err to w and returns the exit code for it.
func reportError(w io.Writer, err error) int {
	var ee *exitError
	if errors.As(err, &ee) && ee.silent {
		return ee.code
	}

	fmt.Fprintf(w, "Error: %s\n", err)

	if reviews.IsAuthError(err) {
		fmt.Fprintln(w, "Hint: check apiKey in your config file or the PAPER_API_KEY environment variable.")
	}
	return exitCode(err)
}
