package main

import (
	"context"
	"errors"
	"os"

	htmltox "github.com/alnah/go-htmltox"
	"github.com/alnah/go-htmltox/internal/config"
	"github.com/alnah/go-htmltox/internal/markup"
	"github.com/alnah/go-htmltox/internal/yamlutil"
)

// Exit codes for the htmltox CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0   // Successful conversion
	ExitGeneral = 1   // General/unexpected error
	ExitUsage   = 2   // Invalid flags, job file, or validation
	ExitIO      = 3   // File not found, permission denied
	ExitBrowser = 4   // Browser/Chrome errors
	ExitSignal  = 130 // Interrupted (128 + SIGINT)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitSignal
	}

	// Browser errors (exit 4)
	if errors.Is(err, htmltox.ErrBrowserConnect) ||
		errors.Is(err, htmltox.ErrPageCreate) ||
		errors.Is(err, htmltox.ErrPageLoad) ||
		errors.Is(err, htmltox.ErrRender) ||
		errors.Is(err, htmltox.ErrInitialize) ||
		errors.Is(err, ErrConversionFailed) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrJobNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnsupportedInput) ||
		errors.Is(err, config.ErrEmptyJobName) ||
		errors.Is(err, config.ErrJobParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrMissingFields) ||
		errors.Is(err, yamlutil.ErrTooLarge) ||
		errors.Is(err, markup.ErrConversion) ||
		errors.Is(err, htmltox.ErrContentEmpty) ||
		errors.Is(err, htmltox.ErrContentTooLarge) ||
		errors.Is(err, htmltox.ErrInvalidArgument) {
		return ExitUsage
	}

	return ExitGeneral
}
