package main

import (
	"context"
	"errors"
	"strings"

	htmltox "github.com/alnah/go-htmltox"
	"github.com/alnah/go-htmltox/internal/config"
	"github.com/alnah/go-htmltox/internal/hints"
)

// errorHint returns a suggestion to print after err, or "".
func errorHint(err error, opts engineOptions, jobName string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, htmltox.ErrInitialize), errors.Is(err, htmltox.ErrBrowserConnect):
		return hints.ForBrowserConnect(opts.noSandbox, opts.browserBin)
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(err.Error(), context.DeadlineExceeded.Error()):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrJobNotFound):
		return hints.ForJobNotFound(jobName)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
