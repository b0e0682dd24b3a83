package main

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-htmltox/internal/config"
)

// newLogger creates the run logger. The job file sets the base level;
// --verbose lowers it to debug and --quiet raises it to error.
func newLogger(w io.Writer, f commonFlags, job *config.Job) *log.Logger {
	level := log.InfoLevel
	if job != nil {
		// Already validated by LoadJob.
		level, _ = job.Log.ParsedLevel()
	}
	switch {
	case f.verbose:
		level = log.DebugLevel
	case f.quiet:
		level = log.ErrorLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
