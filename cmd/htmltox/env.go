package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/automaxprocs/maxprocs"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, runtime tuning, and the conversion engine.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Stdin       io.Reader
	SetMaxProcs func(logger *log.Logger)
	NewEngine   func(opts engineOptions, logger *log.Logger) Engine
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		SetMaxProcs: setMaxProcs,
		NewEngine:   newChromeEngine,
	}
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *log.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))
}
