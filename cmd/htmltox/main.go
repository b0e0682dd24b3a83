package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-htmltox/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain runs the command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, inputs, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "htmltox %s\n", Version)
		return ExitSuccess
	}

	var job *config.Job
	if flags.common.config != "" {
		if job, err = config.LoadJob(flags.common.config); err != nil {
			fmt.Fprintf(env.Stderr, "%v%s\n", err, errorHint(err, engineOptions{}, flags.common.config))
			return exitCodeFor(err)
		}
	}

	logger := newLogger(env.Stderr, flags.common, job)
	env.SetMaxProcs(logger)

	opts, err := resolveEngineOptions(flags.engine, job)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	tasks, err := planTasks(ctx, inputs, flags, job, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	if flags.printJob {
		var engineCfg config.EngineConfig
		if job != nil {
			engineCfg = job.Engine
		}
		if err := printJobs(env.Stdout, tasks, engineCfg); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	logger.Debug("starting conversion", "documents", len(tasks), "timeout", durationOrDefault(opts.timeout))
	engine := env.NewEngine(opts, logger)
	results := convertAll(ctx, tasks, engine, logger, env)
	if err := engine.Close(); err != nil {
		logger.Warn("closing engine", "err", err)
	}

	hint := func(err error) string { return errorHint(err, opts, flags.common.config) }
	if failed := printResults(results, flags.common.quiet, flags.common.verbose, hint, env); failed > 0 {
		return exitCodeFor(firstError(results))
	}
	return ExitSuccess
}

// resolveEngineOptions merges engine flags over the job's engine section.
func resolveEngineOptions(f engineFlags, job *config.Job) (engineOptions, error) {
	var cfg config.EngineConfig
	if job != nil {
		cfg = job.Engine
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if f.browserBin != "" {
		cfg.BrowserBin = f.browserBin
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return engineOptions{}, fmt.Errorf("%w: %w", ErrInvalidFlag, err)
	}
	return engineOptions{
		timeout:    timeout,
		browserBin: cfg.BrowserBin,
		noSandbox:  cfg.NoSandbox || f.noSandbox,
		graphics:   cfg.Graphics,
	}, nil
}

// durationOrDefault formats d for logs, naming the engine default for zero.
func durationOrDefault(d time.Duration) string {
	if d == 0 {
		return "default"
	}
	return d.String()
}
