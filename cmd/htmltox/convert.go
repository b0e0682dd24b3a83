package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	htmltox "github.com/alnah/go-htmltox"
	"github.com/alnah/go-htmltox/internal/config"
	"github.com/alnah/go-htmltox/internal/dateutil"
	"github.com/alnah/go-htmltox/internal/fileutil"
	"github.com/alnah/go-htmltox/internal/yamlutil"
)

// Sentinel errors for conversion output.
var (
	ErrWriteOutput      = errors.New("failed to write output")
	ErrConversionFailed = errors.New("engine reported conversion failure")
)

// stdoutLabel is shown in results for output written to standard output.
const stdoutLabel = "<stdout>"

// task is one document to convert and where its output goes.
type task struct {
	label  string
	output string // empty writes to stdout
	doc    htmltox.Document
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Input    string
	Output   string
	Err      error
	Duration time.Duration
}

// planTasks turns the positional inputs, flags and job into documents.
// Without inputs the job's own document is converted.
func planTasks(ctx context.Context, args []string, flags *cliFlags, job *config.Job, env *Environment) ([]task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if flags.document.date != "" {
		date, err := dateutil.Resolve(flags.document.date, env.Now())
		if err != nil {
			return nil, fmt.Errorf("%w: --date: %w", ErrInvalidFlag, err)
		}
		resolved := *flags
		resolved.document.date = date
		flags = &resolved
	}

	format := outputFormat(flags, job)
	ext := extension(format)

	if len(args) == 0 {
		if job == nil {
			return nil, ErrNoInput
		}
		return []task{{
			label:  flags.common.config,
			output: jobOutputPath(flags, job, ext),
			doc:    jobDocument(job, flags),
		}}, nil
	}

	loader := &sourceLoader{stdin: env.Stdin}
	sources := make([]source, 0, len(args))
	for _, arg := range args {
		src, err := loader.load(ctx, arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	if format != formatPDF {
		tmpl := imageTemplate(job)
		tasks := make([]task, 0, len(sources))
		for i := range sources {
			src := &sources[i]
			tasks = append(tasks, task{
				label:  src.arg,
				output: resolveOutputPath(*src, flags.output.path, len(sources) > 1, ext),
				doc:    &htmltox.ImageDocument{Global: imageGlobal(tmpl, src, flags.image, format)},
			})
		}
		return tasks, nil
	}

	globalTmpl, objectTmpl := pdfTemplates(job)
	if flags.output.merge {
		doc := &htmltox.PDFDocument{Global: pdfGlobal(globalTmpl, flags)}
		labels := make([]string, 0, len(sources))
		for i := range sources {
			doc.Objects = append(doc.Objects, pdfObject(objectTmpl, &sources[i], flags.document))
			labels = append(labels, sources[i].arg)
		}
		return []task{{
			label:  strings.Join(labels, " + "),
			output: resolveOutputPath(sources[0], flags.output.path, false, ext),
			doc:    doc,
		}}, nil
	}

	tasks := make([]task, 0, len(sources))
	for i := range sources {
		src := &sources[i]
		doc := htmltox.NewPDFDocument(pdfObject(objectTmpl, src, flags.document))
		doc.Global = pdfGlobal(globalTmpl, flags)
		tasks = append(tasks, task{
			label:  src.arg,
			output: resolveOutputPath(*src, flags.output.path, len(sources) > 1, ext),
			doc:    doc,
		})
	}
	return tasks, nil
}

// jobOutputPath picks the output of a job converted on its own: --output,
// then the job's out setting, then the job file name.
func jobOutputPath(flags *cliFlags, job *config.Job, ext string) string {
	base := strings.TrimSuffix(filepath.Base(flags.common.config), filepath.Ext(flags.common.config))
	switch {
	case flags.output.path != "" && isDirTarget(flags.output.path):
		return filepath.Join(flags.output.path, base+"."+ext)
	case flags.output.path != "":
		return flags.output.path
	}

	var out *string
	if job.Type == config.TypeImage {
		out = job.Image.Global.Out
	} else if job.PDF.Global != nil {
		out = job.PDF.Global.Out
	}
	if out != nil && *out != "" {
		return *out
	}
	return base + "." + ext
}

// outputSink buffers one conversion's output.
type outputSink struct {
	buf bytes.Buffer
}

func (s *outputSink) stream(length int) (io.Writer, error) {
	s.buf.Grow(length)
	return &s.buf, nil
}

// convertAll submits every task to one work queue and waits for the results
// in submission order. On cancellation the remaining results carry the
// context error and the queue is left to the engine shutdown.
func convertAll(ctx context.Context, tasks []task, engine Engine, logger *log.Logger, env *Environment) []ConversionResult {
	queue := htmltox.NewWorkQueue(engine, htmltox.WithQueueLogger(logger))

	results := make([]ConversionResult, len(tasks))
	items := make([]*htmltox.WorkItem, len(tasks))
	sinks := make([]*outputSink, len(tasks))
	for i, t := range tasks {
		results[i] = ConversionResult{Input: t.label, Output: displayOutput(t.output)}
		sinks[i] = &outputSink{}
		item, err := queue.Submit(t.doc, sinks[i].stream)
		if err != nil {
			results[i].Err = err
			continue
		}
		items[i] = item
	}

	last := env.Now()
	for i, item := range items {
		if item == nil {
			continue
		}
		ok, err := item.Wait(ctx)
		now := env.Now()
		results[i].Duration = now.Sub(last)
		last = now

		if err == nil && !ok {
			err = ErrConversionFailed
		}
		if err == nil {
			err = writeOutput(tasks[i].output, sinks[i].buf.Bytes(), env)
		}
		results[i].Err = err
	}

	if ctx.Err() == nil {
		_ = queue.Close()
	}
	return results
}

func displayOutput(path string) string {
	if path == "" {
		return stdoutLabel
	}
	return path
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, env *Environment) error {
	if path == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// printResults outputs conversion results and returns the failure count.
// Status lines go to stderr when a document is written to stdout. hint
// may add a suggestion to each failure.
func printResults(results []ConversionResult, quiet, verbose bool, hint func(error) string, env *Environment) int {
	out := env.Stdout
	for _, r := range results {
		if r.Output == stdoutLabel {
			out = env.Stderr
			break
		}
	}

	var succeeded, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Input, r.Err, hint(r.Err))
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(out, "%s -> %s (%v)\n", r.Input, r.Output, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(out, "Created %s\n", r.Output)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(out, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed
}

// firstError returns the first failure in results.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printJobs writes each planned document as a job file, separated by
// YAML document markers.
func printJobs(w io.Writer, tasks []task, engine config.EngineConfig) error {
	for i, t := range tasks {
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		job := config.Job{Engine: engine}
		switch doc := t.doc.(type) {
		case *htmltox.PDFDocument:
			job.Type, job.PDF = config.TypePDF, doc
		case *htmltox.ImageDocument:
			job.Type, job.Image = config.TypeImage, doc
		}
		if err := yamlutil.Encode(w, job); err != nil {
			return err
		}
	}
	return nil
}
