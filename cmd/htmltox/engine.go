package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	htmltox "github.com/alnah/go-htmltox"
)

// Engine converts PDF and image documents. One Engine backs the single
// WorkQueue of a run.
type Engine interface {
	htmltox.Converter
	Close() error
}

// engineOptions are the resolved browser settings for a run.
type engineOptions struct {
	timeout    time.Duration
	browserBin string
	noSandbox  bool
	graphics   bool
}

// chromeEngine routes documents to a PDF or image converter sharing one
// Chrome instance. Engine error messages of the running conversion are
// collected so a failure can say what went wrong.
type chromeEngine struct {
	chrome *htmltox.Chrome
	pdf    *htmltox.PDFConverter
	image  *htmltox.ImageConverter

	mu     sync.Mutex
	errors []string
}

// Compile-time interface implementation check.
var _ Engine = (*chromeEngine)(nil)

func newChromeEngine(opts engineOptions, logger *log.Logger) Engine {
	chromeOpts := []htmltox.ChromeOption{htmltox.WithChromeLogger(logger)}
	if opts.timeout > 0 {
		chromeOpts = append(chromeOpts, htmltox.WithTimeout(opts.timeout))
	}
	if opts.browserBin != "" {
		chromeOpts = append(chromeOpts, htmltox.WithBrowserBin(opts.browserBin))
	}
	if opts.noSandbox {
		chromeOpts = append(chromeOpts, htmltox.WithNoSandbox())
	}

	chrome := htmltox.NewChrome(chromeOpts...)
	convOpts := []htmltox.Option{htmltox.WithLogger(logger), htmltox.WithGraphics(opts.graphics)}
	e := &chromeEngine{
		chrome: chrome,
		pdf:    htmltox.NewPDFConverter(chrome.PDF(), convOpts...),
		image:  htmltox.NewImageConverter(chrome.Image(), convOpts...),
	}
	for _, src := range []eventSource{e.pdf, e.image} {
		src.OnError(e.recordError)
		src.OnWarning(func(ev htmltox.WarningEvent) {
			logger.Warn("engine", "msg", ev.Message)
		})
		if logger.GetLevel() <= log.DebugLevel {
			traceEvents(src, logger)
		}
	}
	return e
}

// eventSource is the subscription surface shared by both converters.
type eventSource interface {
	OnPhaseChanged(fn func(htmltox.PhaseChangedEvent)) (unsubscribe func())
	OnProgressChanged(fn func(htmltox.ProgressChangedEvent)) (unsubscribe func())
	OnWarning(fn func(htmltox.WarningEvent)) (unsubscribe func())
	OnError(fn func(htmltox.ErrorEvent)) (unsubscribe func())
}

func (e *chromeEngine) recordError(ev htmltox.ErrorEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errors = append(e.errors, ev.Message)
}

// takeErrors returns and clears the collected error messages.
func (e *chromeEngine) takeErrors() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.errors
	e.errors = nil
	return out
}

// traceEvents logs engine phases and progress at debug level.
func traceEvents(src eventSource, logger *log.Logger) {
	src.OnPhaseChanged(func(e htmltox.PhaseChangedEvent) {
		logger.Debug("phase", "step", fmt.Sprintf("%d/%d", e.CurrentPhase+1, e.PhaseCount), "name", e.Description)
	})
	src.OnProgressChanged(func(e htmltox.ProgressChangedEvent) {
		logger.Debug("progress", "value", e.Description)
	})
}

// Convert dispatches doc to the converter for its type. A failure without
// an error carries the engine's messages in ErrConversionFailed.
func (e *chromeEngine) Convert(doc htmltox.Document, factory htmltox.StreamFactory) (bool, error) {
	e.takeErrors()

	var (
		ok  bool
		err error
	)
	if _, isImage := doc.(*htmltox.ImageDocument); isImage {
		ok, err = e.image.Convert(doc, factory)
	} else {
		ok, err = e.pdf.Convert(doc, factory)
	}

	if msgs := e.takeErrors(); err == nil && !ok && len(msgs) > 0 {
		err = fmt.Errorf("%w: %s", ErrConversionFailed, strings.Join(msgs, "; "))
	}
	return ok, err
}

// Close shuts the browser down.
func (e *chromeEngine) Close() error {
	return e.chrome.Close()
}
