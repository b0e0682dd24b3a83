package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-htmltox/internal/dateutil"
	"github.com/alnah/go-htmltox/internal/units"
)

// ErrInvalidFlag indicates a flag value failed validation.
var ErrInvalidFlag = errors.New("invalid flag value")

// qualityUnset detects if --quality was explicitly set. 0 is a valid
// quality, so the default sits outside the 0-100 range.
const qualityUnset = -1

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output selection flags.
type outputFlags struct {
	path   string
	format string
	merge  bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      string
}

// documentFlags holds PDF document flags.
type documentFlags struct {
	title        string
	grayscale    bool
	noBackground bool
	headerCenter string
	footerCenter string
	date         string
}

// imageFlags holds screenshot flags.
type imageFlags struct {
	screenWidth int
	quality     int
}

// engineFlags holds browser flags.
type engineFlags struct {
	timeout    string
	browserBin string
	noSandbox  bool
}

// cliFlags holds every flag of the htmltox command.
type cliFlags struct {
	common   commonFlags
	output   outputFlags
	page     pageFlags
	document documentFlags
	image    imageFlags
	engine   engineFlags
	printJob bool
	version  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "job file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show engine phases and timing")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: pdf, png, jpg, webp")
	fs.BoolVar(&f.merge, "merge", false, "merge all inputs into one PDF")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "paper-size", "p", "", "paper size: A3, A4, A5, Letter, Legal, Tabloid")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.StringVar(&f.margin, "margin", "", "margin on every side, e.g. 10mm, 0.5in")
}

// addDocumentFlags adds PDF document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.BoolVar(&f.grayscale, "grayscale", false, "print in grayscale")
	fs.BoolVar(&f.noBackground, "no-background", false, "do not print backgrounds")
	fs.StringVar(&f.headerCenter, "header-center", "", "centered header text, e.g. [title]")
	fs.StringVar(&f.footerCenter, "footer-center", "", "centered footer text, e.g. [page]/[topage]")
	fs.StringVar(&f.date, "date", "", "value of [date]: text, auto, auto:FORMAT or auto:PRESET")
}

// addImageFlags adds screenshot flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.IntVar(&f.screenWidth, "screen-width", 0, "viewport width in pixels")
	fs.IntVar(&f.quality, "quality", qualityUnset, "jpg/webp quality (0-100)")
}

// addEngineFlags adds browser flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome or Chromium binary")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
}

// parseFlags parses args and returns the flags and positional inputs.
// Usage is written to w on -h or a parse error.
func parseFlags(args []string, w io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("htmltox", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPageFlags(fs, &f.page)
	addDocumentFlags(fs, &f.document)
	addImageFlags(fs, &f.image)
	addEngineFlags(fs, &f.engine)
	fs.BoolVar(&f.printJob, "print-job", false, "print the resolved job as YAML instead of converting")
	fs.BoolVar(&f.version, "version", false, "show version information")

	fs.Usage = func() { printUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := validateFlags(f); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// validateFlags checks flag values that pflag cannot type-check.
func validateFlags(f *cliFlags) error {
	format := strings.ToLower(f.output.format)
	switch format {
	case "", formatPDF, "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("%w: --format %q (must be pdf, png, jpg or webp)", ErrInvalidFlag, f.output.format)
	}
	f.output.format = format

	if f.output.merge && format != "" && format != formatPDF {
		return fmt.Errorf("%w: --merge only applies to pdf output", ErrInvalidFlag)
	}
	if f.common.quiet && f.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlag)
	}

	if f.page.size != "" {
		if _, ok := units.Paper(f.page.size); !ok {
			return fmt.Errorf("%w: --paper-size %q", ErrInvalidFlag, f.page.size)
		}
	}
	switch strings.ToLower(f.page.orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: --orientation %q (must be portrait or landscape)", ErrInvalidFlag, f.page.orientation)
	}
	if f.page.margin != "" {
		if _, err := units.Inches(f.page.margin); err != nil {
			return fmt.Errorf("%w: --margin: %v", ErrInvalidFlag, err)
		}
	}

	if f.document.date != "" {
		if _, err := dateutil.Resolve(f.document.date, time.Time{}); err != nil {
			return fmt.Errorf("%w: --date: %w", ErrInvalidFlag, err)
		}
	}

	if f.image.screenWidth < 0 {
		return fmt.Errorf("%w: --screen-width must be positive, got %d", ErrInvalidFlag, f.image.screenWidth)
	}
	if f.image.quality != qualityUnset && (f.image.quality < 0 || f.image.quality > 100) {
		return fmt.Errorf("%w: --quality must be between 0 and 100, got %d", ErrInvalidFlag, f.image.quality)
	}
	return nil
}
