package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	htmltox "github.com/alnah/go-htmltox"
	"github.com/alnah/go-htmltox/internal/fileutil"
	"github.com/alnah/go-htmltox/internal/units"
	"github.com/alnah/go-htmltox/internal/yamlutil"
)

// Sentinel errors for job file operations.
var (
	ErrJobNotFound   = errors.New("job file not found")
	ErrEmptyJobName  = errors.New("job name cannot be empty")
	ErrJobParse      = errors.New("failed to parse job file")
	ErrFieldTooLong  = errors.New("field exceeds maximum length")
	ErrInvalidField  = errors.New("invalid field value")
	ErrMissingFields = errors.New("missing required field")
)

// Field length limits.
const (
	MaxTitleLength = 200  // documentTitle
	MaxTextLength  = 500  // header/footer text
	MaxURLLength   = 2048 // page, in, htmlUrl
	MaxPathLength  = 4096 // out, browserBin
)

// Document types.
const (
	TypePDF   = "pdf"
	TypeImage = "image"
)

// Job is one conversion job: engine options plus a PDF or image document.
type Job struct {
	Type   string                 `yaml:"type,omitempty"` // "pdf" or "image"; inferred when empty
	Engine EngineConfig           `yaml:"engine,omitempty"`
	Log    LogConfig              `yaml:"log,omitempty"`
	PDF    *htmltox.PDFDocument   `yaml:"pdf,omitempty"`
	Image  *htmltox.ImageDocument `yaml:"image,omitempty"`
}

// EngineConfig configures the Chromium engine.
type EngineConfig struct {
	Timeout    string `yaml:"timeout,omitempty"` // Go duration, e.g. "45s"
	BrowserBin string `yaml:"browserBin,omitempty"`
	NoSandbox  bool   `yaml:"noSandbox,omitempty"`
	Graphics   bool   `yaml:"graphics,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// TimeoutDuration parses Timeout. Zero means the engine default.
func (e EngineConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: engine.timeout %q must be a positive duration", ErrInvalidField, e.Timeout)
	}
	return d, nil
}

// ParsedLevel returns the log level, info when unset.
func (l LogConfig) ParsedLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidField, l.Level)
	}
	return lvl, nil
}

// Document returns the job's document.
func (j *Job) Document() htmltox.Document {
	if j.Type == TypeImage {
		return j.Image
	}
	return j.PDF
}

// Validate checks the job. It infers Type from the populated section when
// Type is empty. Called automatically by LoadJob, but available for callers
// that build a Job in code.
func (j *Job) Validate() error {
	if j.Type == "" {
		switch {
		case j.PDF != nil && j.Image == nil:
			j.Type = TypePDF
		case j.Image != nil && j.PDF == nil:
			j.Type = TypeImage
		}
	}

	if _, err := j.Engine.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateFieldLength("engine.browserBin", j.Engine.BrowserBin, MaxPathLength); err != nil {
		return err
	}
	if _, err := j.Log.ParsedLevel(); err != nil {
		return err
	}

	switch j.Type {
	case TypePDF:
		if j.PDF == nil {
			return fmt.Errorf("%w: pdf section for type pdf", ErrMissingFields)
		}
		return validatePDF(j.PDF)
	case TypeImage:
		if j.Image == nil || j.Image.Global == nil {
			return fmt.Errorf("%w: image.global section for type image", ErrMissingFields)
		}
		return validateImage(j.Image.Global)
	case "":
		return fmt.Errorf("%w: exactly one of pdf or image", ErrMissingFields)
	default:
		return fmt.Errorf("%w: type %q (must be pdf or image)", ErrInvalidField, j.Type)
	}
}

func validatePDF(doc *htmltox.PDFDocument) error {
	if len(doc.Objects) == 0 {
		return fmt.Errorf("%w: pdf.objects", ErrMissingFields)
	}

	if g := doc.Global; g != nil {
		if err := validatePtrLength("pdf.global.documentTitle", g.DocumentTitle, MaxTitleLength); err != nil {
			return err
		}
		if err := validatePtrLength("pdf.global.out", g.Out, MaxPathLength); err != nil {
			return err
		}
		if g.Orientation != nil {
			switch *g.Orientation {
			case htmltox.Portrait, htmltox.Landscape:
			default:
				return fmt.Errorf("%w: pdf.global.orientation %q (must be Portrait or Landscape)", ErrInvalidField, *g.Orientation)
			}
		}
		if s := g.Size; s != nil {
			if s.PaperSize != nil {
				if _, ok := units.Paper(string(*s.PaperSize)); !ok {
					return fmt.Errorf("%w: pdf.global.size.paperSize %q", ErrInvalidField, *s.PaperSize)
				}
			}
			if err := validateLength("pdf.global.size.width", s.Width); err != nil {
				return err
			}
			if err := validateLength("pdf.global.size.height", s.Height); err != nil {
				return err
			}
		}
		if m := g.Margins; m != nil {
			for name, v := range map[string]*string{"top": m.Top, "bottom": m.Bottom, "left": m.Left, "right": m.Right} {
				if err := validateLength("pdf.global.margins."+name, v); err != nil {
					return err
				}
			}
		}
	}

	for i, o := range doc.Objects {
		if o == nil {
			return fmt.Errorf("%w: pdf.objects[%d] is empty", ErrMissingFields, i)
		}
		prefix := fmt.Sprintf("pdf.objects[%d]", i)
		if o.HTMLContent == nil && (o.Page == nil || *o.Page == "") {
			return fmt.Errorf("%w: %s needs htmlContent or page", ErrMissingFields, prefix)
		}
		if err := validatePtrLength(prefix+".page", o.Page, MaxURLLength); err != nil {
			return err
		}
		for name, hf := range map[string]*htmltox.HeaderFooterSettings{"header": o.Header, "footer": o.Footer} {
			if hf == nil {
				continue
			}
			for _, f := range []struct {
				key string
				v   *string
			}{{"left", hf.Left}, {"center", hf.Center}, {"right", hf.Right}} {
				if err := validatePtrLength(prefix+"."+name+"."+f.key, f.v, MaxTextLength); err != nil {
					return err
				}
			}
			if err := validatePtrLength(prefix+"."+name+".htmlUrl", hf.HTMLURL, MaxURLLength); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateImage(g *htmltox.ImageGlobalSettings) error {
	if g.HTMLContent == nil && (g.In == nil || *g.In == "") {
		return fmt.Errorf("%w: image.global needs htmlContent or in", ErrMissingFields)
	}
	if err := validatePtrLength("image.global.in", g.In, MaxURLLength); err != nil {
		return err
	}
	if err := validatePtrLength("image.global.out", g.Out, MaxPathLength); err != nil {
		return err
	}
	if g.Format != nil {
		switch strings.ToLower(*g.Format) {
		case "png", "jpg", "jpeg", "webp":
		default:
			return fmt.Errorf("%w: image.global.format %q (must be png, jpg or webp)", ErrInvalidField, *g.Format)
		}
	}
	if g.Quality != nil && (*g.Quality < 0 || *g.Quality > 100) {
		return fmt.Errorf("%w: image.global.quality must be between 0 and 100, got %d", ErrInvalidField, *g.Quality)
	}
	if g.ScreenWidth != nil && *g.ScreenWidth <= 0 {
		return fmt.Errorf("%w: image.global.screenWidth must be positive, got %d", ErrInvalidField, *g.ScreenWidth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validatePtrLength(fieldName string, value *string, maxLength int) error {
	if value == nil {
		return nil
	}
	return validateFieldLength(fieldName, *value, maxLength)
}

func validateLength(fieldName string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if _, err := units.Inches(*value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidField, fieldName, err)
	}
	return nil
}

// LoadJob loads a job from a file path or job name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a job name and searched in standard locations.
func LoadJob(nameOrPath string) (*Job, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyJobName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveJobPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	var job Job
	if err := yamlutil.DecodeFile(path, &job); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrJobParse, err)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// resolveJobPath searches for a job file by name: first the current
// directory, then ~/.config/go-htmltox/, each with .yaml then .yml.
func resolveJobPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{"."}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, "go-htmltox"))
	}

	tried := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			p := filepath.Join(dir, name+ext)
			if fileutil.FileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrJobNotFound, strings.Join(tried, ", "))
}
