package htmltox

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a converter.
type Option func(*converterConfig)

// converterConfig holds internal configuration shared by converters.
type converterConfig struct {
	logger      *log.Logger
	useGraphics bool
}

func defaultConverterConfig() converterConfig {
	return converterConfig{logger: discardLogger()}
}

// WithLogger sets the logger used for lifecycle and engine messages.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGraphics asks the engine to initialize with graphics support.
func WithGraphics(enabled bool) Option {
	return func(c *converterConfig) {
		c.useGraphics = enabled
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
