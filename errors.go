package htmltox

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrContentEmpty        = errors.New("object settings carry no HTML content")
	ErrContentTooLarge     = errors.New("HTML content stream exceeds maximum payload size")
	ErrGetSetting          = errors.New("native get setting call failed")
	ErrRelease             = errors.New("failed to release native handle")
	ErrQueueClosed         = errors.New("work queue is closed")
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// ErrInitialize is returned when the native engine does not report a
	// successful initialization. It matches ErrInvalidArgument.
	ErrInitialize = fmt.Errorf("%w: native engine initialization failed", ErrInvalidArgument)
)

// Chromium engine errors.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRender         = errors.New("rendering failed")
)

// argumentError wraps ErrInvalidArgument with the offending parameter name.
func argumentError(name, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, name, reason)
}
