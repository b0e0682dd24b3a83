// Package yamlutil reads and writes YAML job files. Input is size-capped and
// decoded strictly so a typo in a setting name fails loudly instead of being
// dropped.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes read from one document (1MB).
const MaxInputSize int64 = 1 << 20

var (
	ErrEmptyInput = errors.New("yamlutil: empty input")
	ErrNilTarget  = errors.New("yamlutil: nil decode target")
	ErrTooLarge   = errors.New("yamlutil: input exceeds maximum size")
)

// Decode reads one YAML document from r into v, rejecting unknown fields.
func Decode(r io.Reader, v any) error {
	return decode(r, v, MaxInputSize)
}

// DecodeFile decodes the YAML file at path into v.
func DecodeFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- job file path is user-provided
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Decode(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(r io.Reader, v any, limit int64) error {
	if v == nil {
		return ErrNilTarget
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading input: %w", err)
	}
	if int64(len(data)) > limit {
		return fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v to w as YAML.
func Encode(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	_, err = w.Write(data)
	return err
}
