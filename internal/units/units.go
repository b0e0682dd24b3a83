// Package units parses print lengths such as "10mm" or "0.5in".
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidLength indicates a length that cannot be parsed.
var ErrInvalidLength = errors.New("invalid length")

var lengthPattern = regexp.MustCompile(`^\s*(-?[0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

// inchesPer maps a unit suffix to its size in inches.
var inchesPer = map[string]float64{
	"":   1.0 / 96, // bare numbers are CSS pixels
	"px": 1.0 / 96,
	"pt": 1.0 / 72,
	"pc": 1.0 / 6,
	"mm": 1.0 / 25.4,
	"cm": 1.0 / 2.54,
	"in": 1,
}

// Inches converts a length to inches.
func Inches(s string) (float64, error) {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	factor, ok := inchesPer[strings.ToLower(m[2])]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidLength, m[2])
	}
	return v * factor, nil
}

// PaperSize is a sheet size in inches, portrait.
type PaperSize struct {
	Width  float64
	Height float64
}

var paperSizes = map[string]PaperSize{
	"A3":      {Width: 11.69, Height: 16.54},
	"A4":      {Width: 8.27, Height: 11.69},
	"A5":      {Width: 5.83, Height: 8.27},
	"LETTER":  {Width: 8.5, Height: 11},
	"LEGAL":   {Width: 8.5, Height: 14},
	"TABLOID": {Width: 11, Height: 17},
}

// Paper looks up a named paper size, case-insensitively.
func Paper(name string) (PaperSize, bool) {
	p, ok := paperSizes[strings.ToUpper(strings.TrimSpace(name))]
	return p, ok
}
