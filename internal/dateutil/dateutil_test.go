package dateutil

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestLayout - Token conversion and literals
// ---------------------------------------------------------------------------

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "iso", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "european", format: "DD/MM/YYYY", want: "02/01/2006"},
		{name: "long month", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short month", format: "D MMM YY", want: "2 Jan 06"},
		{name: "unpadded month", format: "M/D", want: "1/2"},
		{name: "bracketed literal", format: "[Printed] YYYY", want: "Printed 2006"},
		{name: "bracketed token text", format: "[YYYY] YYYY", want: "YYYY 2006"},
		{name: "empty brackets", format: "[]YYYY", want: "2006"},
		{name: "other characters kept", format: "YYYY.MM.DD", want: "2006.01.02"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[oops YYYY", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Layout(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Layout(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolve - auto values and passthrough
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "auto", value: "auto", want: "2026-03-07"},
		{name: "auto any case", value: "AUTO", want: "2026-03-07"},
		{name: "custom format", value: "auto:DD/MM/YYYY", want: "07/03/2026"},
		{name: "preset", value: "auto:long", want: "March 7, 2026"},
		{name: "preset any case", value: "auto:US", want: "03/07/2026"},
		{name: "literal text", value: "auto:[Printed] D MMM", want: "Printed 7 Mar"},
		{name: "plain value passes through", value: "Q1 2026", want: "Q1 2026"},
		{name: "empty passes through", value: "", want: ""},
		{name: "short value passes through", value: "aut", want: "aut"},
		{name: "missing colon", value: "autoDD", wantErr: ErrInvalidDateFormat},
		{name: "empty format", value: "auto:", wantErr: ErrInvalidDateFormat},
		{name: "bad format", value: "auto:[YYYY", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
