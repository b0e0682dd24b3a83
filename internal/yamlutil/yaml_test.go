package yamlutil

// Notes:
// - Encode's marshal error branch is not tested: go-yaml only fails on
//   channels and funcs, which job types never contain.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type job struct {
	Name   string            `yaml:"name"`
	Copies int               `yaml:"copies,omitempty"`
	Inline inlined           `yaml:",inline"`
	Extra  map[string]string `yaml:"extra,omitempty"`
}

type inlined struct {
	HTML *string `yaml:"htmlContent,omitempty"`
}

// ---------------------------------------------------------------------------
// TestDecode - strict decoding with input limits
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		limit   int64
		target  any
		wantErr error
		check   func(t *testing.T, j *job)
	}{
		{
			name:  "valid document",
			input: "name: report\ncopies: 2\nhtmlContent: <p>x</p>\nextra:\n  a: b\n",
			check: func(t *testing.T, j *job) {
				if j.Name != "report" || j.Copies != 2 {
					t.Errorf("decoded %+v", j)
				}
				if j.Inline.HTML == nil || *j.Inline.HTML != "<p>x</p>" {
					t.Errorf("inline field = %v", j.Inline.HTML)
				}
				if j.Extra["a"] != "b" {
					t.Errorf("Extra = %v", j.Extra)
				}
			},
		},
		{
			name:    "unknown field",
			input:   "name: x\ncopeis: 2\n",
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "empty input",
			input:   "  \n",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "too large",
			input:   "name: " + strings.Repeat("x", 64),
			limit:   32,
			wantErr: ErrTooLarge,
		},
		{
			name:    "syntax error",
			input:   "name: [unclosed",
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limit := tt.limit
			if limit == 0 {
				limit = MaxInputSize
			}
			var j job
			err := decode(strings.NewReader(tt.input), &j, limit)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, &j)
			}
		})
	}
}

func TestDecode_NilTarget(t *testing.T) {
	t.Parallel()

	if err := Decode(strings.NewReader("a: 1"), nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("Decode(nil) error = %v, want ErrNilTarget", err)
	}
}

// ---------------------------------------------------------------------------
// TestDecodeFile - path handling
// ---------------------------------------------------------------------------

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(path, []byte("name: file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var j job
	if err := DecodeFile(path, &j); err != nil || j.Name != "file" {
		t.Errorf("DecodeFile() = %+v, %v", j, err)
	}

	err := DecodeFile(filepath.Join(dir, "missing.yaml"), &j)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("DecodeFile(missing) error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("nope: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := DecodeFile(bad, &j); err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("DecodeFile(bad) error = %v, want path in message", err)
	}
}

// ---------------------------------------------------------------------------
// TestEncode - output decodes back to the same value
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	html := "<h1>T</h1>"
	in := job{Name: "enc", Copies: 3, Inline: inlined{HTML: &html}}

	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "htmlContent:") {
		t.Errorf("inline field not flattened:\n%s", buf.String())
	}

	var out job
	if err := Decode(&buf, &out); err != nil {
		t.Fatalf("Decode(Encode()) error = %v", err)
	}
	if out.Name != in.Name || out.Copies != in.Copies || *out.Inline.HTML != html {
		t.Errorf("got %+v, want %+v", out, in)
	}
}
