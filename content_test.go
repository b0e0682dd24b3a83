package htmltox

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// sizedReader claims a size without holding the data.
type sizedReader struct {
	size int64
}

func (r sizedReader) Read([]byte) (int, error) { return 0, io.EOF }

func (r sizedReader) Size() int64 { return r.size }

func TestContent_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  Content
		wantText bool
		want     string
		wantErr  error
	}{
		{
			name:     "string wins",
			content:  Content{HTMLContent: Ptr("s"), HTMLContentBytes: []byte("b"), HTMLContentStream: strings.NewReader("r")},
			wantText: true,
			want:     "s",
		},
		{
			name:    "bytes before stream",
			content: Content{HTMLContentBytes: []byte("b"), HTMLContentStream: strings.NewReader("r")},
			want:    "b",
		},
		{
			name:    "stream",
			content: Content{HTMLContentStream: strings.NewReader("<p>streamed</p>")},
			want:    "<p>streamed</p>",
		},
		{
			name:     "empty string is content",
			content:  Content{HTMLContent: Ptr("")},
			wantText: true,
			want:     "",
		},
		{
			name:    "nothing set",
			wantErr: ErrContentEmpty,
		},
		{
			name:    "stream too large",
			content: Content{HTMLContentStream: sizedReader{size: MaxPayloadSize + 1}},
			wantErr: ErrContentTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := tt.content.resolve()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve() unexpected error: %v", err)
			}
			if p.isText != tt.wantText || string(p.bytes()) != tt.want {
				t.Errorf("resolve() = %+v, want text=%v %q", p, tt.wantText, tt.want)
			}
		})
	}
}

func TestStreamLength(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader([]byte("0123456789"))
	if _, err := r.Read(make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	if n, ok := streamLength(r); !ok || n != 6 {
		t.Errorf("streamLength(partially read) = %d, %v, want 6, true", n, ok)
	}

	if _, ok := streamLength(io.MultiReader(strings.NewReader("x"))); ok {
		t.Error("streamLength(unsized reader) reported a length")
	}
}

func TestAddContent(t *testing.T) {
	t.Parallel()

	t.Run("too large stream makes no module call", func(t *testing.T) {
		t.Parallel()

		m := newMockPDF()
		settings := &PDFObjectSettings{Content: Content{HTMLContentStream: sizedReader{size: MaxPayloadSize + 1}}}

		err := addContent(m, 1, 2, settings)
		if !errors.Is(err, ErrContentTooLarge) {
			t.Fatalf("addContent() error = %v, want ErrContentTooLarge", err)
		}
		if calls := m.sequence(); len(calls) != 0 {
			t.Errorf("module called: %v", calls)
		}
	})

	t.Run("nil settings", func(t *testing.T) {
		t.Parallel()

		if err := addContent(newMockPDF(), 1, 2, nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("addContent(nil) error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("stream goes through AddObject", func(t *testing.T) {
		t.Parallel()

		m := newMockPDF()
		settings := &PDFObjectSettings{Content: Content{HTMLContentStream: strings.NewReader("<p>s</p>")}}
		if err := addContent(m, 1, 2, settings); err != nil {
			t.Fatal(err)
		}
		if got := m.sequence(); len(got) != 1 || got[0] != "AddObject" {
			t.Errorf("calls = %v, want [AddObject]", got)
		}
		if string(m.payloads[2]) != "<p>s</p>" {
			t.Errorf("payload = %q", m.payloads[2])
		}
	})
}
