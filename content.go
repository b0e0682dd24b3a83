package htmltox

import (
	"fmt"
	"io"
	"math"
	"os"
)

// MaxPayloadSize is the largest HTML payload handed to the engine in one call.
const MaxPayloadSize int64 = math.MaxInt32

// Content is the HTML payload of an object. Exactly one source is used,
// checked in order: HTMLContent, HTMLContentBytes, HTMLContentStream.
type Content struct {
	HTMLContent       *string   `yaml:"htmlContent,omitempty"`
	HTMLContentBytes  []byte    `yaml:"-"`
	HTMLContentStream io.Reader `yaml:"-"`
}

// payload is resolved content in the form the engine accepts.
type payload struct {
	text   string
	data   []byte
	isText bool
}

func (p payload) bytes() []byte {
	if p.isText {
		return []byte(p.text)
	}
	return p.data
}

// resolve picks the content source. Streams are checked against
// MaxPayloadSize before they are read.
func (c *Content) resolve() (payload, error) {
	switch {
	case c.HTMLContent != nil:
		return payload{text: *c.HTMLContent, isText: true}, nil
	case c.HTMLContentBytes != nil:
		return payload{data: c.HTMLContentBytes}, nil
	case c.HTMLContentStream != nil:
		data, err := readStream(c.HTMLContentStream)
		if err != nil {
			return payload{}, err
		}
		return payload{data: data}, nil
	default:
		return payload{}, ErrContentEmpty
	}
}

func readStream(r io.Reader) ([]byte, error) {
	if n, ok := streamLength(r); ok && n > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrContentTooLarge, n, MaxPayloadSize)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxPayloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading HTML content stream: %w", err)
	}
	if int64(len(data)) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrContentTooLarge, MaxPayloadSize)
	}
	return data, nil
}

// streamLength reports the remaining length of r when it can be known
// without consuming it.
func streamLength(r io.Reader) (int64, bool) {
	switch s := r.(type) {
	case interface{ Len() int }:
		return int64(s.Len()), true
	case interface{ Size() int64 }:
		return s.Size(), true
	case *os.File:
		info, err := s.Stat()
		if err != nil || !info.Mode().IsRegular() {
			return 0, false
		}
		return info.Size(), true
	case io.Seeker:
		cur, err := s.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, false
		}
		end, err := s.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, false
		}
		if _, err := s.Seek(cur, io.SeekStart); err != nil {
			return 0, false
		}
		return end - cur, true
	}
	return 0, false
}

// addContent registers the payload of settings against the converter and
// object settings pair.
func addContent(m PDFModule, conv, object Handle, settings *PDFObjectSettings) error {
	if settings == nil {
		return argumentError("object settings", "cannot be nil")
	}

	p, err := settings.resolve()
	if err != nil {
		return err
	}

	if p.isText {
		m.AddObjectString(conv, object, p.text)
		return nil
	}
	m.AddObject(conv, object, p.data)
	return nil
}
