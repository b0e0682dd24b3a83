package htmltox

// Document is one conversion job. It is implemented by *PDFDocument and
// *ImageDocument. Documents are read-only while a conversion runs.
type Document interface {
	GlobalSettings() Settings
	document()
}

// PDFDocument holds global settings and the ordered objects of a PDF.
// Nil entries in Objects are skipped.
type PDFDocument struct {
	Global  *PDFGlobalSettings   `yaml:"global,omitempty"`
	Objects []*PDFObjectSettings `yaml:"objects,omitempty"`
}

// NewPDFDocument returns a document with empty global settings and objs.
func NewPDFDocument(objs ...*PDFObjectSettings) *PDFDocument {
	return &PDFDocument{Global: &PDFGlobalSettings{}, Objects: objs}
}

func (d *PDFDocument) GlobalSettings() Settings {
	if d == nil || d.Global == nil {
		return nil
	}
	return d.Global
}

func (*PDFDocument) document() {}

// ImageDocument holds the settings of an image conversion.
type ImageDocument struct {
	Global *ImageGlobalSettings `yaml:"global,omitempty"`
}

func (d *ImageDocument) GlobalSettings() Settings {
	if d == nil || d.Global == nil {
		return nil
	}
	return d.Global
}

func (*ImageDocument) document() {}

// isNilDocument reports whether d is nil or a typed nil pointer.
func isNilDocument(d Document) bool {
	switch v := d.(type) {
	case nil:
		return true
	case *PDFDocument:
		return v == nil
	case *ImageDocument:
		return v == nil
	}
	return false
}
