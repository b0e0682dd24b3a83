package main

import (
	"maps"
	"strings"

	htmltox "github.com/alnah/go-htmltox"
	"github.com/alnah/go-htmltox/internal/config"
)

// Output formats.
const (
	formatPDF = "pdf"
	formatPNG = "png"
)

var paperKinds = []htmltox.PaperKind{
	htmltox.A3, htmltox.A4, htmltox.A5, htmltox.Letter, htmltox.Legal, htmltox.Tabloid,
}

// outputFormat resolves the output format: the flag wins, then the job
// type, then pdf.
func outputFormat(flags *cliFlags, job *config.Job) string {
	if flags.output.format != "" {
		return flags.output.format
	}
	if job != nil && job.Type == config.TypeImage {
		if g := job.Image.Global; g != nil && g.Format != nil && *g.Format != "" {
			return strings.ToLower(*g.Format)
		}
		return formatPNG
	}
	return formatPDF
}

// extension returns the file extension for format.
func extension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// paperKind returns the canonical spelling of a paper name.
func paperKind(name string) htmltox.PaperKind {
	for _, k := range paperKinds {
		if strings.EqualFold(string(k), name) {
			return k
		}
	}
	return htmltox.PaperKind(name)
}

// pdfTemplates returns the job's global and first object settings, used as
// defaults for every converted input.
func pdfTemplates(job *config.Job) (*htmltox.PDFGlobalSettings, *htmltox.PDFObjectSettings) {
	if job == nil || job.PDF == nil {
		return nil, nil
	}
	var obj *htmltox.PDFObjectSettings
	if len(job.PDF.Objects) > 0 {
		obj = job.PDF.Objects[0]
	}
	return job.PDF.Global, obj
}

// imageTemplate returns the job's image settings, or nil.
func imageTemplate(job *config.Job) *htmltox.ImageGlobalSettings {
	if job == nil || job.Image == nil {
		return nil
	}
	return job.Image.Global
}

// pdfGlobal copies tmpl and applies page and document flags. Out is
// cleared: the CLI writes every output itself.
func pdfGlobal(tmpl *htmltox.PDFGlobalSettings, flags *cliFlags) *htmltox.PDFGlobalSettings {
	var g htmltox.PDFGlobalSettings
	if tmpl != nil {
		g = *tmpl
	}
	g.Out = nil

	p := flags.page
	if p.size != "" {
		var size htmltox.SizeSettings
		if g.Size != nil {
			size = *g.Size
		}
		size.PaperSize = htmltox.Ptr(paperKind(p.size))
		size.Width, size.Height = nil, nil
		g.Size = &size
	}
	switch strings.ToLower(p.orientation) {
	case "portrait":
		g.Orientation = htmltox.Ptr(htmltox.Portrait)
	case "landscape":
		g.Orientation = htmltox.Ptr(htmltox.Landscape)
	}
	if p.margin != "" {
		g.Margins = &htmltox.MarginSettings{
			Top:    htmltox.Ptr(p.margin),
			Bottom: htmltox.Ptr(p.margin),
			Left:   htmltox.Ptr(p.margin),
			Right:  htmltox.Ptr(p.margin),
		}
	}

	d := flags.document
	if d.title != "" {
		g.DocumentTitle = htmltox.Ptr(d.title)
	}
	if d.grayscale {
		g.ColorMode = htmltox.Ptr(htmltox.Grayscale)
	}
	return &g
}

// pdfObject copies tmpl, applies document flags and, when src is not nil,
// replaces the content with src.
func pdfObject(tmpl *htmltox.PDFObjectSettings, src *source, d documentFlags) *htmltox.PDFObjectSettings {
	var o htmltox.PDFObjectSettings
	if tmpl != nil {
		o = *tmpl
	}
	if src != nil {
		o.Content = src.content()
		o.Page = src.url()
	}

	if d.headerCenter != "" {
		o.Header = withCenter(o.Header, d.headerCenter)
	}
	if d.footerCenter != "" {
		o.Footer = withCenter(o.Footer, d.footerCenter)
	}
	if d.date != "" {
		replacements := make(map[string]string, len(o.Replacements)+1)
		maps.Copy(replacements, o.Replacements)
		replacements["date"] = d.date
		o.Replacements = replacements
	}
	if d.noBackground {
		var web htmltox.WebSettings
		if o.Web != nil {
			web = *o.Web
		}
		web.Background = htmltox.Ptr(false)
		o.Web = &web
	}
	return &o
}

func withCenter(hf *htmltox.HeaderFooterSettings, text string) *htmltox.HeaderFooterSettings {
	var out htmltox.HeaderFooterSettings
	if hf != nil {
		out = *hf
	}
	out.Center = htmltox.Ptr(text)
	return &out
}

// imageGlobal copies tmpl and applies image flags and format. When src is
// not nil it replaces the content.
func imageGlobal(tmpl *htmltox.ImageGlobalSettings, src *source, img imageFlags, format string) *htmltox.ImageGlobalSettings {
	var g htmltox.ImageGlobalSettings
	if tmpl != nil {
		g = *tmpl
	}
	g.Out = nil
	if src != nil {
		g.Content = src.content()
		g.In = src.url()
	}

	g.Format = htmltox.Ptr(format)
	if img.screenWidth > 0 {
		g.ScreenWidth = htmltox.Ptr(img.screenWidth)
	}
	if img.quality != qualityUnset {
		g.Quality = htmltox.Ptr(img.quality)
	}
	return &g
}

// jobDocument returns the job's own document with flags applied.
func jobDocument(job *config.Job, flags *cliFlags) htmltox.Document {
	if job.Type == config.TypeImage {
		return &htmltox.ImageDocument{
			Global: imageGlobal(job.Image.Global, nil, flags.image, outputFormat(flags, job)),
		}
	}

	doc := &htmltox.PDFDocument{Global: pdfGlobal(job.PDF.Global, flags)}
	for _, o := range job.PDF.Objects {
		doc.Objects = append(doc.Objects, pdfObject(o, nil, flags.document))
	}
	return doc
}
