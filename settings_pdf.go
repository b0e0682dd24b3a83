package htmltox

// PDFGlobalSettings apply to the whole PDF document.
type PDFGlobalSettings struct {
	Size           *SizeSettings   `yaml:"size,omitempty"`
	Orientation    *Orientation    `yaml:"orientation,omitempty"`
	ColorMode      *ColorMode      `yaml:"colorMode,omitempty"`
	DPI            *int            `yaml:"dpi,omitempty"`
	PageOffset     *int            `yaml:"pageOffset,omitempty"`
	Copies         *int            `yaml:"copies,omitempty"`
	Collate        *bool           `yaml:"collate,omitempty"`
	Outline        *bool           `yaml:"outline,omitempty"`
	OutlineDepth   *int            `yaml:"outlineDepth,omitempty"`
	DumpOutline    *string         `yaml:"dumpOutline,omitempty"`
	Out            *string         `yaml:"out,omitempty"`
	DocumentTitle  *string         `yaml:"documentTitle,omitempty"`
	UseCompression *bool           `yaml:"useCompression,omitempty"`
	Margins        *MarginSettings `yaml:"margins,omitempty"`
	ImageDPI       *int            `yaml:"imageDPI,omitempty"`
	ImageQuality   *int            `yaml:"imageQuality,omitempty"`
	CookieJar      *string         `yaml:"cookieJar,omitempty"`
}

func (g *PDFGlobalSettings) Fields() []Field {
	if g == nil {
		return nil
	}
	return []Field{
		Nested("size", g.Size),
		Text("orientation", g.Orientation),
		Text("colorMode", g.ColorMode),
		Int("dpi", g.DPI),
		Int("pageOffset", g.PageOffset),
		Int("copies", g.Copies),
		Bool("collate", g.Collate),
		Bool("outline", g.Outline),
		Int("outlineDepth", g.OutlineDepth),
		String("dumpOutline", g.DumpOutline),
		String("out", g.Out),
		String("documentTitle", g.DocumentTitle),
		Bool("useCompression", g.UseCompression),
		Nested("margin", g.Margins),
		Int("imageDPI", g.ImageDPI),
		Int("imageQuality", g.ImageQuality),
		String("load.cookieJar", g.CookieJar),
	}
}

// HeaderFooterSettings describe a page header or footer. Left, Center and
// Right accept the [page], [topage], [date], [title] and [webpage]
// placeholders.
type HeaderFooterSettings struct {
	FontSize *int     `yaml:"fontSize,omitempty"`
	FontName *string  `yaml:"fontName,omitempty"`
	Left     *string  `yaml:"left,omitempty"`
	Center   *string  `yaml:"center,omitempty"`
	Right    *string  `yaml:"right,omitempty"`
	Line     *bool    `yaml:"line,omitempty"`
	Spacing  *float64 `yaml:"spacing,omitempty"`
	HTMLURL  *string  `yaml:"htmlUrl,omitempty"`
}

func (h *HeaderFooterSettings) Fields() []Field {
	if h == nil {
		return nil
	}
	return []Field{
		Int("fontSize", h.FontSize),
		String("fontName", h.FontName),
		String("left", h.Left),
		String("center", h.Center),
		String("right", h.Right),
		Bool("line", h.Line),
		Float("spacing", h.Spacing),
		String("htmlUrl", h.HTMLURL),
	}
}

// TOCSettings configure a table of contents object.
type TOCSettings struct {
	UseDottedLines *bool    `yaml:"useDottedLines,omitempty"`
	CaptionText    *string  `yaml:"captionText,omitempty"`
	ForwardLinks   *bool    `yaml:"forwardLinks,omitempty"`
	BackLinks      *bool    `yaml:"backLinks,omitempty"`
	Indentation    *string  `yaml:"indentation,omitempty"`
	FontScale      *float64 `yaml:"fontScale,omitempty"`
}

func (t *TOCSettings) Fields() []Field {
	if t == nil {
		return nil
	}
	return []Field{
		Bool("useDottedLines", t.UseDottedLines),
		String("captionText", t.CaptionText),
		Bool("forwardLinks", t.ForwardLinks),
		Bool("backLinks", t.BackLinks),
		String("indentation", t.Indentation),
		Float("fontScale", t.FontScale),
	}
}

// PDFObjectSettings describe one object (page or section) of a PDF document.
// The embedded Content is the object's HTML payload and is never flattened.
type PDFObjectSettings struct {
	Content `yaml:",inline"`

	Page             *string               `yaml:"page,omitempty"`
	UseExternalLinks *bool                 `yaml:"useExternalLinks,omitempty"`
	UseLocalLinks    *bool                 `yaml:"useLocalLinks,omitempty"`
	ProduceForms     *bool                 `yaml:"produceForms,omitempty"`
	IncludeInOutline *bool                 `yaml:"includeInOutline,omitempty"`
	PagesCount       *bool                 `yaml:"pagesCount,omitempty"`
	IsTableOfContent *bool                 `yaml:"isTableOfContent,omitempty"`
	TOCXsl           *string               `yaml:"tocXsl,omitempty"`
	Replacements     map[string]string     `yaml:"replacements,omitempty"`
	TOC              *TOCSettings          `yaml:"toc,omitempty"`
	Header           *HeaderFooterSettings `yaml:"header,omitempty"`
	Footer           *HeaderFooterSettings `yaml:"footer,omitempty"`
	Load             *LoadSettings         `yaml:"load,omitempty"`
	Web              *WebSettings          `yaml:"web,omitempty"`
}

func (o *PDFObjectSettings) Fields() []Field {
	if o == nil {
		return nil
	}
	return []Field{
		String("page", o.Page),
		Bool("useExternalLinks", o.UseExternalLinks),
		Bool("useLocalLinks", o.UseLocalLinks),
		Bool("produceForms", o.ProduceForms),
		Bool("includeInOutline", o.IncludeInOutline),
		Bool("pagesCount", o.PagesCount),
		Bool("isTableOfContent", o.IsTableOfContent),
		String("tocXsl", o.TOCXsl),
		Dict("replacements", o.Replacements),
		Nested("toc", o.TOC),
		Nested("header", o.Header),
		Nested("footer", o.Footer),
		Nested("load", o.Load),
		Nested("web", o.Web),
	}
}
