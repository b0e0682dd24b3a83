package htmltox

// Orientation of the printed page.
type Orientation string

const (
	Portrait  Orientation = "Portrait"
	Landscape Orientation = "Landscape"
)

// ColorMode of the printed document.
type ColorMode string

const (
	Color     ColorMode = "Color"
	Grayscale ColorMode = "Grayscale"
)

// PaperKind names a standard paper size.
type PaperKind string

const (
	A3      PaperKind = "A3"
	A4      PaperKind = "A4"
	A5      PaperKind = "A5"
	Letter  PaperKind = "Letter"
	Legal   PaperKind = "Legal"
	Tabloid PaperKind = "Tabloid"
)

// LoadErrorHandling selects how failed object loads are treated.
type LoadErrorHandling string

const (
	LoadErrorAbort  LoadErrorHandling = "abort"
	LoadErrorSkip   LoadErrorHandling = "skip"
	LoadErrorIgnore LoadErrorHandling = "ignore"
)

// SizeSettings sets the paper size. Width and Height override PaperSize and
// take a unit suffix, e.g. "210mm".
type SizeSettings struct {
	PaperSize *PaperKind `yaml:"paperSize,omitempty"`
	Width     *string    `yaml:"width,omitempty"`
	Height    *string    `yaml:"height,omitempty"`
}

func (s *SizeSettings) Fields() []Field {
	if s == nil {
		return nil
	}
	return []Field{
		Text("paperSize", s.PaperSize),
		String("width", s.Width),
		String("height", s.Height),
	}
}

// MarginSettings sets page margins with a unit suffix, e.g. "10mm".
type MarginSettings struct {
	Top    *string `yaml:"top,omitempty"`
	Bottom *string `yaml:"bottom,omitempty"`
	Left   *string `yaml:"left,omitempty"`
	Right  *string `yaml:"right,omitempty"`
}

func (m *MarginSettings) Fields() []Field {
	if m == nil {
		return nil
	}
	return []Field{
		String("top", m.Top),
		String("bottom", m.Bottom),
		String("left", m.Left),
		String("right", m.Right),
	}
}

// LoadSettings control how pages are fetched and scripted.
type LoadSettings struct {
	Username             *string            `yaml:"username,omitempty"`
	Password             *string            `yaml:"password,omitempty"`
	JSDelay              *int               `yaml:"jsDelay,omitempty"` // milliseconds
	ZoomFactor           *float64           `yaml:"zoomFactor,omitempty"`
	CustomHeaders        map[string]string  `yaml:"customHeaders,omitempty"`
	RepeatCustomHeaders  *bool              `yaml:"repeatCustomHeaders,omitempty"`
	Cookies              map[string]string  `yaml:"cookies,omitempty"`
	Post                 map[string]string  `yaml:"post,omitempty"`
	BlockLocalFileAccess *bool              `yaml:"blockLocalFileAccess,omitempty"`
	StopSlowScript       *bool              `yaml:"stopSlowScript,omitempty"`
	DebugJavascript      *bool              `yaml:"debugJavascript,omitempty"`
	LoadErrorHandling    *LoadErrorHandling `yaml:"loadErrorHandling,omitempty"`
	Proxy                *string            `yaml:"proxy,omitempty"`
	RunScript            *string            `yaml:"runScript,omitempty"`
}

func (l *LoadSettings) Fields() []Field {
	if l == nil {
		return nil
	}
	return []Field{
		String("username", l.Username),
		String("password", l.Password),
		Int("jsdelay", l.JSDelay),
		Float("zoomFactor", l.ZoomFactor),
		Dict("customHeaders", l.CustomHeaders),
		Bool("repeatCustomHeaders", l.RepeatCustomHeaders),
		Dict("cookies", l.Cookies),
		Dict("post", l.Post),
		Bool("blockLocalFileAccess", l.BlockLocalFileAccess),
		Bool("stopSlowScript", l.StopSlowScript),
		Bool("debugJavascript", l.DebugJavascript),
		Text("loadErrorHandling", l.LoadErrorHandling),
		String("proxy", l.Proxy),
		String("runScript", l.RunScript),
	}
}

// WebSettings control rendering features of the page.
type WebSettings struct {
	Background                 *bool   `yaml:"background,omitempty"`
	LoadImages                 *bool   `yaml:"loadImages,omitempty"`
	EnableJavascript           *bool   `yaml:"enableJavascript,omitempty"`
	EnableIntelligentShrinking *bool   `yaml:"enableIntelligentShrinking,omitempty"`
	MinimumFontSize            *int    `yaml:"minimumFontSize,omitempty"`
	PrintMediaType             *bool   `yaml:"printMediaType,omitempty"`
	DefaultEncoding            *string `yaml:"defaultEncoding,omitempty"`
	UserStyleSheet             *string `yaml:"userStyleSheet,omitempty"`
	EnablePlugins              *bool   `yaml:"enablePlugins,omitempty"`
}

func (w *WebSettings) Fields() []Field {
	if w == nil {
		return nil
	}
	return []Field{
		Bool("background", w.Background),
		Bool("loadImages", w.LoadImages),
		Bool("enableJavascript", w.EnableJavascript),
		Bool("enableIntelligentShrinking", w.EnableIntelligentShrinking),
		Int("minimumFontSize", w.MinimumFontSize),
		Bool("printMediaType", w.PrintMediaType),
		String("defaultEncoding", w.DefaultEncoding),
		String("userStyleSheet", w.UserStyleSheet),
		Bool("enablePlugins", w.EnablePlugins),
	}
}
