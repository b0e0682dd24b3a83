package htmltox

// CropSettings clip the rendered image, in pixels.
type CropSettings struct {
	Left   *int `yaml:"left,omitempty"`
	Top    *int `yaml:"top,omitempty"`
	Width  *int `yaml:"width,omitempty"`
	Height *int `yaml:"height,omitempty"`
}

func (c *CropSettings) Fields() []Field {
	if c == nil {
		return nil
	}
	return []Field{
		Int("left", c.Left),
		Int("top", c.Top),
		Int("width", c.Width),
		Int("height", c.Height),
	}
}

// ImageGlobalSettings configure an image conversion. The embedded Content is
// the page's HTML payload and is never flattened.
type ImageGlobalSettings struct {
	Content `yaml:",inline"`

	Crop        *CropSettings `yaml:"crop,omitempty"`
	Load        *LoadSettings `yaml:"load,omitempty"`
	Web         *WebSettings  `yaml:"web,omitempty"`
	Transparent *bool         `yaml:"transparent,omitempty"`
	In          *string       `yaml:"in,omitempty"`
	Out         *string       `yaml:"out,omitempty"`
	Format      *string       `yaml:"format,omitempty"` // png, jpg, webp
	ScreenWidth *int          `yaml:"screenWidth,omitempty"`
	SmartWidth  *bool         `yaml:"smartWidth,omitempty"`
	Quality     *int          `yaml:"quality,omitempty"`
}

func (g *ImageGlobalSettings) Fields() []Field {
	if g == nil {
		return nil
	}
	return []Field{
		Nested("crop", g.Crop),
		Nested("load", g.Load),
		Nested("web", g.Web),
		Bool("transparent", g.Transparent),
		String("in", g.In),
		String("out", g.Out),
		String("fmt", g.Format),
		Int("screenWidth", g.ScreenWidth),
		Bool("smartWidth", g.SmartWidth),
		Int("quality", g.Quality),
	}
}
