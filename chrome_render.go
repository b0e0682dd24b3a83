package htmltox

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-htmltox/internal/fileutil"
	"github.com/alnah/go-htmltox/internal/units"
)

const (
	defaultScreenWidth  = 1024
	defaultScreenHeight = 768
	defaultFontSize     = 12
	defaultFontName     = "Arial"
	grayscaleCSS        = "html { filter: grayscale(100%); }"
	pageBreak           = `<div style="break-after: page;"></div>`
)

// renderPDF loads the job's objects into one tab and prints it.
func (c *Chrome) renderPDF(browser *rod.Browser, j *chromeJob) ([]byte, error) {
	if len(j.objects) == 0 {
		return nil, argumentError("objects", "must not be empty")
	}
	first := j.objects[0].settings

	params, err := pdfParams(j.global, first)
	if err != nil {
		return nil, err
	}
	src, warnings, err := pdfSource(j.objects)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		j.warn(w)
	}

	j.enterPhase(0)
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()
	tp := page.Timeout(c.cfg.timeout)

	restore, err := preparePage(tp, first, first.flag("web.printMediaType", false))
	if err != nil {
		return nil, err
	}
	defer restore()

	if err := c.load(tp, j, src, first); err != nil {
		return nil, err
	}
	if err := decorate(tp, j.global); err != nil {
		return nil, err
	}
	j.setProgress(1, 2)

	j.enterPhase(1)
	reader, err := tp.PDF(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}
	return out, nil
}

// renderImage loads the job's page and captures a screenshot.
func (c *Chrome) renderImage(browser *rod.Browser, j *chromeJob) ([]byte, error) {
	req, fullPage, err := screenshotParams(j.global)
	if err != nil {
		return nil, err
	}

	var src pageSource
	switch in, _ := j.global.get("in"); {
	case len(j.imageData) > 0:
		src.html = string(j.imageData)
	case in != "":
		src.url = in
	default:
		return nil, ErrContentEmpty
	}

	j.enterPhase(0)
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()
	tp := page.Timeout(c.cfg.timeout)

	width := defaultScreenWidth
	if v, ok := j.global.get("screenWidth"); ok {
		if width, err = strconv.Atoi(v); err != nil || width <= 0 {
			return nil, argumentError("screenWidth", fmt.Sprintf("%q is not a positive integer", v))
		}
	}
	if err := tp.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            defaultScreenHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	if j.global.flag("transparent", false) {
		alpha := 0.0
		err := proto.EmulationSetDefaultBackgroundColorOverride{
			Color: &proto.DOMRGBA{A: &alpha},
		}.Call(tp)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
		}
	}

	restore, err := preparePage(tp, j.global, true)
	if err != nil {
		return nil, err
	}
	defer restore()

	if err := c.load(tp, j, src, j.global); err != nil {
		return nil, err
	}
	j.setProgress(1, 2)

	j.enterPhase(1)
	out, err := tp.Screenshot(fullPage, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out, nil
}

// pageSource is either a URL to navigate to or inline HTML.
type pageSource struct {
	url  string
	html string
}

// preparePage applies script, media and header settings before loading.
// The returned func removes the extra headers.
func preparePage(page *rod.Page, s *settingsBlock, printMedia bool) (func(), error) {
	if !s.flag("web.enableJavascript", true) {
		if err := (proto.EmulationSetScriptExecutionDisabled{Value: true}).Call(page); err != nil {
			return nil, fmt.Errorf("%w: disabling scripts: %v", ErrPageCreate, err)
		}
	}

	media := "screen"
	if printMedia {
		media = "print"
	}
	if err := (proto.EmulationSetEmulatedMedia{Media: media}).Call(page); err != nil {
		return nil, fmt.Errorf("%w: emulating media: %v", ErrPageCreate, err)
	}

	headers := s.pairs("load.customHeaders")
	if len(headers) == 0 {
		return func() {}, nil
	}
	dict := make([]string, 0, 2*len(headers))
	for _, kv := range headers {
		dict = append(dict, kv[0], kv[1])
	}
	cleanup, err := page.SetExtraHeaders(dict)
	if err != nil {
		return nil, fmt.Errorf("%w: setting headers: %v", ErrPageCreate, err)
	}
	return cleanup, nil
}

// load puts src into the page and waits for it, then honours load.jsdelay.
// Inline HTML is served from a temporary file so that file:// images and
// stylesheets it references are allowed to load.
func (c *Chrome) load(page *rod.Page, j *chromeJob, src pageSource, s *settingsBlock) error {
	target := src.url
	if target == "" {
		path, cleanup, err := fileutil.WriteTempFile([]byte(src.html), "html")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
		defer cleanup()
		target = fileURL(path)
	}

	if err := page.Navigate(target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPageLoad, target, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if src.url != "" && s.flag("web.enableJavascript", true) {
		j.setHTTPCode(responseStatus(page))
	}

	if v, ok := s.get("load.jsdelay"); ok {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return argumentError("load.jsdelay", fmt.Sprintf("%q is not a non-negative integer", v))
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
	c.cfg.logger.Debug("page loaded", "url", src.url, "bytes", len(src.html))
	return nil
}

// fileURL returns the file:// URL of an absolute path.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// responseStatus reads the HTTP status of the main document, or 0.
func responseStatus(page *rod.Page) int {
	res, err := page.Eval(`() => {
		const nav = performance.getEntriesByType("navigation")[0];
		return nav && nav.responseStatus ? nav.responseStatus : 0;
	}`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// decorate applies document-wide global settings to a loaded page.
func decorate(page *rod.Page, global *settingsBlock) error {
	if mode, _ := global.get("colorMode"); strings.EqualFold(mode, string(Grayscale)) {
		if err := page.AddStyleTag("", grayscaleCSS); err != nil {
			return fmt.Errorf("%w: applying color mode: %v", ErrRender, err)
		}
	}
	if title, ok := global.get("documentTitle"); ok {
		if _, err := page.Eval(`t => { document.title = t }`, title); err != nil {
			return fmt.Errorf("%w: setting title: %v", ErrRender, err)
		}
	}
	return nil
}

// pdfParams maps global and first-object settings to Chrome print options.
func pdfParams(global, object *settingsBlock) (*proto.PagePrintToPDF, error) {
	paper, _ := units.Paper(string(A4))
	if v, ok := global.get("size.paperSize"); ok {
		p, found := units.Paper(v)
		if !found {
			return nil, argumentError("size.paperSize", fmt.Sprintf("unknown paper %q", v))
		}
		paper = p
	}
	width, height := paper.Width, paper.Height
	for key, dst := range map[string]*float64{"size.width": &width, "size.height": &height} {
		if v, ok := global.get(key); ok && v != "" {
			in, err := units.Inches(v)
			if err != nil {
				return nil, argumentError(key, err.Error())
			}
			*dst = in
		}
	}

	params := &proto.PagePrintToPDF{
		PaperWidth:      Ptr(width),
		PaperHeight:     Ptr(height),
		PrintBackground: object.flag("web.background", true),
	}

	if v, _ := global.get("orientation"); strings.EqualFold(v, string(Landscape)) {
		params.Landscape = true
	}

	margins := []struct {
		key string
		dst **float64
	}{
		{"margin.top", &params.MarginTop},
		{"margin.bottom", &params.MarginBottom},
		{"margin.left", &params.MarginLeft},
		{"margin.right", &params.MarginRight},
	}
	for _, m := range margins {
		v, ok := global.get(m.key)
		if !ok || v == "" {
			continue
		}
		in, err := units.Inches(v)
		if err != nil {
			return nil, argumentError(m.key, err.Error())
		}
		*m.dst = Ptr(in)
	}

	if v, ok := object.get("load.zoomFactor"); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale < 0.1 || scale > 2 {
			return nil, argumentError("load.zoomFactor", fmt.Sprintf("%q is outside 0.1..2", v))
		}
		params.Scale = Ptr(scale)
	}

	replacements := object.pairs("replacements")
	header, hasHeader := headerFooterTemplate(object, "header", replacements)
	footer, hasFooter := headerFooterTemplate(object, "footer", replacements)
	if hasHeader || hasFooter {
		params.DisplayHeaderFooter = true
		params.HeaderTemplate = header
		params.FooterTemplate = footer
	}
	return params, nil
}

// placeholders maps header and footer variables to Chrome template classes.
var placeholders = strings.NewReplacer(
	"[page]", `<span class="pageNumber"></span>`,
	"[topage]", `<span class="totalPages"></span>`,
	"[date]", `<span class="date"></span>`,
	"[title]", `<span class="title"></span>`,
	"[doctitle]", `<span class="title"></span>`,
	"[webpage]", `<span class="url"></span>`,
)

// headerFooterTemplate builds a three-column template from
// <prefix>.left/center/right. It reports false when all three are empty.
func headerFooterTemplate(s *settingsBlock, prefix string, replacements [][2]string) (string, bool) {
	var cols [3]string
	empty := true
	for i, side := range []string{"left", "center", "right"} {
		v, _ := s.get(prefix + "." + side)
		if v == "" {
			continue
		}
		empty = false
		v = html.EscapeString(v)
		for _, kv := range replacements {
			v = strings.ReplaceAll(v, "["+html.EscapeString(kv[0])+"]", html.EscapeString(kv[1]))
		}
		cols[i] = placeholders.Replace(v)
	}
	if empty {
		return "<span></span>", false
	}

	size := defaultFontSize
	if v, ok := s.get(prefix + ".fontSize"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	font := defaultFontName
	if v, ok := s.get(prefix + ".fontName"); ok && v != "" {
		font = v
	}

	return fmt.Sprintf(`<div style="font-size: %dpx; font-family: %s; width: 100%%; display: flex; justify-content: space-between; padding: 0 0.4in;"><span>%s</span><span>%s</span><span>%s</span></div>`,
		size, html.EscapeString(font), cols[0], cols[1], cols[2]), true
}

var (
	headPattern = regexp.MustCompile(`(?is)<head[^>]*>(.*?)</head>`)
	bodyPattern = regexp.MustCompile(`(?is)<body[^>]*>(.*)</body>`)
)

// pdfSource decides what the tab loads. A single object with no payload and
// a page URL is navigated to; otherwise payloads are merged into one HTML
// document with a page break between objects.
func pdfSource(objects []*chromeObject) (pageSource, []string, error) {
	if len(objects) == 1 && len(objects[0].payload) == 0 {
		if addr, _ := objects[0].settings.get("page"); addr != "" {
			return pageSource{url: addr}, nil, nil
		}
	}

	var (
		parts    []string
		warnings []string
	)
	for i, o := range objects {
		if len(o.payload) == 0 {
			if addr, _ := o.settings.get("page"); addr != "" {
				warnings = append(warnings, fmt.Sprintf("object %d: page %s skipped, remote pages are only rendered on their own", i, addr))
			}
			continue
		}
		parts = append(parts, string(o.payload))
	}
	if len(parts) == 0 {
		return pageSource{}, warnings, ErrContentEmpty
	}
	return pageSource{html: combineHTML(parts)}, warnings, nil
}

// combineHTML merges documents: heads are concatenated, bodies are joined
// with page breaks. A part with no <body> is used whole.
func combineHTML(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}

	var head, body strings.Builder
	for i, p := range parts {
		if m := headPattern.FindStringSubmatch(p); m != nil {
			head.WriteString(m[1])
		}
		if i > 0 {
			body.WriteString(pageBreak)
		}
		if m := bodyPattern.FindStringSubmatch(p); m != nil {
			body.WriteString(m[1])
		} else {
			body.WriteString(p)
		}
	}
	return "<!DOCTYPE html><html><head>" + head.String() + "</head><body>" + body.String() + "</body></html>"
}

// screenshotParams maps image settings to a capture request. fullPage is
// false when a crop rectangle is set.
func screenshotParams(global *settingsBlock) (*proto.PageCaptureScreenshot, bool, error) {
	req := &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}

	format, _ := global.get("fmt")
	switch strings.ToLower(format) {
	case "", "png":
	case "jpg", "jpeg":
		req.Format = proto.PageCaptureScreenshotFormatJpeg
	case "webp":
		req.Format = proto.PageCaptureScreenshotFormatWebp
	default:
		return nil, false, argumentError("fmt", fmt.Sprintf("unsupported image format %q", format))
	}

	if v, ok := global.get("quality"); ok && req.Format != proto.PageCaptureScreenshotFormatPng {
		q, err := strconv.Atoi(v)
		if err != nil || q < 0 || q > 100 {
			return nil, false, argumentError("quality", fmt.Sprintf("%q is outside 0..100", v))
		}
		req.Quality = Ptr(q)
	}

	var rect [4]int
	for i, key := range []string{"crop.left", "crop.top", "crop.width", "crop.height"} {
		v, ok := global.get(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, false, argumentError(key, fmt.Sprintf("%q is not a non-negative integer", v))
		}
		rect[i] = n
	}
	if rect[2] > 0 && rect[3] > 0 {
		req.Clip = &proto.PageViewport{
			X:      float64(rect[0]),
			Y:      float64(rect[1]),
			Width:  float64(rect[2]),
			Height: float64(rect[3]),
			Scale:  1,
		}
		return req, false, nil
	}
	return req, true, nil
}

// flag reads a boolean setting, falling back to def when unset or malformed.
func (b *settingsBlock) flag(name string, def bool) bool {
	v, ok := b.get(name)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}
