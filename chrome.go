package htmltox

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-htmltox/internal/fileutil"
	"github.com/alnah/go-htmltox/internal/handles"
	"github.com/alnah/go-htmltox/internal/process"
)

// Compile-time interface implementation checks.
var (
	_ PDFModule   = (*chromePDF)(nil)
	_ ImageModule = (*chromeImage)(nil)
)

// defaultTimeout bounds page loads when no timeout is configured.
const defaultTimeout = 30 * time.Second

// ChromeOption configures a Chrome engine.
type ChromeOption func(*chromeConfig)

type chromeConfig struct {
	timeout    time.Duration
	browserBin string
	noSandbox  bool
	logger     *log.Logger
}

// WithTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) ChromeOption {
	if d <= 0 {
		panic("htmltox: WithTimeout duration must be positive")
	}
	return func(c *chromeConfig) {
		c.timeout = d
	}
}

// WithBrowserBin uses the Chrome or Chromium binary at path instead of the
// one go-rod manages.
func WithBrowserBin(path string) ChromeOption {
	return func(c *chromeConfig) {
		c.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox (containers, CI, root).
func WithNoSandbox() ChromeOption {
	return func(c *chromeConfig) {
		c.noSandbox = true
	}
}

// WithChromeLogger sets the engine logger.
func WithChromeLogger(l *log.Logger) ChromeOption {
	return func(c *chromeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Chrome is a rendering engine backed by headless Chromium. It speaks the
// flat key/value settings protocol of the Module interfaces; use PDF and
// Image to obtain them. The browser is launched on first Initialize and
// lives until Close. Every conversion gets its own tab.
type Chrome struct {
	cfg chromeConfig

	// rendering is held shared by each Convert and exclusively by Close.
	// Lock order: rendering, then mu.
	rendering sync.RWMutex

	mu        sync.Mutex
	launcher  *launcher.Launcher
	browser   *rod.Browser
	initCount int

	registry *handles.Registry
}

// NewChrome creates a Chrome engine. No browser is launched yet.
func NewChrome(opts ...ChromeOption) *Chrome {
	cfg := chromeConfig{timeout: defaultTimeout, logger: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Chrome{cfg: cfg, registry: handles.New()}
}

// PDF returns the PDF module view of the engine.
func (c *Chrome) PDF() PDFModule {
	return &chromePDF{Chrome: c}
}

// Image returns the image module view of the engine.
func (c *Chrome) Image() ImageModule {
	return &chromeImage{Chrome: c}
}

// Close shuts the browser down and kills whatever is left of its process
// tree. It waits for conversions in flight to finish first. The engine can
// be initialized again afterwards.
func (c *Chrome) Close() error {
	c.rendering.Lock()
	defer c.rendering.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser == nil {
		return nil
	}

	err := c.browser.Close()
	c.browser = nil
	if c.launcher != nil {
		process.KillTree(c.launcher.PID())
		c.launcher.Kill()
		c.launcher.Cleanup()
		c.launcher = nil
	}
	return err
}

// ensureBrowser lazily launches and connects to the browser. Callers hold c.mu.
func (c *Chrome) ensureBrowser() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New()

	bin := c.cfg.browserBin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if c.cfg.noSandbox || os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.launcher = l
	c.browser = browser
	c.cfg.logger.Debug("browser connected", "control", u)
	return nil
}

func (c *Chrome) Initialize(_ int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureBrowser(); err != nil {
		c.cfg.logger.Error("initializing chrome engine", "err", err)
		return 0
	}
	c.initCount++
	return 1
}

// Terminate ends one Initialize bracket. The browser is kept for reuse.
func (c *Chrome) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initCount > 0 {
		c.initCount--
	}
}

func (c *Chrome) CreateGlobalSettings() Handle {
	return Handle(c.registry.Put(&globalBlock{settingsBlock: newSettingsBlock()}))
}

func (c *Chrome) SetGlobalSetting(settings Handle, name string, value *string) int {
	b, ok := handles.Get[*globalBlock](c.registry, uintptr(settings))
	if !ok {
		return 0
	}
	return b.set(name, value)
}

func (c *Chrome) GetGlobalSetting(settings Handle, name string) (string, error) {
	b, _ := handles.Get[*globalBlock](c.registry, uintptr(settings))
	return ReadSetting(name, func(buf []byte) int {
		if b == nil {
			return 0
		}
		return b.fill(name, buf)
	})
}

func (c *Chrome) DestroyGlobalSetting(settings Handle) int {
	if _, ok := handles.Get[*globalBlock](c.registry, uintptr(settings)); !ok {
		return 0
	}
	c.registry.Delete(uintptr(settings))
	return 1
}

func (c *Chrome) job(conv Handle) *chromeJob {
	j, _ := handles.Get[*chromeJob](c.registry, uintptr(conv))
	return j
}

func (c *Chrome) DestroyConverter(conv Handle) {
	if c.job(conv) != nil {
		c.registry.Delete(uintptr(conv))
	}
}

func (c *Chrome) Convert(conv Handle) bool {
	j := c.job(conv)
	if j == nil {
		return false
	}

	c.rendering.RLock()
	defer c.rendering.RUnlock()
	c.mu.Lock()
	browser := c.browser
	c.mu.Unlock()
	if browser == nil {
		j.fail(fmt.Sprintf("%v: engine not initialized", ErrBrowserConnect))
		return false
	}

	for _, key := range j.unsupportedKeys() {
		j.warn(fmt.Sprintf("setting %q is not supported by the chrome engine", key))
	}

	var (
		out []byte
		err error
	)
	if j.image {
		out, err = c.renderImage(browser, j)
	} else {
		out, err = c.renderPDF(browser, j)
	}
	if err != nil {
		j.fail(err.Error())
		return false
	}

	if path, ok := j.global.get("out"); ok && path != "" {
		if err := fileutil.WriteFile(path, out); err != nil {
			j.fail(fmt.Sprintf("writing %s: %v", path, err))
			return false
		}
	}

	j.complete(out)
	return true
}

func (c *Chrome) GetOutput(conv Handle, factory StreamFactory) error {
	j := c.job(conv)
	if j == nil {
		return fmt.Errorf("%w: unknown converter %#x", ErrInvalidArgument, uintptr(conv))
	}
	out := j.result()
	w, err := factory(len(out))
	if err != nil {
		return err
	}
	if w == nil {
		return argumentError("stream", "factory returned nil writer")
	}
	_, err = w.Write(out)
	return err
}

func (c *Chrome) GetHTTPErrorCode(conv Handle) int {
	if j := c.job(conv); j != nil {
		return j.httpErrorCode()
	}
	return 0
}

func (c *Chrome) GetPhaseCount(conv Handle) int {
	if j := c.job(conv); j != nil {
		return len(j.phases)
	}
	return 0
}

func (c *Chrome) GetCurrentPhase(conv Handle) int {
	if j := c.job(conv); j != nil {
		return j.currentPhase()
	}
	return 0
}

func (c *Chrome) GetPhaseDescription(conv Handle, phase int) string {
	j := c.job(conv)
	if j == nil || phase < 0 || phase >= len(j.phases) {
		return ""
	}
	return j.phases[phase]
}

func (c *Chrome) GetProgressDescription(conv Handle) string {
	if j := c.job(conv); j != nil {
		return j.progressDescription()
	}
	return ""
}

func (c *Chrome) SetPhaseChangedCallback(conv Handle, cb VoidCallback) {
	if j := c.job(conv); j != nil {
		j.withLock(func() { j.onPhase = cb })
	}
}

func (c *Chrome) SetProgressChangedCallback(conv Handle, cb VoidCallback) {
	if j := c.job(conv); j != nil {
		j.withLock(func() { j.onProgress = cb })
	}
}

func (c *Chrome) SetFinishedCallback(conv Handle, cb IntCallback) {
	if j := c.job(conv); j != nil {
		j.withLock(func() { j.onFinished = cb })
	}
}

func (c *Chrome) SetWarningCallback(conv Handle, cb StringCallback) {
	if j := c.job(conv); j != nil {
		j.withLock(func() { j.onWarning = cb })
	}
}

func (c *Chrome) SetErrorCallback(conv Handle, cb StringCallback) {
	if j := c.job(conv); j != nil {
		j.withLock(func() { j.onError = cb })
	}
}

// chromePDF is the PDF module view of Chrome.
type chromePDF struct {
	*Chrome
}

func (c *chromePDF) CreateObjectSettings() Handle {
	return Handle(c.registry.Put(&objectBlock{settingsBlock: newSettingsBlock()}))
}

func (c *chromePDF) SetObjectSetting(settings Handle, name string, value *string) int {
	b, ok := handles.Get[*objectBlock](c.registry, uintptr(settings))
	if !ok {
		return 0
	}
	return b.set(name, value)
}

func (c *chromePDF) GetObjectSetting(settings Handle, name string) (string, error) {
	b, _ := handles.Get[*objectBlock](c.registry, uintptr(settings))
	return ReadSetting(name, func(buf []byte) int {
		if b == nil {
			return 0
		}
		return b.fill(name, buf)
	})
}

func (c *chromePDF) DestroyObjectSetting(settings Handle) int {
	if _, ok := handles.Get[*objectBlock](c.registry, uintptr(settings)); !ok {
		return 0
	}
	c.registry.Delete(uintptr(settings))
	return 1
}

func (c *chromePDF) CreateConverter(global Handle, objects []Handle) Handle {
	g, ok := handles.Get[*globalBlock](c.registry, uintptr(global))
	if !ok {
		return 0
	}
	j := newChromeJob(false, g.settingsBlock, pdfPhases)
	for _, h := range objects {
		o, ok := handles.Get[*objectBlock](c.registry, uintptr(h))
		if !ok {
			return 0
		}
		j.objects = append(j.objects, &chromeObject{handle: h, settings: o.settingsBlock})
	}
	j.self = Handle(c.registry.Put(j))
	return j.self
}

func (c *chromePDF) AddObject(conv, object Handle, data []byte) {
	if j := c.job(conv); j != nil {
		j.setPayload(object, data)
	}
}

func (c *chromePDF) AddObjectString(conv, object Handle, data string) {
	c.AddObject(conv, object, []byte(data))
}

// chromeImage is the image module view of Chrome.
type chromeImage struct {
	*Chrome
}

func (c *chromeImage) CreateConverter(global Handle, data []byte) Handle {
	g, ok := handles.Get[*globalBlock](c.registry, uintptr(global))
	if !ok {
		return 0
	}
	j := newChromeJob(true, g.settingsBlock, imagePhases)
	j.imageData = data
	j.self = Handle(c.registry.Put(j))
	return j.self
}

// globalBlock and objectBlock keep global and object handles apart in the
// shared registry.
type (
	globalBlock struct{ *settingsBlock }
	objectBlock struct{ *settingsBlock }
)

// settingsBlock stores flat settings. "<key>.append" adds a list slot and
// "<key>[i]" fills slot i; any other key holds a plain value.
type settingsBlock struct {
	mu     sync.Mutex
	values map[string]string
	lists  map[string][]string
}

func newSettingsBlock() *settingsBlock {
	return &settingsBlock{values: make(map[string]string), lists: make(map[string][]string)}
}

func (b *settingsBlock) set(name string, value *string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if base, ok := strings.CutSuffix(name, ".append"); ok {
		b.lists[base] = append(b.lists[base], "")
		return 1
	}
	if base, i, ok := parseIndexedKey(name); ok {
		list := b.lists[base]
		if i >= len(list) || value == nil {
			return 0
		}
		list[i] = *value
		return 1
	}
	if value == nil {
		return 0
	}
	b.values[name] = *value
	return 1
}

func (b *settingsBlock) get(name string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if base, i, ok := parseIndexedKey(name); ok {
		list := b.lists[base]
		if i >= len(list) {
			return "", false
		}
		return list[i], true
	}
	v, ok := b.values[name]
	return v, ok
}

// fill copies a NUL-terminated value into buf, truncating to fit.
func (b *settingsBlock) fill(name string, buf []byte) int {
	v, ok := b.get(name)
	if !ok || len(buf) == 0 {
		return 0
	}
	n := copy(buf[:len(buf)-1], v)
	buf[n] = 0
	return 1
}

// pairs returns the key/value entries of a dictionary setting.
func (b *settingsBlock) pairs(base string) [][2]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out [][2]string
	for _, entry := range b.lists[base] {
		k, v, ok := strings.Cut(entry, "\n")
		if !ok || k == "" {
			continue
		}
		out = append(out, [2]string{k, v})
	}
	return out
}

// keys returns every plain and list key.
func (b *settingsBlock) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.values)+len(b.lists))
	for k := range b.values {
		out = append(out, k)
	}
	for k := range b.lists {
		out = append(out, k)
	}
	return out
}

// parseIndexedKey splits "name[3]" into "name" and 3.
func parseIndexedKey(name string) (string, int, bool) {
	if !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	open := strings.LastIndexByte(name, '[')
	if open <= 0 {
		return "", 0, false
	}
	i, err := strconv.Atoi(name[open+1 : len(name)-1])
	if err != nil || i < 0 {
		return "", 0, false
	}
	return name[:open], i, true
}
