package htmltox

import (
	"fmt"
	"slices"
	"sync"
)

var (
	pdfPhases   = []string{"Loading pages", "Printing pages", "Done"}
	imagePhases = []string{"Loading page", "Rendering", "Done"}
)

// chromeObject is one PDF object of a chrome job.
type chromeObject struct {
	handle   Handle
	settings *settingsBlock
	payload  []byte
}

// chromeJob is the state behind a chrome converter handle.
type chromeJob struct {
	image     bool
	global    *settingsBlock
	objects   []*chromeObject
	imageData []byte
	phases    []string

	mu       sync.Mutex
	phase    int
	progress string
	httpCode int
	output   []byte

	onPhase    VoidCallback
	onProgress VoidCallback
	onFinished IntCallback
	onWarning  StringCallback
	onError    StringCallback

	// self is the handle passed back to callbacks.
	self Handle
}

func newChromeJob(image bool, global *settingsBlock, phases []string) *chromeJob {
	return &chromeJob{image: image, global: global, phases: phases}
}

func (j *chromeJob) withLock(fn func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	fn()
}

func (j *chromeJob) setPayload(object Handle, data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, o := range j.objects {
		if o.handle == object {
			o.payload = data
			return
		}
	}
}

func (j *chromeJob) currentPhase() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.phase
}

func (j *chromeJob) progressDescription() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progress
}

func (j *chromeJob) httpErrorCode() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.httpCode
}

func (j *chromeJob) result() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.output
}

// Callbacks run without j.mu held so handlers can query the module.

func (j *chromeJob) enterPhase(phase int) {
	j.mu.Lock()
	j.phase = phase
	cb := j.onPhase
	j.mu.Unlock()
	if cb != nil {
		cb(j.self)
	}
}

func (j *chromeJob) setProgress(done, total int) {
	j.mu.Lock()
	if total <= 0 {
		total = 1
	}
	j.progress = fmt.Sprintf("%d%%", done*100/total)
	cb := j.onProgress
	j.mu.Unlock()
	if cb != nil {
		cb(j.self)
	}
}

func (j *chromeJob) setHTTPCode(code int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if code >= 400 {
		j.httpCode = code
	}
}

func (j *chromeJob) warn(msg string) {
	j.mu.Lock()
	cb := j.onWarning
	j.mu.Unlock()
	if cb != nil {
		cb(j.self, msg)
	}
}

func (j *chromeJob) fail(msg string) {
	j.mu.Lock()
	onErr, onFinished := j.onError, j.onFinished
	j.mu.Unlock()
	if onErr != nil {
		onErr(j.self, msg)
	}
	if onFinished != nil {
		onFinished(j.self, 0)
	}
}

func (j *chromeJob) complete(out []byte) {
	j.mu.Lock()
	j.output = out
	j.progress = "100%"
	cb := j.onFinished
	j.mu.Unlock()
	j.enterPhase(len(j.phases) - 1)
	if cb != nil {
		cb(j.self, 1)
	}
}

var (
	pdfGlobalKeys = []string{
		"size.paperSize", "size.width", "size.height", "orientation", "colorMode",
		"documentTitle", "out",
		"margin.top", "margin.bottom", "margin.left", "margin.right",
	}
	pdfObjectKeys = []string{
		"page", "replacements", "web.background", "web.printMediaType",
		"web.enableJavascript", "load.zoomFactor", "load.jsdelay", "load.customHeaders",
		"header.fontSize", "header.fontName", "header.left", "header.center", "header.right",
		"footer.fontSize", "footer.fontName", "footer.left", "footer.center", "footer.right",
	}
	imageGlobalKeys = []string{
		"fmt", "quality", "screenWidth", "in", "out", "transparent",
		"crop.left", "crop.top", "crop.width", "crop.height",
		"web.enableJavascript", "load.jsdelay", "load.customHeaders",
	}
)

// unsupportedKeys lists settings the engine accepts but cannot honour, sorted.
func (j *chromeJob) unsupportedKeys() []string {
	var out []string
	if j.image {
		out = append(out, unknownKeys(j.global, imageGlobalKeys, "")...)
	} else {
		out = append(out, unknownKeys(j.global, pdfGlobalKeys, "")...)
		seen := make(map[string]bool)
		for _, o := range j.objects {
			for _, k := range unknownKeys(o.settings, pdfObjectKeys, "object.") {
				if !seen[k] {
					seen[k] = true
					out = append(out, k)
				}
			}
		}
	}
	slices.Sort(out)
	return out
}

func unknownKeys(b *settingsBlock, known []string, prefix string) []string {
	var out []string
	for _, k := range b.keys() {
		if !slices.Contains(known, k) {
			out = append(out, prefix+k)
		}
	}
	return out
}
