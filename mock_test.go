package htmltox

import (
	"bytes"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// mockModule records every Module call in order. Zero handles are never
// returned unless a test asks for it.
type mockModule struct {
	mu    sync.Mutex
	calls []string
	last  Handle

	initResult    int
	convertResult bool
	setStatus     int
	destroyStatus map[string]int
	panicOn       map[string]bool
	zeroConverter bool
	output        []byte
	outputErr     error

	settings map[Handle][]Operation
	payloads map[Handle][]byte

	phaseCB    VoidCallback
	progressCB VoidCallback
	finishedCB IntCallback
	warningCB  StringCallback
	errorCB    StringCallback

	// onConvert runs inside Convert, before the result is returned.
	onConvert func(conv Handle)
}

func newMockModule() *mockModule {
	return &mockModule{
		initResult:    1,
		convertResult: true,
		setStatus:     1,
		destroyStatus: make(map[string]int),
		panicOn:       make(map[string]bool),
		output:        []byte("%PDF-mock"),
		settings:      make(map[Handle][]Operation),
		payloads:      make(map[Handle][]byte),
	}
}

func (m *mockModule) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	panics := m.panicOn[name]
	m.mu.Unlock()
	if panics {
		panic("mock: " + name)
	}
}

func (m *mockModule) handle() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last++
	return m.last
}

// sequence returns recorded calls without the names in skip.
func (m *mockModule) sequence(skip ...string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.calls {
		if !slices.Contains(skip, c) {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockModule) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *mockModule) destroyResult(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.destroyStatus[name]; ok {
		return v
	}
	return 1
}

func (m *mockModule) setOp(scope Scope, h Handle, name string, value *string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[h] = append(m.settings[h], Operation{Scope: scope, Key: name, Value: value})
	return m.setStatus
}

func (m *mockModule) Initialize(int) int {
	m.record("Initialize")
	return m.initResult
}

func (m *mockModule) Terminate() { m.record("Terminate") }

func (m *mockModule) CreateGlobalSettings() Handle {
	m.record("CreateGlobalSettings")
	return m.handle()
}

func (m *mockModule) SetGlobalSetting(h Handle, name string, value *string) int {
	m.record("SetGlobalSetting")
	return m.setOp(ScopeGlobal, h, name, value)
}

func (m *mockModule) GetGlobalSetting(h Handle, name string) (string, error) {
	m.record("GetGlobalSetting")
	return "", nil
}

func (m *mockModule) DestroyGlobalSetting(Handle) int {
	m.record("DestroyGlobalSetting")
	return m.destroyResult("DestroyGlobalSetting")
}

func (m *mockModule) DestroyConverter(Handle) { m.record("DestroyConverter") }

func (m *mockModule) Convert(conv Handle) bool {
	m.record("Convert")
	if m.onConvert != nil {
		m.onConvert(conv)
	}
	return m.convertResult
}

func (m *mockModule) GetOutput(_ Handle, factory StreamFactory) error {
	m.record("GetOutput")
	if m.outputErr != nil {
		return m.outputErr
	}
	w, err := factory(len(m.output))
	if err != nil {
		return err
	}
	_, err = w.Write(m.output)
	return err
}

func (m *mockModule) GetHTTPErrorCode(Handle) int { return 0 }

func (m *mockModule) GetPhaseCount(Handle) int { return 3 }

func (m *mockModule) GetCurrentPhase(Handle) int { return 1 }

func (m *mockModule) GetPhaseDescription(_ Handle, p int) string {
	return []string{"load", "print", "done"}[p]
}

func (m *mockModule) GetProgressDescription(Handle) string { return "50%" }

func (m *mockModule) SetPhaseChangedCallback(_ Handle, cb VoidCallback) {
	m.record("SetPhaseChangedCallback")
	m.phaseCB = cb
}

func (m *mockModule) SetProgressChangedCallback(_ Handle, cb VoidCallback) {
	m.record("SetProgressChangedCallback")
	m.progressCB = cb
}

func (m *mockModule) SetFinishedCallback(_ Handle, cb IntCallback) {
	m.record("SetFinishedCallback")
	m.finishedCB = cb
}

func (m *mockModule) SetWarningCallback(_ Handle, cb StringCallback) {
	m.record("SetWarningCallback")
	m.warningCB = cb
}

func (m *mockModule) SetErrorCallback(_ Handle, cb StringCallback) {
	m.record("SetErrorCallback")
	m.errorCB = cb
}

// mockPDF adds the PDF-only calls.
type mockPDF struct {
	*mockModule
	objects []Handle
}

func newMockPDF() *mockPDF {
	return &mockPDF{mockModule: newMockModule()}
}

func (m *mockPDF) CreateObjectSettings() Handle {
	m.record("CreateObjectSettings")
	return m.handle()
}

func (m *mockPDF) SetObjectSetting(h Handle, name string, value *string) int {
	m.record("SetObjectSetting")
	return m.setOp(ScopeObject, h, name, value)
}

func (m *mockPDF) GetObjectSetting(Handle, string) (string, error) {
	m.record("GetObjectSetting")
	return "", nil
}

func (m *mockPDF) DestroyObjectSetting(Handle) int {
	m.record("DestroyObjectSetting")
	return m.destroyResult("DestroyObjectSetting")
}

func (m *mockPDF) CreateConverter(_ Handle, objects []Handle) Handle {
	m.record("CreateConverter")
	m.objects = objects
	if m.zeroConverter {
		return 0
	}
	return m.handle()
}

func (m *mockPDF) AddObject(_, object Handle, data []byte) {
	m.record("AddObject")
	m.mu.Lock()
	m.payloads[object] = data
	m.mu.Unlock()
}

func (m *mockPDF) AddObjectString(_, object Handle, data string) {
	m.record("AddObjectString")
	m.mu.Lock()
	m.payloads[object] = []byte(data)
	m.mu.Unlock()
}

// mockImage adds the image CreateConverter.
type mockImage struct {
	*mockModule
	data []byte
}

func newMockImage() *mockImage {
	return &mockImage{mockModule: newMockModule()}
}

func (m *mockImage) CreateConverter(_ Handle, data []byte) Handle {
	m.record("CreateConverter")
	m.data = data
	if m.zeroConverter {
		return 0
	}
	return m.handle()
}

// bufferFactory returns a StreamFactory writing into buf.
func bufferFactory(buf *bytes.Buffer) StreamFactory {
	return func(int) (io.Writer, error) { return buf, nil }
}

// newTestLogger logs everything to w.
func newTestLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.DebugLevel})
}
