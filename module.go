package htmltox

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Handle is an opaque reference to an engine-owned resource: a global
// settings block, an object settings block, or a converter.
type Handle uintptr

// StreamFactory returns the writer that receives conversion output.
// length is the number of bytes the engine is about to write.
type StreamFactory func(length int) (io.Writer, error)

// Native callback signatures.
type (
	VoidCallback   func(conv Handle)
	IntCallback    func(conv Handle, value int)
	StringCallback func(conv Handle, message string)
)

// Module is the primitive function table of a rendering engine.
// Calls return 1 for success where an int status is returned.
// A Module is not reentrant; callers serialize access.
type Module interface {
	Initialize(useGraphics int) int
	Terminate()

	CreateGlobalSettings() Handle
	SetGlobalSetting(settings Handle, name string, value *string) int
	GetGlobalSetting(settings Handle, name string) (string, error)
	DestroyGlobalSetting(settings Handle) int

	DestroyConverter(conv Handle)
	Convert(conv Handle) bool
	GetOutput(conv Handle, factory StreamFactory) error
	GetHTTPErrorCode(conv Handle) int

	GetPhaseCount(conv Handle) int
	GetCurrentPhase(conv Handle) int
	GetPhaseDescription(conv Handle, phase int) string
	GetProgressDescription(conv Handle) string

	SetPhaseChangedCallback(conv Handle, cb VoidCallback)
	SetProgressChangedCallback(conv Handle, cb VoidCallback)
	SetFinishedCallback(conv Handle, cb IntCallback)
	SetWarningCallback(conv Handle, cb StringCallback)
	SetErrorCallback(conv Handle, cb StringCallback)
}

// PDFModule adds per-object settings and multi-object converters.
type PDFModule interface {
	Module

	CreateObjectSettings() Handle
	SetObjectSetting(settings Handle, name string, value *string) int
	GetObjectSetting(settings Handle, name string) (string, error)
	DestroyObjectSetting(settings Handle) int

	CreateConverter(global Handle, objects []Handle) Handle
	AddObject(conv, object Handle, data []byte)
	AddObjectString(conv, object Handle, data string)
}

// ImageModule creates single-page converters fed with the HTML payload.
type ImageModule interface {
	Module

	CreateConverter(global Handle, data []byte) Handle
}

// settingBufferSize bounds the value a get-setting call can return.
const settingBufferSize = 2048

var settingBuffers = sync.Pool{
	New: func() any {
		b := make([]byte, settingBufferSize)
		return &b
	},
}

// ReadSetting runs a native get-setting call against a pooled fixed-size
// buffer. fill writes a NUL-terminated value and returns 1 on success.
// The value is truncated at the first NUL byte.
func ReadSetting(name string, fill func(buf []byte) int) (string, error) {
	bp := settingBuffers.Get().(*[]byte)
	buf := *bp
	clear(buf)
	defer settingBuffers.Put(bp)

	if fill(buf) != 1 {
		return "", fmt.Errorf("%w: setting=%s", ErrGetSetting, name)
	}

	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}
