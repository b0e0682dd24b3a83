package htmltox

import (
	"errors"
	"fmt"
	"sync"
)

// Converter runs one conversion synchronously. It returns the engine's
// success flag; a false result is not an error.
type Converter interface {
	Convert(doc Document, factory StreamFactory) (bool, error)
}

// Compile-time interface implementation checks.
var (
	_ Converter = (*PDFConverter)(nil)
	_ Converter = (*ImageConverter)(nil)
)

// converterBase holds what PDF and image converters share: the module,
// event subscriptions, the processing document and the lifecycle state.
type converterBase struct {
	events

	module Module
	cfg    converterConfig

	// convertMu serializes conversions; the engine is not reentrant.
	convertMu sync.Mutex

	mu         sync.Mutex
	processing Document
	state      State
}

func newConverterBase(m Module, opts []Option) converterBase {
	cfg := defaultConverterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return converterBase{module: m, cfg: cfg}
}

// ProcessingDocument returns the document being converted, or nil.
func (c *converterBase) ProcessingDocument() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// State returns the lifecycle state of the current or last conversion.
func (c *converterBase) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *converterBase) setProcessing(doc Document) {
	c.mu.Lock()
	c.processing = doc
	c.mu.Unlock()
}

// advance moves the lifecycle to next. Illegal steps panic: they are bugs in
// the orchestration, not runtime conditions.
func (c *converterBase) advance(next State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !canTransition(c.state, next) {
		panic(fmt.Sprintf("htmltox: illegal state transition %s -> %s", c.state, next))
	}
	c.cfg.logger.Debug("conversion state", "from", c.state, "to", next)
	c.state = next
}

// begin prepares a conversion of doc and initializes the engine.
func (c *converterBase) begin(doc Document) error {
	c.mu.Lock()
	if c.state == StateTornDown {
		c.state = StateUninitialized
	}
	c.mu.Unlock()

	useGraphics := 0
	if c.cfg.useGraphics {
		useGraphics = 1
	}
	if c.module.Initialize(useGraphics) != 1 {
		return ErrInitialize
	}
	c.setProcessing(doc)
	c.advance(StateInitialized)
	return nil
}

// finish records the native result.
func (c *converterBase) finish(ok bool) {
	if ok {
		c.advance(StateConverted)
	} else {
		c.advance(StateFailed)
	}
}

// teardown terminates the engine and clears the processing document.
func (c *converterBase) teardown() {
	c.module.Terminate()
	c.setProcessing(nil)
	c.advance(StateTornDown)
}

// recoverInto converts a panic into an error joined with *err.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = errors.Join(*err, fmt.Errorf("internal error: %v", r))
	}
}

// PDFConverter converts PDF documents through a PDFModule.
type PDFConverter struct {
	converterBase
	pdf PDFModule
}

// NewPDFConverter creates a PDFConverter backed by m.
func NewPDFConverter(m PDFModule, opts ...Option) *PDFConverter {
	if m == nil {
		panic("htmltox: nil PDFModule in NewPDFConverter")
	}
	return &PDFConverter{converterBase: newConverterBase(m, opts), pdf: m}
}

// Convert runs one PDF conversion: initialize, configure, add content,
// convert, write output to a stream from factory, then release every handle
// and terminate the engine whatever the outcome. Output is requested only
// when the engine reports success.
func (c *PDFConverter) Convert(doc Document, factory StreamFactory) (ok bool, err error) {
	if isNilDocument(doc) {
		return false, argumentError("document", "cannot be nil")
	}
	pdfDoc, isPDF := doc.(*PDFDocument)
	if !isPDF {
		return false, fmt.Errorf("%w: %w: %T", ErrInvalidArgument, ErrUnsupportedDocument, doc)
	}
	if factory == nil {
		return false, argumentError("stream factory", "cannot be nil")
	}
	if len(pdfDoc.Objects) == 0 {
		return false, argumentError("object settings", "cannot be empty")
	}

	c.convertMu.Lock()
	defer c.convertMu.Unlock()

	if err := c.begin(doc); err != nil {
		return false, err
	}

	var hs *handleSet
	defer func() {
		if relErr := c.destroy(hs); relErr != nil {
			c.cfg.logger.Warn("releasing native handles", "err", relErr)
			err = errors.Join(err, relErr)
		}
		c.teardown()
	}()
	defer recoverInto(&err)

	hs, err = c.createConverter(pdfDoc)
	if err != nil {
		return false, err
	}
	c.advance(StateConfigured)

	for _, o := range hs.objects {
		if err := addContent(c.pdf, hs.converter, o.handle, o.settings); err != nil {
			return false, err
		}
	}
	c.registerEvents(hs.converter, c.subscribedCallbacks())

	c.advance(StateConverting)
	ok = c.pdf.Convert(hs.converter)
	c.finish(ok)
	c.cfg.logger.Debug("native conversion finished", "success", ok, "objects", len(hs.objects))

	if ok {
		if err := c.pdf.GetOutput(hs.converter, factory); err != nil {
			return ok, fmt.Errorf("writing output: %w", err)
		}
	}
	return ok, nil
}

// ImageConverter converts image documents through an ImageModule.
type ImageConverter struct {
	converterBase
	image ImageModule
}

// NewImageConverter creates an ImageConverter backed by m.
func NewImageConverter(m ImageModule, opts ...Option) *ImageConverter {
	if m == nil {
		panic("htmltox: nil ImageModule in NewImageConverter")
	}
	return &ImageConverter{converterBase: newConverterBase(m, opts), image: m}
}

// Convert runs one image conversion. The payload comes from the global
// settings' Content; when none is set the page named by In is rendered.
func (c *ImageConverter) Convert(doc Document, factory StreamFactory) (ok bool, err error) {
	if isNilDocument(doc) {
		return false, argumentError("document", "cannot be nil")
	}
	imgDoc, isImage := doc.(*ImageDocument)
	if !isImage {
		return false, fmt.Errorf("%w: %w: %T", ErrInvalidArgument, ErrUnsupportedDocument, doc)
	}
	if factory == nil {
		return false, argumentError("stream factory", "cannot be nil")
	}
	if imgDoc.Global == nil {
		return false, argumentError("global settings", "cannot be nil")
	}

	data, err := imageData(imgDoc.Global)
	if err != nil {
		return false, err
	}

	c.convertMu.Lock()
	defer c.convertMu.Unlock()

	if err := c.begin(doc); err != nil {
		return false, err
	}

	var global, conv Handle
	defer func() {
		var errs []error
		if global != 0 {
			errs = append(errs, release("global settings", global, func() int {
				return c.image.DestroyGlobalSetting(global)
			}))
		}
		if conv != 0 {
			errs = append(errs, release("converter", conv, func() int {
				c.image.DestroyConverter(conv)
				return 1
			}))
		}
		if relErr := errors.Join(errs...); relErr != nil {
			c.cfg.logger.Warn("releasing native handles", "err", relErr)
			err = errors.Join(err, relErr)
		}
		c.teardown()
	}()
	defer recoverInto(&err)

	global = c.image.CreateGlobalSettings()
	apply(c.cfg.logger, c.image.SetGlobalSetting, global, Flatten(imgDoc.Global, ScopeGlobal, ""))
	conv = c.image.CreateConverter(global, data)
	if conv == 0 {
		return false, fmt.Errorf("%w: engine returned no converter", ErrRender)
	}
	c.advance(StateConfigured)
	c.registerEvents(conv, c.subscribedCallbacks())

	c.advance(StateConverting)
	ok = c.image.Convert(conv)
	c.finish(ok)

	if ok {
		if err := c.image.GetOutput(conv, factory); err != nil {
			return ok, fmt.Errorf("writing output: %w", err)
		}
	}
	return ok, nil
}

// imageData resolves the image payload. A page given by In needs none.
func imageData(g *ImageGlobalSettings) ([]byte, error) {
	p, err := g.resolve()
	if errors.Is(err, ErrContentEmpty) && g.In != nil && *g.In != "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p.bytes(), nil
}
