package htmltox

import (
	"errors"
	"fmt"
)

// objectHandle pairs an object settings handle with the settings it was
// configured from.
type objectHandle struct {
	handle   Handle
	settings *PDFObjectSettings
}

// handleSet is every native handle owned by one PDF conversion.
type handleSet struct {
	converter Handle
	global    Handle
	objects   []objectHandle
}

func (hs *handleSet) objectHandles() []Handle {
	out := make([]Handle, len(hs.objects))
	for i, o := range hs.objects {
		out[i] = o.handle
	}
	return out
}

// createConverter builds the global settings, object settings and converter
// handles of doc. On error the partially built set is returned so the caller
// can release it.
func (c *PDFConverter) createConverter(doc *PDFDocument) (*handleSet, error) {
	if doc == nil {
		return nil, argumentError("document", "cannot be nil")
	}

	hs := &handleSet{}
	hs.global = c.pdf.CreateGlobalSettings()
	apply(c.cfg.logger, c.pdf.SetGlobalSetting, hs.global, Flatten(doc.GlobalSettings(), ScopeGlobal, ""))

	for _, obj := range doc.Objects {
		if obj == nil {
			continue
		}
		h := c.pdf.CreateObjectSettings()
		hs.objects = append(hs.objects, objectHandle{handle: h, settings: obj})
		apply(c.cfg.logger, c.pdf.SetObjectSetting, h, Flatten(obj, ScopeObject, ""))
	}

	hs.converter = c.pdf.CreateConverter(hs.global, hs.objectHandles())
	if hs.converter == 0 {
		return hs, fmt.Errorf("%w: engine returned no converter", ErrRender)
	}
	return hs, nil
}

// destroy releases hs: object settings, then global settings, then the
// converter. Every release is attempted; failures (non-success status or
// panic) are joined into one error matching ErrRelease.
func (c *PDFConverter) destroy(hs *handleSet) error {
	if hs == nil {
		return nil
	}

	var errs []error
	for _, o := range hs.objects {
		errs = append(errs, release("object settings", o.handle, func() int {
			return c.pdf.DestroyObjectSetting(o.handle)
		}))
	}
	if hs.global != 0 {
		errs = append(errs, release("global settings", hs.global, func() int {
			return c.pdf.DestroyGlobalSetting(hs.global)
		}))
	}
	if hs.converter != 0 {
		errs = append(errs, release("converter", hs.converter, func() int {
			c.pdf.DestroyConverter(hs.converter)
			return 1
		}))
	}
	return errors.Join(errs...)
}

// release runs one destroy call, turning a failed status or a panic into an
// error instead of letting it skip the remaining releases.
func release(kind string, h Handle, fn func() int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s %#x: panic: %v", ErrRelease, kind, uintptr(h), r)
		}
	}()
	if status := fn(); status != 1 {
		return fmt.Errorf("%w: %s %#x: status %d", ErrRelease, kind, uintptr(h), status)
	}
	return nil
}
