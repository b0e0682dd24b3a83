// Package htmltox converts HTML to PDF documents and images through a
// rendering engine that speaks a flat key/value settings protocol.
//
// # Quick Start
//
// Create an engine, wrap it in a converter, and convert a document:
//
//	chrome := htmltox.NewChrome()
//	defer chrome.Close()
//
//	conv := htmltox.NewPDFConverter(chrome.PDF())
//	doc := htmltox.NewPDFDocument(&htmltox.PDFObjectSettings{
//	    Content: htmltox.Content{HTMLContent: htmltox.Ptr("<h1>Hello</h1>")},
//	})
//
//	var buf bytes.Buffer
//	ok, err := conv.Convert(doc, func(int) (io.Writer, error) { return &buf, nil })
//	if err != nil || !ok {
//	    log.Fatal("conversion failed", "err", err)
//	}
//
// Convert returns the engine's success flag. A false result without an error
// means the engine ran and reported failure; details arrive through the
// error and warning events.
//
// # Settings
//
// Documents are trees of typed settings. Before a conversion they are
// flattened into named engine settings: nested groups become dotted
// prefixes ("margin.top"), booleans become "true"/"false", floats keep two
// decimals, and dictionaries become "key.append" plus "key[i]" entries.
// Unset (nil) fields are never sent, so the engine keeps its defaults.
//
//	global := &htmltox.PDFGlobalSettings{
//	    Orientation: htmltox.Ptr(htmltox.Landscape),
//	    Margins:     &htmltox.MarginSettings{Top: htmltox.Ptr("10mm")},
//	}
//	for _, op := range htmltox.Flatten(global, htmltox.ScopeGlobal, "") {
//	    fmt.Println(op.Key)
//	}
//
// # Lifecycle
//
// Every native handle a conversion creates is released afterwards, whatever
// the outcome, and the engine is terminated. Release failures are joined
// into the returned error as ErrRelease.
// A converter can be reused; State reports where the last conversion ended.
//
// # Events
//
// Converters publish one event category per engine callback. Callbacks are
// registered only for categories with subscribers:
//
//	unsubscribe := conv.OnPhaseChanged(func(e htmltox.PhaseChangedEvent) {
//	    fmt.Printf("%d/%d %s\n", e.CurrentPhase+1, e.PhaseCount, e.Description)
//	})
//	defer unsubscribe()
//
// # Work Queue
//
// The engine is not reentrant. WorkQueue serializes conversions on one
// worker goroutine and returns a WorkItem per submission:
//
//	queue := htmltox.NewWorkQueue(conv)
//	defer queue.Close()
//
//	item, err := queue.Submit(doc, factory)
//	ok, err := item.Wait(ctx)
//
// # Browser Requirements
//
// The Chrome engine requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN or WithBrowserBin to specify
// a custom binary. The sandbox is disabled when CI=true, when a custom
// binary is set, or with WithNoSandbox.
package htmltox
