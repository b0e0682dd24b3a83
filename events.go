package htmltox

import "sync"

// PhaseChangedEvent reports that the engine entered a new phase.
type PhaseChangedEvent struct {
	Document     Document
	PhaseCount   int
	CurrentPhase int
	Description  string
}

// ProgressChangedEvent carries the engine's textual progress.
type ProgressChangedEvent struct {
	Document    Document
	Description string
}

// FinishedEvent reports the outcome of a native conversion.
type FinishedEvent struct {
	Document Document
	Success  bool
}

// WarningEvent carries a warning message from the engine.
type WarningEvent struct {
	Document Document
	Message  string
}

// ErrorEvent carries an error message from the engine.
type ErrorEvent struct {
	Document Document
	Message  string
}

// eventHub holds the handlers subscribed to one event category.
type eventHub[E any] struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription[E]
}

type subscription[E any] struct {
	id int
	fn func(E)
}

// subscribe adds fn and returns a function removing it again.
func (h *eventHub[E]) subscribe(fn func(E)) func() {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.handlers = append(h.handlers, subscription[E]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.handlers {
				if s.id == id {
					h.handlers = append(h.handlers[:i:i], h.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

func (h *eventHub[E]) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers)
}

// emit calls every handler synchronously, in subscription order.
func (h *eventHub[E]) emit(e E) {
	h.mu.RLock()
	handlers := make([]func(E), len(h.handlers))
	for i, s := range h.handlers {
		handlers[i] = s.fn
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// events is the set of subscriptions shared by every converter.
type events struct {
	phaseChanged    eventHub[PhaseChangedEvent]
	progressChanged eventHub[ProgressChangedEvent]
	finished        eventHub[FinishedEvent]
	warning         eventHub[WarningEvent]
	errored         eventHub[ErrorEvent]
}

// OnPhaseChanged subscribes fn to phase changes. Call the returned function
// to unsubscribe. Handlers run on the converting goroutine and must not block.
func (e *events) OnPhaseChanged(fn func(PhaseChangedEvent)) (unsubscribe func()) {
	return e.phaseChanged.subscribe(fn)
}

// OnProgressChanged subscribes fn to progress changes.
func (e *events) OnProgressChanged(fn func(ProgressChangedEvent)) (unsubscribe func()) {
	return e.progressChanged.subscribe(fn)
}

// OnFinished subscribes fn to conversion completion.
func (e *events) OnFinished(fn func(FinishedEvent)) (unsubscribe func()) {
	return e.finished.subscribe(fn)
}

// OnWarning subscribes fn to engine warnings.
func (e *events) OnWarning(fn func(WarningEvent)) (unsubscribe func()) {
	return e.warning.subscribe(fn)
}

// OnError subscribes fn to engine errors.
func (e *events) OnError(fn func(ErrorEvent)) (unsubscribe func()) {
	return e.errored.subscribe(fn)
}
