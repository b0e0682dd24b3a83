package htmltox

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// WorkItem is a queued conversion request. Its result is assigned exactly
// once by the queue worker.
type WorkItem struct {
	ID            uuid.UUID
	Document      Document
	StreamFactory StreamFactory

	done     chan struct{}
	resolved atomic.Bool
	ok       bool
	err      error
}

// NewWorkItem creates an unresolved work item for doc.
func NewWorkItem(doc Document, factory StreamFactory) (*WorkItem, error) {
	if isNilDocument(doc) {
		return nil, argumentError("document", "cannot be nil")
	}
	return &WorkItem{
		ID:            uuid.New(),
		Document:      doc,
		StreamFactory: factory,
		done:          make(chan struct{}),
	}, nil
}

// Done is closed once the item is resolved.
func (w *WorkItem) Done() <-chan struct{} {
	return w.done
}

// Result returns the conversion outcome. It blocks until the item is resolved.
func (w *WorkItem) Result() (bool, error) {
	<-w.done
	return w.ok, w.err
}

// Wait blocks until the item is resolved or ctx is done. Giving up waiting
// does not stop a conversion that already started.
func (w *WorkItem) Wait(ctx context.Context) (bool, error) {
	select {
	case <-w.done:
		return w.ok, w.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// resolve assigns the result. A second call panics.
func (w *WorkItem) resolve(ok bool, err error) {
	if !w.resolved.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("htmltox: work item %s resolved twice", w.ID))
	}
	w.ok, w.err = ok, err
	close(w.done)
}

// QueueOption configures a WorkQueue.
type QueueOption func(*WorkQueue)

// WithQueueLogger sets the queue logger.
func WithQueueLogger(l *log.Logger) QueueOption {
	return func(q *WorkQueue) {
		if l != nil {
			q.logger = l
		}
	}
}

// WorkQueue runs submitted conversions one at a time, in submission order,
// on a single worker goroutine.
type WorkQueue struct {
	conv   Converter
	logger *log.Logger

	mu      sync.Mutex
	pending []*WorkItem
	closed  bool

	wake     chan struct{}
	finished chan struct{}
}

// NewWorkQueue starts a queue whose worker converts with conv.
func NewWorkQueue(conv Converter, opts ...QueueOption) *WorkQueue {
	if conv == nil {
		panic("htmltox: nil Converter in NewWorkQueue")
	}
	q := &WorkQueue{
		conv:     conv,
		logger:   discardLogger(),
		wake:     make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Submit enqueues a conversion and returns immediately.
func (q *WorkQueue) Submit(doc Document, factory StreamFactory) (*WorkItem, error) {
	item, err := NewWorkItem(doc, factory)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ErrQueueClosed
	}
	q.pending = append(q.pending, item)
	n := len(q.pending)
	q.mu.Unlock()

	q.logger.Debug("work item queued", "id", item.ID, "pending", n)
	q.signal()
	return item, nil
}

// Len returns the number of items waiting for the worker.
func (q *WorkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting items, lets the worker drain the queue, and waits
// for it to exit. It is safe to call more than once.
func (q *WorkQueue) Close() error {
	q.mu.Lock()
	already := q.closed
	q.closed = true
	q.mu.Unlock()

	if !already {
		q.signal()
	}
	<-q.finished
	return nil
}

func (q *WorkQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest item. It reports false once the queue is closed and
// empty.
func (q *WorkQueue) next() (*WorkItem, bool) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			item := q.pending[0]
			q.pending[0] = nil
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return item, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, false
		}
		<-q.wake
	}
}

func (q *WorkQueue) run() {
	defer close(q.finished)
	for {
		item, ok := q.next()
		if !ok {
			return
		}
		q.process(item)
	}
}

func (q *WorkQueue) process(item *WorkItem) {
	start := time.Now()
	ok, err := q.convert(item)
	item.resolve(ok, err)

	if err != nil {
		q.logger.Error("work item failed", "id", item.ID, "err", err)
		return
	}
	q.logger.Debug("work item done", "id", item.ID, "success", ok, "elapsed", time.Since(start).Round(time.Millisecond))
}

// convert shields the worker from panics in the converter.
func (q *WorkQueue) convert(item *WorkItem) (ok bool, err error) {
	defer recoverInto(&err)
	return q.conv.Convert(item.Document, item.StreamFactory)
}
