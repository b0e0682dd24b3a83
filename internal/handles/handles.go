// Package handles maps opaque numeric handles to Go values, the way a native
// library hands out pointers. Handles are never reused within a registry and
// zero is never a valid handle.
package handles

import "sync"

// Registry stores values by handle. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	last   uintptr
	values map[uintptr]any
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{values: make(map[uintptr]any)}
}

// Put stores v and returns its handle.
func (r *Registry) Put(v any) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last++
	r.values[r.last] = v
	return r.last
}

// Delete removes h and reports whether it was present.
func (r *Registry) Delete(h uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[h]; !ok {
		return false
	}
	delete(r.values, h)
	return true
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Get returns the value stored under h if it has type T.
func Get[T any](r *Registry, h uintptr) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[h].(T)
	return v, ok
}
