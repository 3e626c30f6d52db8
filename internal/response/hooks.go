package response

import (
	"sync"
)

// HookFunc is a callback attached around a named point.
type HookFunc func() error

// HookRegistry holds before and after callbacks keyed by point name.
// Callbacks run in registration order.
type HookRegistry struct {
	before map[string][]HookFunc
	after  map[string][]HookFunc
	mu     sync.RWMutex
}

// NewHookRegistry creates an empty registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		before: make(map[string][]HookFunc),
		after:  make(map[string][]HookFunc),
	}
}

// RegisterBefore adds fn to run before point.
func (r *HookRegistry) RegisterBefore(point string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.before[point] = append(r.before[point], fn)
}

// RegisterAfter adds fn to run after point.
func (r *HookRegistry) RegisterAfter(point string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.after[point] = append(r.after[point], fn)
}

// Count returns the number of before and after callbacks on point.
func (r *HookRegistry) Count(point string) (before, after int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.before[point]), len(r.after[point])
}

// Run executes the before callbacks, then body, then the after callbacks.
// The first error stops the sequence and is returned.
func (r *HookRegistry) Run(point string, body func() error) error {
	r.mu.RLock()
	before := append([]HookFunc(nil), r.before[point]...)
	after := append([]HookFunc(nil), r.after[point]...)
	r.mu.RUnlock()

	for _, fn := range before {
		if err := fn(); err != nil {
			return err
		}
	}

	if body != nil {
		if err := body(); err != nil {
			return err
		}
	}

	for _, fn := range after {
		if err := fn(); err != nil {
			return err
		}
	}

	return nil
}
