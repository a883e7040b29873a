package sitestate

import (
	"context"
	"sync"

	"ellavera-site/pkg/logger"
)

// State is the lifecycle position of a Holder.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "uninitialized"
	}
}

// Holder owns one fetched value shared by every request. Reads never fetch:
// the value changes only through Load, Refresh and Set.
type Holder[T any] struct {
	name  string
	fetch func(ctx context.Context) (T, error)

	mu          sync.RWMutex
	state       State
	value       T
	err         error
	subscribers map[int]func(T)
	nextSub     int
}

func NewHolder[T any](name string, fetch func(ctx context.Context) (T, error)) *Holder[T] {
	return &Holder[T]{
		name:        name,
		fetch:       fetch,
		subscribers: make(map[int]func(T)),
	}
}

// Load performs the initial fetch. A failure leaves the holder in the error
// state with no value.
func (h *Holder[T]) Load(ctx context.Context) error {
	h.mu.Lock()
	h.state = StateLoading
	h.mu.Unlock()

	value, err := h.fetch(ctx)
	if err != nil {
		h.mu.Lock()
		h.state = StateError
		h.err = err
		h.mu.Unlock()
		logger.Error(err, "Failed to load site state", map[string]interface{}{"state": h.name})
		return err
	}

	h.Set(value)
	return nil
}

// Refresh re-fetches after a successful write. When a value is already held
// a failed fetch keeps it; otherwise it behaves like Load.
func (h *Holder[T]) Refresh(ctx context.Context) error {
	h.mu.RLock()
	ready := h.state == StateReady
	h.mu.RUnlock()

	if !ready {
		return h.Load(ctx)
	}

	value, err := h.fetch(ctx)
	if err != nil {
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		logger.Warn("Failed to refresh site state, keeping previous value", map[string]interface{}{
			"state": h.name,
			"error": err.Error(),
		})
		return err
	}

	h.Set(value)
	return nil
}

// Set replaces the value, marks the holder ready and notifies subscribers.
func (h *Holder[T]) Set(value T) {
	h.mu.Lock()
	h.value = value
	h.state = StateReady
	h.err = nil
	subscribers := make([]func(T), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		subscribers = append(subscribers, fn)
	}
	h.mu.Unlock()

	for _, fn := range subscribers {
		fn(value)
	}
}

// Get returns the value, or nil unless the holder is ready. Nested slices
// and maps are shared and must be treated as read-only.
func (h *Holder[T]) Get() *T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != StateReady {
		return nil
	}
	value := h.value
	return &value
}

func (h *Holder[T]) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Err returns the error of the last failed fetch, if any.
func (h *Holder[T]) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Subscribe registers fn for every new value. A ready holder calls fn with
// its current value right away.
func (h *Holder[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subscribers[id] = fn
	ready := h.state == StateReady
	value := h.value
	h.mu.Unlock()

	if ready {
		fn(value)
	}

	return func() {
		h.mu.Lock()
		delete(h.subscribers, id)
		h.mu.Unlock()
	}
}
