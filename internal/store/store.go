// Package store provides a keyed in-memory store with cancelable scheduled
// deletion. It is the process-lifetime replacement for a database: materials,
// summaries and quiz sessions all live in instances of Store.
package store

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Store is a concurrency-safe map keyed by string. Deletion can be deferred
// with ScheduleDelete; a pending deletion is canceled by CancelDelete or by
// an explicit Delete of the same key.
type Store[T any] struct {
	clock clockwork.Clock

	mu     sync.RWMutex
	items  map[string]T
	timers map[string]clockwork.Timer
}

// New creates an empty store driven by the given clock.
func New[T any](clock clockwork.Clock) *Store[T] {
	return &Store[T]{
		clock:  clock,
		items:  make(map[string]T),
		timers: make(map[string]clockwork.Timer),
	}
}

// Get returns the value for key and whether it is present.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Put stores value under key, replacing any previous value.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Delete removes key immediately and cancels any pending scheduled deletion.
// It reports whether the key was present.
func (s *Store[T]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked(key)
	_, ok := s.items[key]
	delete(s.items, key)
	return ok
}

// Len returns the number of stored values.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Values returns a snapshot of all stored values in unspecified order.
func (s *Store[T]) Values() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// ScheduleDelete arranges for key to be removed after delay. Rescheduling a
// key resets its timer. The timer fires even if the value is replaced in the
// meantime; call CancelDelete to keep a rescheduled value alive.
func (s *Store[T]) ScheduleDelete(key string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked(key)
	s.timers[key] = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.items, key)
		delete(s.timers, key)
	})
}

// CancelDelete cancels a pending scheduled deletion for key, if any.
func (s *Store[T]) CancelDelete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked(key)
}

// Sweep removes every value for which keep returns false and returns the
// number of removed values.
func (s *Store[T]) Sweep(keep func(key string, value T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, v := range s.items {
		if keep(k, v) {
			continue
		}
		s.cancelTimerLocked(k)
		delete(s.items, k)
		removed++
	}
	return removed
}

func (s *Store[T]) cancelTimerLocked(key string) {
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}
