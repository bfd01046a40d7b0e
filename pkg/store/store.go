// Package store implements the observable-store pattern the realtime layer
// is built on: mutations run through named methods on their owning usecase,
// which notify subscribers after the underlying write resolves (or after an
// optimistic local update). Subscribers re-derive their view from the source
// of truth instead of patching state by hand.
package store

import "sync"

type Listener func()

type Store struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

func New() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its unsubscribe func. The
// unsubscribe func is safe to call more than once.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Notify invokes every subscribed listener. Listeners run synchronously on
// the caller's goroutine, outside the store lock, so a listener may
// subscribe or unsubscribe without deadlocking.
func (s *Store) Notify() {
	s.mu.Lock()
	snapshot := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		snapshot = append(snapshot, l)
	}
	s.mu.Unlock()

	for _, l := range snapshot {
		l()
	}
}

func (s *Store) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
