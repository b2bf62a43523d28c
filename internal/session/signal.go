package session

import (
	"net/http"
	"slices"
	"sync"
)

// Invalidation describes the response that invalidated the session
type Invalidation struct {
	Method string
	Path   string
}

// Signal broadcasts session invalidations to subscribers. Emit runs subscribers
// synchronously in subscription order.
type Signal struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Invalidation)
}

// NewSignal returns a signal with no subscribers
func NewSignal() *Signal {
	return &Signal{subs: make(map[int]func(Invalidation))}
}

// Subscribe registers fn and returns a function that removes it
func (s *Signal) Subscribe(fn func(Invalidation)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Emit notifies every subscriber
func (s *Signal) Emit(inv Invalidation) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Invalidation), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(inv)
	}
}

// EmitRequest emits an invalidation for the request that received a 401.
// Its signature matches platform.WithUnauthorizedHandler.
func (s *Signal) EmitRequest(r *http.Request) {
	s.Emit(Invalidation{Method: r.Method, Path: r.URL.Path})
}
