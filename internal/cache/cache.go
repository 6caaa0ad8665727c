// Package cache memoizes analysis results by their full input-parameter
// tuple. Both core operations are pure, so identical keys always map to
// identical values and callers may share one store across goroutines.
package cache

import "sync"

// TrajectoryKey is the complete input tuple of a trajectory solve.
type TrajectoryKey struct {
	Mass      float64
	Damping   float64
	Stiffness float64
	Amplitude float64
	Omega     float64
	Position  float64
	Velocity  float64
	Duration  float64
	Points    int
}

// ResponseKey is the complete input tuple of a frequency-response analysis.
type ResponseKey struct {
	Mass      float64
	Damping   float64
	Stiffness float64
	Amplitude float64
	Omega     float64
	MaxFreq   float64
	Points    int
}

// Store is a bounded concurrent memo table. When the entry count reaches
// the limit the table is cleared wholesale; results are cheap to recompute
// and this keeps eviction policy out of the core.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	limit   int
	entries map[K]V
	hits    int
	misses  int
}

func New[K comparable, V any](limit int) *Store[K, V] {
	if limit <= 0 {
		limit = 128
	}
	return &Store[K, V]{
		limit:   limit,
		entries: make(map[K]V),
	}
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	return v, ok
}

func (s *Store[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.limit {
		s.entries = make(map[K]V)
	}
	s.entries[key] = value
}

// GetOrCompute returns the memoized value for key, invoking compute on a
// miss. Errors are not cached.
func (s *Store[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		return v, err
	}
	s.Put(key, v)
	return v, nil
}

func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[K]V)
	s.hits = 0
	s.misses = 0
}

// Stats reports lookup hits and misses since the last Clear.
func (s *Store[K, V]) Stats() (hits, misses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses
}
