package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreGetPut(t *testing.T) {
	s := New[string, int](10)

	if _, ok := s.Get("a"); ok {
		t.Error("empty store should miss")
	}

	s.Put("a", 1)
	v, ok := s.Get("a")
	if !ok || v != 1 {
		t.Errorf("expected hit with 1, got %d (ok=%v)", v, ok)
	}

	hits, misses := s.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
}

func TestStoreGetOrCompute(t *testing.T) {
	s := New[int, string](10)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrCompute(42, compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "value" {
			t.Fatalf("expected 'value', got %q", v)
		}
	}

	if calls != 1 {
		t.Errorf("expected a single compute call, got %d", calls)
	}
}

func TestStoreErrorsNotCached(t *testing.T) {
	s := New[int, string](10)
	boom := errors.New("boom")

	calls := 0
	failing := func() (string, error) {
		calls++
		return "", boom
	}

	for i := 0; i < 2; i++ {
		if _, err := s.GetOrCompute(1, failing); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("failed computes should not be cached, got %d calls", calls)
	}
	if s.Len() != 0 {
		t.Errorf("store should stay empty after failures, has %d entries", s.Len())
	}
}

func TestStoreEviction(t *testing.T) {
	s := New[int, int](3)

	for i := 0; i < 3; i++ {
		s.Put(i, i)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}

	// reaching the limit clears the table before inserting
	s.Put(3, 3)
	if s.Len() != 1 {
		t.Errorf("expected 1 entry after eviction, got %d", s.Len())
	}
	if _, ok := s.Get(0); ok {
		t.Error("evicted entry should miss")
	}
	if v, ok := s.Get(3); !ok || v != 3 {
		t.Error("latest entry should survive eviction")
	}
}

func TestStoreClear(t *testing.T) {
	s := New[string, int](10)
	s.Put("a", 1)
	s.Get("a")
	s.Get("b")

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
	hits, misses := s.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("expected zeroed stats, got %d / %d", hits, misses)
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	s := New[int, int](0)
	for i := 0; i < 100; i++ {
		s.Put(i, i)
	}
	if s.Len() != 100 {
		t.Errorf("default limit should hold 100 entries, got %d", s.Len())
	}
}

func TestStoreConcurrent(t *testing.T) {
	s := New[TrajectoryKey, int](64)
	key := TrajectoryKey{Mass: 1, Stiffness: 10, Omega: 5, Duration: 20, Points: 100}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = s.GetOrCompute(key, func() (int, error) { return 7, nil })
			}
		}()
	}
	wg.Wait()

	v, ok := s.Get(key)
	if !ok || v != 7 {
		t.Errorf("expected 7 after concurrent access, got %d (ok=%v)", v, ok)
	}
}
