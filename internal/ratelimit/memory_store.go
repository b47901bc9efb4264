package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int64
	start time.Time
}

// MemoryStore keeps one window per client in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]window
}

func (s *MemoryStore) Hit(_ context.Context, key string, now time.Time, length time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.start.Add(length)) {
		w = window{count: 1, start: now}
	} else {
		w.count++
	}
	s.windows[key] = w
	return w.count, w.start, nil
}

// Sweep drops windows that have fully elapsed at now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time, length time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if !now.Before(w.start.Add(length)) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]window)}
}
