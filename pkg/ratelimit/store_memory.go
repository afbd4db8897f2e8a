package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps request timestamps in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{requests: make(map[string][]time.Time)}
}

func (s *MemoryStore) CheckAndAdd(_ context.Context, key string, timestamp, cutoff time.Time, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := pruneBefore(s.requests[key], cutoff)
	if len(live) >= limit {
		s.requests[key] = live
		return false, len(live), nil
	}

	live = append(live, timestamp)
	s.requests[key] = live
	return true, len(live), nil
}

func (s *MemoryStore) Cleanup(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, stamps := range s.requests {
		live := pruneBefore(stamps, cutoff)
		if len(live) == 0 {
			delete(s.requests, key)
			removed++
			continue
		}
		s.requests[key] = live
	}
	return removed, nil
}

// pruneBefore returns the timestamps at or after cutoff. Timestamps
// arrive in insertion order so a single pass suffices.
func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	live := stamps[:0:0]
	for _, ts := range stamps {
		if !ts.Before(cutoff) {
			live = append(live, ts)
		}
	}
	return live
}
