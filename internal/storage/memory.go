package storage

import (
	"context"
	"sync"
)

// MemoryQuotaStore keeps pull counters in process memory. This is the
// developer-mode fallback: state lives for the process lifetime only,
// exactly like the reference deployment.
type MemoryQuotaStore struct {
	mu    sync.Mutex
	pulls map[quotaKey]int
}

type quotaKey struct {
	identity string
	day      string
}

// NewMemoryQuotaStore creates an empty in-memory quota store.
func NewMemoryQuotaStore() *MemoryQuotaStore {
	return &MemoryQuotaStore{pulls: make(map[quotaKey]int)}
}

func (s *MemoryQuotaStore) PullsUsed(ctx context.Context, identity, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Missing key reads as zero: implicit day rollover.
	return s.pulls[quotaKey{identity, day}], nil
}

func (s *MemoryQuotaStore) RecordPull(ctx context.Context, identity, day string, cap int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := quotaKey{identity, day}
	used := s.pulls[key]
	if used >= cap {
		return used, ErrQuotaExceeded
	}
	s.pulls[key] = used + 1
	return used + 1, nil
}

// PruneBefore drops counters older than the given ISO day. Called by the
// nightly janitor; ISO day strings compare lexicographically.
func (s *MemoryQuotaStore) PruneBefore(day string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.pulls {
		if key.day < day {
			delete(s.pulls, key)
			removed++
		}
	}
	return removed
}

// MemoryPickStore keeps the pick log in process memory.
type MemoryPickStore struct {
	mu    sync.Mutex
	picks []Pick
}

// NewMemoryPickStore creates an empty in-memory pick log.
func NewMemoryPickStore() *MemoryPickStore {
	return &MemoryPickStore{}
}

func (s *MemoryPickStore) Append(ctx context.Context, pick Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picks = append(s.picks, pick)
	return nil
}

func (s *MemoryPickStore) List(ctx context.Context) ([]Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Pick, len(s.picks))
	copy(out, s.picks)
	return out, nil
}
