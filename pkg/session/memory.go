package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process gesture store.
type MemoryStore struct {
	mu       sync.RWMutex
	gestures map[string]Gesture
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{gestures: make(map[string]Gesture)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Gesture, error) {
	s.mu.RLock()
	g, ok := s.gestures[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if g.IsExpired() {
		s.mu.Lock()
		if cur, ok := s.gestures[id]; ok && cur.IsExpired() {
			delete(s.gestures, id)
		}
		s.mu.Unlock()
		return nil, nil
	}
	return &g, nil
}

func (s *MemoryStore) Set(ctx context.Context, g *Gesture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures[g.ID] = *g
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gestures, id)
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, g := range s.gestures {
		if now.After(g.ExpiresAt) {
			delete(s.gestures, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored gestures, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.gestures)
}

var _ Store = (*MemoryStore)(nil)
