package feed

import "sync"

// Store holds the most recently fetched items. The fetch goroutine writes,
// the UI loop reads.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func (s *Store) Set(items []Item) {
	cp := make([]Item, len(items))
	copy(cp, items)

	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()
}

// Items returns a copy of the current list.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]Item, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
