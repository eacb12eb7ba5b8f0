package store

import (
	"errors"
	"sync"

	"github.com/i474232898/covid-dashboard/internal/covid"
)

var (
	// ErrNotFound is returned when no dataset has been loaded yet.
	ErrNotFound = errors.New("no dataset loaded")
)

// MemoryStore is a concurrency-safe in-memory holder of the current dataset.
// Only the latest dataset is kept; older loads survive as LoadInfo records.
type MemoryStore struct {
	mu sync.RWMutex

	current *covid.Dataset
	history []covid.LoadInfo

	// max number of load records kept (0 = unlimited)
	maxHistory int
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, history is unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
	}
}

// SaveDataset replaces the current dataset and records the load.
func (s *MemoryStore) SaveDataset(ds *covid.Dataset) {
	if ds == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ds
	s.history = append(s.history, ds.Info)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		over := len(s.history) - s.maxHistory
		s.history = s.history[over:]
	}
}

// Current returns the most recently saved dataset.
func (s *MemoryStore) Current() (*covid.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotFound
	}
	return s.current, nil
}

// History returns the load records, oldest first.
func (s *MemoryStore) History() []covid.LoadInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]covid.LoadInfo, len(s.history))
	copy(out, s.history)
	return out
}
