package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/marketsim/internal/domain"
)

// TraderStore is the authoritative, thread-safe registry of trader ledgers,
// keyed by trader id. Markets hold non-owning references into it.
type TraderStore struct {
	mu      sync.RWMutex
	traders map[string]*domain.Trader
}

// NewTraderStore creates an empty TraderStore.
func NewTraderStore() *TraderStore {
	return &TraderStore{
		traders: make(map[string]*domain.Trader),
	}
}

// Create adds a trader to the store. It returns
// domain.ErrTraderAlreadyExists if a trader with the same id exists.
func (s *TraderStore) Create(t *domain.Trader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.traders[t.TraderID]; exists {
		return domain.ErrTraderAlreadyExists
	}
	s.traders[t.TraderID] = t
	return nil
}

// Get retrieves a trader by id. It returns domain.ErrTraderNotFound if the
// trader does not exist.
func (s *TraderStore) Get(id string) (*domain.Trader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.traders[id]
	if !ok {
		return nil, domain.ErrTraderNotFound
	}
	return t, nil
}

// Exists returns true if a trader with the given id exists.
func (s *TraderStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.traders[id]
	return ok
}

// All returns every registered trader ordered by trader id.
func (s *TraderStore) All() []*domain.Trader {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Trader, 0, len(s.traders))
	for _, t := range s.traders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TraderID < out[j].TraderID
	})
	return out
}
