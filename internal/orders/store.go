package orders

import (
	"slices"
	"sync"
	"time"

	"order-dashboard/internal/model"
)

// Store holds the full order collection fetched from the backend.
// The collection is only ever replaced as a whole.
type Store struct {
	mu        sync.RWMutex
	orders    []model.Order
	version   uint64
	updatedAt time.Time
}

// NewStore creates an empty order store.
func NewStore() *Store {
	return &Store{
		orders: []model.Order{},
	}
}

// Replace swaps in a new collection and returns the new version.
func (s *Store) Replace(orders []model.Order) uint64 {
	if orders == nil {
		orders = []model.Order{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = slices.Clone(orders)
	s.version++
	s.updatedAt = time.Now()

	return s.version
}

// All returns a copy of the current collection.
func (s *Store) All() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.orders)
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}

// Version returns the number of times the collection has been replaced.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// UpdatedAt returns when the collection was last replaced.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.updatedAt
}
