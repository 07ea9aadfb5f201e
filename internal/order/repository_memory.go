package order

import (
	"context"
	"sync"
)

// InMemoryRepository backs tests and key-less local runs.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*Order)}
}

func (r *InMemoryRepository) Save(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.CallID] = o
	return nil
}

func (r *InMemoryRepository) FindByCallID(_ context.Context, callID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[callID], nil
}
