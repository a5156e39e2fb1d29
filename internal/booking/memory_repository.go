package booking

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu       sync.Mutex
	bookings []Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, *b)
	return nil
}

// All returns a copy of every stored booking in insertion order.
func (r *MemoryRepository) All() []Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Booking(nil), r.bookings...)
}
