package booking

import "context"

type Repository interface {
	Insert(ctx context.Context, b *Booking) error
}
