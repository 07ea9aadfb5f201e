package order

import "context"

// Repository persists parsed orders for auditing and kitchen fallback when
// the POS is down.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByCallID(ctx context.Context, callID string) (*Order, error)
}
