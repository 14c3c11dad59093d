package user

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches users. Cart and order history are
// stored inside the user row; ReplaceCartState is the only write path
// for them and succeeds only when the caller holds the latest version.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ReplaceCartState(ctx context.Context, id string, version int64, cart []domain.CartLine, orders []domain.Order) (*domain.User, error)
}
