// Package cart mutates the per-user cart and turns it into order
// history entries at checkout. Every write is a whole-document
// load-mutate-store against the user row, serialized by the row's
// version counter: a stale read loses the conditional update and the
// operation retries on a fresh load.
package cart

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

var (
	// ErrLineNotFound indicates the product is not in the cart.
	ErrLineNotFound = errors.New("product not in cart")
	// ErrEmptyCart indicates checkout was attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotFound indicates the order position is outside the
	// history's 1-based bounds.
	ErrOrderNotFound = errors.New("order not found")
)

// maxAttempts bounds the optimistic retry loop. Contention on a single
// user's document is rare enough that hitting the bound means
// something is wrong.
const maxAttempts = 5

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ReplaceCartState(ctx context.Context, id string, version int64, cart []domain.CartLine, orders []domain.Order) (*domain.User, error)
}

type catalogClient interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	repo    userRepo
	catalog catalogClient
	now     func() time.Time
}

func New(repo userrepo.Repository, catalog catalogClient) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

// Add puts one unit of the product into the user's cart. The product
// snapshot is fetched once, at add time, and frozen in the line. Adding
// a product already present increments its line instead of duplicating it.
// The user load runs first, so an unknown user is reported even when
// the catalog is unreachable; the snapshot is cached across retries.
func (s *Service) Add(ctx context.Context, userID string, productID int64) (*domain.User, error) {
	var product *domain.Product
	return s.mutate(ctx, userID, func(u *domain.User) error {
		if line := findLine(u.Cart, productID); line != nil {
			line.Qty++
			return nil
		}
		if product == nil {
			p, err := s.catalog.Product(ctx, productID)
			if err != nil {
				return err
			}
			product = p
		}
		u.Cart = append(u.Cart, domain.CartLine{Product: *product, Qty: 1})
		return nil
	})
}

// Get returns the cart without side effects.
func (s *Service) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Cart, nil
}

// Increment raises the quantity of the product's line by one.
func (s *Service) Increment(ctx context.Context, userID string, productID int64) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) error {
		line := findLine(u.Cart, productID)
		if line == nil {
			return ErrLineNotFound
		}
		line.Qty++
		return nil
	})
}

// Decrement lowers the quantity of the product's line by one; at one,
// the line is removed entirely.
func (s *Service) Decrement(ctx context.Context, userID string, productID int64) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) error {
		for i := range u.Cart {
			if u.Cart[i].Product.ID != productID {
				continue
			}
			if u.Cart[i].Qty <= 1 {
				u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
			} else {
				u.Cart[i].Qty--
			}
			return nil
		}
		return ErrLineNotFound
	})
}

// PlaceOrder snapshots the current cart as one order history entry and
// empties the cart. The order record is never mutated afterwards.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) error {
		if len(u.Cart) == 0 {
			return ErrEmptyCart
		}
		u.Orders = append(u.Orders, domain.Order{
			Lines:    u.Cart,
			PlacedAt: s.now().UTC(),
		})
		u.Cart = []domain.CartLine{}
		return nil
	})
}

// History returns all order records, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Orders, nil
}

// OrderByPosition returns the order at the 1-based position, or
// ErrOrderNotFound when the position is outside [1, len(orders)].
func (s *Service) OrderByPosition(ctx context.Context, userID string, position int) (*domain.Order, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > len(u.Orders) {
		return nil, ErrOrderNotFound
	}
	order := u.Orders[position-1]
	return &order, nil
}

// mutate runs the load-apply-store cycle, retrying when a concurrent
// writer bumped the version between our read and write.
func (s *Service) mutate(ctx context.Context, userID string, apply func(u *domain.User) error) (*domain.User, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		u, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := apply(u); err != nil {
			return nil, err
		}
		updated, err := s.repo.ReplaceCartState(ctx, u.ID, u.Version, u.Cart, u.Orders)
		if errors.Is(err, domain.ErrVersionConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, lastErr
}

func findLine(cart []domain.CartLine, productID int64) *domain.CartLine {
	for i := range cart {
		if cart[i].Product.ID == productID {
			return &cart[i]
		}
	}
	return nil
}
