package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	cartJSON, err := json.Marshal(emptyIfNilLines(u.Cart))
	if err != nil {
		return nil, err
	}
	ordersJSON, err := json.Marshal(emptyIfNilOrders(u.Orders))
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO users (email, password_hash, cart, orders)
VALUES ($1, $2, $3, $4)
RETURNING id::text, email, password_hash, version, cart, orders, created_at
`
	return r.scanUser(r.pool.QueryRow(ctx, q, strings.ToLower(u.Email), u.PasswordHash, cartJSON, ordersJSON))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, email, password_hash, version, cart, orders, created_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, email, password_hash, version, cart, orders, created_at
FROM users
WHERE id = $1
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

// ReplaceCartState swaps the stored cart and order history for the
// given user, but only if version still matches. A miss is reported as
// ErrVersionConflict; callers reload and retry, and a reload of a
// deleted user surfaces ErrNotFound there.
func (r *postgresRepo) ReplaceCartState(ctx context.Context, id string, version int64, cart []domain.CartLine, orders []domain.Order) (*domain.User, error) {
	cartJSON, err := json.Marshal(emptyIfNilLines(cart))
	if err != nil {
		return nil, err
	}
	ordersJSON, err := json.Marshal(emptyIfNilOrders(orders))
	if err != nil {
		return nil, err
	}

	const q = `
UPDATE users
SET cart = $3,
    orders = $4,
    version = version + 1
WHERE id = $1 AND version = $2
RETURNING id::text, email, password_hash, version, cart, orders, created_at
`
	u, err := r.scanUser(r.pool.QueryRow(ctx, q, id, version, cartJSON, ordersJSON))
	if errors.Is(err, domain.ErrNotFound) {
		r.logger.Printf("user repo: replace id=%s version=%d conflict", id, version)
		return nil, domain.ErrVersionConflict
	}
	return u, err
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var cartJSON, ordersJSON []byte
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Version,
		&cartJSON,
		&ordersJSON,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: scan error=%v", err)
		return nil, err
	}
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &u.Cart); err != nil {
			r.logger.Printf("user repo: decode cart id=%s err=%v", u.ID, err)
			return nil, err
		}
	}
	if len(ordersJSON) > 0 {
		if err := json.Unmarshal(ordersJSON, &u.Orders); err != nil {
			r.logger.Printf("user repo: decode orders id=%s err=%v", u.ID, err)
			return nil, err
		}
	}
	return &u, nil
}

func emptyIfNilLines(lines []domain.CartLine) []domain.CartLine {
	if lines == nil {
		return []domain.CartLine{}
	}
	return lines
}

func emptyIfNilOrders(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}
