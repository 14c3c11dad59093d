package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests against a real Postgres. Set TEST_DB_DSN to run them.

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func uniqueEmail() string {
	return fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
}

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	email := uniqueEmail()

	created, err := repo.Create(ctx, domain.User{Email: email, PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Version != 1 {
		t.Fatalf("unexpected user %+v", created)
	}
	if len(created.Cart) != 0 || len(created.Orders) != 0 {
		t.Fatalf("new user not empty %+v", created)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != email {
		t.Fatalf("email mismatch %q", byID.Email)
	}

	byEmail, err := repo.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("id mismatch %q vs %q", byEmail.ID, created.ID)
	}

	if _, err := repo.Create(ctx, domain.User{Email: email, PasswordHash: "hash"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate email: expected ErrAlreadyExists, got %v", err)
	}
}

func TestPostgres_ReplaceCartStateVersioning(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.User{Email: uniqueEmail(), PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cart := []domain.CartLine{{Product: domain.Product{ID: 7, Title: "Backpack"}, Qty: 2}}
	updated, err := repo.ReplaceCartState(ctx, created.ID, created.Version, cart, nil)
	if err != nil {
		t.Fatalf("ReplaceCartState: %v", err)
	}
	if updated.Version != created.Version+1 {
		t.Fatalf("version not bumped: %d", updated.Version)
	}
	if len(updated.Cart) != 1 || updated.Cart[0].Qty != 2 {
		t.Fatalf("cart not stored %+v", updated.Cart)
	}

	// A write with the stale version must lose.
	_, err = repo.ReplaceCartState(ctx, created.ID, created.Version, nil, nil)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestPostgres_GetMissingUser(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
