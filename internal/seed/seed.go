package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Email    string
	Password string
}

// Apply inserts demo users for manual testing. It is idempotent: a user
// whose email already exists is left untouched.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "alice@example.com", Password: "alice-demo"},
		{Email: "bob@example.com", Password: "bob-demo"},
	}

	for _, u := range users {
		if err := ensureUser(ctx, pool, u); err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (id, email, password_hash)
VALUES ($1, $2, $3)
ON CONFLICT (lower(email)) DO NOTHING
`
	_, err = pool.Exec(ctx, q, uuid.NewString(), u.Email, string(hashed))
	return err
}
