package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created    *domain.User
	createErr  error
	byEmail    *domain.User
	byEmailErr error
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	out := u
	out.ID = "new-id"
	s.created = &out
	return &out, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.byEmail, s.byEmailErr
}

func testService(repo userRepo) *Service {
	return &Service{
		repo:       repo,
		secret:     []byte("test-secret"),
		tokenTTL:   time.Hour,
		bcryptCost: bcrypt.MinCost,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := testService(repo)

	u, err := svc.Register(context.Background(), "User@Example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "user@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if repo.created.PasswordHash == "hunter2" {
		t.Fatal("plaintext stored as hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if len(repo.created.Cart) != 0 || len(repo.created.Orders) != 0 {
		t.Fatalf("new user should start empty: %+v", repo.created)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := testService(&stubUserRepo{})

	if _, err := svc.Register(context.Background(), "", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing email: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.c", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing password: expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := testService(&stubUserRepo{createErr: domain.ErrAlreadyExists})

	_, err := svc.Register(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubUserRepo{byEmail: &domain.User{ID: "u-42", Email: "a@b.c", PasswordHash: string(hashed)}}
	svc := testService(repo)

	token, err := svc.Login(context.Background(), "a@b.c", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || strings.Count(token, ".") != 2 {
		t.Fatalf("expected a signed JWT, got %q", token)
	}

	userID, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if userID != "u-42" {
		t.Fatalf("decoded identity mismatch: got %q want %q", userID, "u-42")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	repo := &stubUserRepo{byEmail: &domain.User{ID: "u-42", PasswordHash: string(hashed)}}
	svc := testService(repo)

	token, err := svc.Login(context.Background(), "a@b.c", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if token != "" {
		t.Fatalf("token issued on bad password: %q", token)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := testService(&stubUserRepo{byEmailErr: domain.ErrNotFound})

	_, err := svc.Login(context.Background(), "ghost@b.c", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := testService(&stubUserRepo{})

	for _, tok := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := svc.Authenticate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	svc := testService(&stubUserRepo{})

	expired, err := signToken("u-42", svc.secret, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Authenticate(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	svc := testService(&stubUserRepo{})

	foreign, err := signToken("u-42", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Authenticate(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
