// Package auth issues and validates session tokens for registered
// users. Passwords are bcrypt-hashed before they reach the store; the
// signing secret is injected, never ambient.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidInput is returned when email or password is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the presented token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrAlreadyRegistered indicates the email is taken.
	ErrAlreadyRegistered = errors.New("email already registered")
)

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Service handles registration, login, and token verification.
type Service struct {
	repo       userRepo
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// New creates a Service. A zero ttl issues tokens without an expiry
// claim.
func New(repo userrepo.Repository, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		secret:     secret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register hashes the password and persists a new user with an empty
// cart and order history. The plaintext is never stored or logged.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password required", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Cart:         []domain.CartLine{},
		Orders:       []domain.Order{},
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed bearer token
// carrying the user's id.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: email and password required", ErrInvalidInput)
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return signToken(u.ID, s.secret, s.tokenTTL)
}

// Authenticate verifies a bearer token and returns the user id it
// carries. Missing, malformed, and badly signed tokens are all
// rejected the same way.
func (s *Service) Authenticate(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	userID, err := verifyToken(token, s.secret)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}
