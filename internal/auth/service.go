package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the operator. The tool has a single shared
// credential; its bcrypt hash comes from configuration.
type Service struct {
	store        *Store
	passwordHash []byte
}

func NewService(store *Store, passwordHash string) *Service {
	return &Service{store: store, passwordHash: []byte(passwordHash)}
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if len(s.passwordHash) == 0 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.store.Create(ctx)
}

// Logout revokes the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.Destroy(ctx, token)
}

// Validate reports whether a token belongs to a live session.
func (s *Service) Validate(ctx context.Context, token string) (bool, error) {
	return s.store.Validate(ctx, token)
}
