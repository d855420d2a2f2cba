// Package auth guards the API with the single operator credential and
// redis-backed session tokens.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps issued session tokens in Redis. Validation slides the
// expiry, so a session stays alive while it is being used.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(token string) string {
	return "session:" + token
}

// Create issues a fresh token.
func (s *Store) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), time.Now().UTC().Format(time.RFC3339), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate reports whether the token is live and renews its TTL.
func (s *Store) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := s.client.Get(ctx, s.key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.client.Expire(ctx, s.key(token), s.ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Destroy revokes a token.
func (s *Store) Destroy(ctx context.Context, token string) error {
	err := s.client.Del(ctx, s.key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// TTL exposes the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
