// Package session implements server-side browser sessions for the HTML
// surface. A session is an opaque uuid token stored in an HttpOnly cookie,
// mapped in Redis to the authenticated user.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wishlist/internal/cache"
)

const (
	sessionKeyPrefix = "session:"
	// TTL is how long a session lives without a new login.
	TTL = 24 * time.Hour
)

// ErrNoSession is returned when a token does not resolve to a live session.
var ErrNoSession = errors.New("session not found")

// Session is the server-side state bound to one browser.
type Session struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
}

// Store defines session storage operations.
type Store interface {
	Create(ctx context.Context, userID uint, userName string) (token string, err error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	cache *cache.Client
}

// NewStore creates a Redis-backed session store.
func NewStore(cache *cache.Client) Store {
	return &redisStore{cache: cache}
}

// Create issues a fresh opaque token and stores the session under it.
func (s *redisStore) Create(ctx context.Context, userID uint, userName string) (string, error) {
	token := uuid.New().String()
	payload, err := json.Marshal(&Session{UserID: userID, UserName: userName})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, payload, TTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token. Expired and unknown tokens both yield ErrNoSession.
func (s *redisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return nil, ErrNoSession
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Delete ends the session. Deleting an unknown token is a no-op.
func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
