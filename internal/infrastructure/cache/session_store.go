package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
)

const (
	revokedTokenKeyPrefix = "blacklist:session:"
	sessionEpochKeyPrefix = "session_epoch:"
)

// SessionStore lista negra de tokens (por jti) y época de sesión por usuario sobre Redis.
type SessionStore struct {
	cache *Client
}

// Ensure SessionStore implements auth.SessionStore
var _ auth.SessionStore = (*SessionStore)(nil)

// NewSessionStore crea el store. Con un cliente nil todas las operaciones son no-op.
func NewSessionStore(cache *Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Revoke agrega el token a la lista negra hasta que expire.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked indica si el token está en la lista negra.
func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Epoch época de sesión actual del usuario (0 si nunca cambió).
func (s *SessionStore) Epoch(ctx context.Context, userID int64) (int64, error) {
	return s.cache.Int(ctx, epochKey(userID))
}

// BumpEpoch invalida los tokens emitidos antes de ahora para el usuario.
func (s *SessionStore) BumpEpoch(ctx context.Context, userID int64) error {
	_, err := s.cache.Incr(ctx, epochKey(userID))
	return err
}

func epochKey(userID int64) string {
	return sessionEpochKeyPrefix + strconv.FormatInt(userID, 10)
}
