package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// sessionRecord is the JSON payload stored against a bearer token.
type sessionRecord struct {
	AuthUserID   string `json:"auth_user_id"`
	RefreshToken string `json:"refresh_token"`
}

// SessionStore implements domain.SessionStore on Redis. Entries are
// written without TTL: a token stays valid until an explicit Revoke.
type SessionStore struct {
	rdb *goredis.Client
}

func NewSessionStore(rdb *goredis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Issue(ctx context.Context, principalID uuid.UUID, refreshToken string) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(sessionRecord{
		AuthUserID:   principalID.String(),
		RefreshToken: refreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(token), payload, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	principalID, err := uuid.Parse(record.AuthUserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session principal ID: %w", err)
	}
	return principalID, nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	// DEL on a missing key is a no-op, which gives revoke its idempotency.
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}
