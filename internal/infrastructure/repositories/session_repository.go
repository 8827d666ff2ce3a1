package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis
type SessionRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (r *SessionRepositoryImpl) userKey(userID uint) string {
	return fmt.Sprintf("%suser:%d", r.prefix, userID)
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	key := r.prefix + session.ID
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := r.ttl
	if until := time.Until(session.ExpiresAt); until > 0 {
		ttl = until
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return err
	}

	// Index the session under its user so password reset can revoke all of
	// a user's sessions at once.
	if err := r.client.SAdd(ctx, r.userKey(session.UserID), session.ID).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, r.userKey(session.UserID), ttl).Err()
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := r.prefix + sessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	key := r.prefix + sessionID

	// Drop the user index entry alongside the session itself.
	if data, err := r.client.Get(ctx, key).Result(); err == nil {
		var session domain.Session
		if json.Unmarshal([]byte(data), &session) == nil {
			r.client.SRem(ctx, r.userKey(session.UserID), sessionID)
		}
	}

	return r.client.Del(ctx, key).Err()
}

// DeleteByUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	for _, id := range ids {
		if err := r.client.Del(ctx, r.prefix+id).Err(); err != nil {
			return err
		}
	}

	return r.client.Del(ctx, r.userKey(userID)).Err()
}
