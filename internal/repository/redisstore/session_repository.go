package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookgpt-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "chat:session:"
	sessionTTL = 24 * time.Hour
)

// SessionRepository persists sessions as JSON in Redis for multi-process
// deployments.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.NewSession(sessionID), nil
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session store.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// A corrupt entry should not wedge the conversation forever.
		return store.NewSession(sessionID), nil
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+session.ID, raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
