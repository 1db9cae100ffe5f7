package contract

import (
	"context"

	"bookgpt-be/pkg/store"
)

// SessionRepository is the pluggable session backing. Get returns a fresh
// default session when the id is absent; the caller decides when to persist.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
}
