package memory

import (
	"context"
	"time"

	"bookgpt-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. The cache TTL is the
// only bound on session growth; that risk is accepted and documented for
// single-process deployments.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle for a day are purged; the sweep runs every 10 minutes.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Get hands out a clone so in-flight mutations only reach the store through
// Save. The persist-once-per-turn contract then holds regardless of caller
// locking.
func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session).Clone(), nil
	}
	return store.NewSession(sessionID), nil
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
