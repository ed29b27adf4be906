package memory

import (
	"context"
	"time"

	"retail-storefront/internal/entity"
	"retail-storefront/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = &SessionRepository{}

// NewSessionRepository keeps sessions in process memory. Expired entries are
// purged every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionId string) (*entity.Session, error) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*entity.Session), nil
	}
	return nil, contract.ErrSessionNotFound
}

func (r *SessionRepository) Delete(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
