package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retail-storefront/internal/entity"
	"retail-storefront/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.SessionRepository = &SessionRepository{}

// NewSessionRepository stores sessions as JSON documents with a sliding TTL,
// so the storefront can scale past one process when Redis is around.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionId string) string {
	return "storefront:session:" + sessionId
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(session.Id), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionId string) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(sessionId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, contract.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionId string) error {
	if err := r.client.Del(ctx, sessionKey(sessionId)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
