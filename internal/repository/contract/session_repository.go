package contract

import (
	"context"
	"errors"

	"retail-storefront/internal/entity"
)

// ErrSessionNotFound is returned by Get when the id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, sessionId string) (*entity.Session, error)
	Delete(ctx context.Context, sessionId string) error
}
