package out

import (
	"context"
	"time"

	"planr/internal/modules/goal/domain"
)

// KeyValueStore is the injected string storage the goal collection lives in.
type KeyValueStore interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RemoteGoals returns goals changed since the given instant. A nil slice
// means no updates.
type RemoteGoals interface {
	FetchSince(ctx context.Context, token string, since time.Time) ([]domain.Goal, error)
}

type TaskCleaner interface {
	CleanupTasks(ctx context.Context, goalID int) error
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
