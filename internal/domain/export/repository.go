package export

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	Save(ctx context.Context, r *Record) error
	GetByRecordID(ctx context.Context, recordID string) (*Record, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]Record, error)
}

// Locker guards a one-shot operation per key. Release must be safe to call
// exactly once on every exit path.
type Locker interface {
	// TryAcquire reports false without blocking when key is already held.
	TryAcquire(ctx context.Context, key string) (release func(), ok bool, err error)
	Held(ctx context.Context, key string) (bool, error)
}
