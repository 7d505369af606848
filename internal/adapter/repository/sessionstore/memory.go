package sessionstore

import (
	"context"
	"sync"
	"time"

	"pf-loan-generator/internal/domain/application"
)

var _ application.Repository = (*MemoryRepository)(nil)

type memoryEntry struct {
	session   application.Session
	expiresAt time.Time
}

// MemoryRepository keeps sessions in process memory. Expired entries are
// dropped lazily on access.
type MemoryRepository struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memoryEntry
	now func() time.Time
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{ttl: ttl, m: map[string]memoryEntry{}, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, s *application.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.m[s.ID] = memoryEntry{session: *s, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*application.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[id]
	if !ok || !r.now().Before(e.expiresAt) {
		delete(r.m, id)
		return nil, application.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

// Save overwrites the form and slides the expiry forward.
func (r *MemoryRepository) Save(_ context.Context, s *application.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[s.ID]
	if !ok || !r.now().Before(e.expiresAt) {
		delete(r.m, s.ID)
		return application.ErrSessionNotFound
	}
	r.m[s.ID] = memoryEntry{session: *s, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryRepository) sweep() {
	now := r.now()
	for id, e := range r.m {
		if !now.Before(e.expiresAt) {
			delete(r.m, id)
		}
	}
}
