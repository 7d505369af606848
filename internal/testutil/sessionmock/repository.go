package sessionmock

import (
	"context"

	"pf-loan-generator/internal/domain/application"
)

// Repo is a function-backed mock that satisfies application.Repository.
type Repo struct {
	CreateFn func(ctx context.Context, s *application.Session) error
	GetFn    func(ctx context.Context, id string) (*application.Session, error)
	SaveFn   func(ctx context.Context, s *application.Session) error
}

func (m *Repo) Create(ctx context.Context, s *application.Session) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) Get(ctx context.Context, id string) (*application.Session, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, application.ErrSessionNotFound
}

func (m *Repo) Save(ctx context.Context, s *application.Session) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
