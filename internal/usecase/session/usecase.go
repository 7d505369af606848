package session

import (
	"context"
	"fmt"
	"time"

	"pf-loan-generator/internal/domain/application"
	"pf-loan-generator/internal/usecase/letter"
	"pf-loan-generator/pkg/id"
)

type Usecase struct {
	repo        application.Repository
	boilerplate letter.Boilerplate
	now         func() time.Time
}

func NewUsecase(r application.Repository, bp letter.Boilerplate) *Usecase {
	return &Usecase{repo: r, boilerplate: bp, now: time.Now}
}

// WithClock replaces the clock used for the issue date.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Boilerplate() letter.Boilerplate { return u.boilerplate }

type SessionDTO struct {
	ID        string                `json:"id"`
	Form      application.FormState `json:"form"`
	Derived   letter.Derived        `json:"derived"`
	CreatedAt time.Time             `json:"created_at"`
}

func toDTO(s *application.Session) *SessionDTO {
	return &SessionDTO{
		ID:        s.ID,
		Form:      s.Form,
		Derived:   letter.Derive(s.Form, s.IssueDate),
		CreatedAt: s.CreatedAt,
	}
}

// Start opens a session with default form values. The issue date is taken
// here and never recomputed.
func (u *Usecase) Start(ctx context.Context) (*SessionDTO, error) {
	now := u.now()
	s := &application.Session{
		ID:        id.NewID32(),
		Form:      application.NewFormState(),
		IssueDate: letter.FormatDate(now),
		CreatedAt: now.UTC(),
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return toDTO(s), nil
}

func (u *Usecase) Get(ctx context.Context, sessionID string) (*SessionDTO, error) {
	s, err := u.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toDTO(s), nil
}

func (u *Usecase) SetField(ctx context.Context, sessionID string, field application.Field, value string) (*SessionDTO, error) {
	return u.Update(ctx, sessionID, map[application.Field]string{field: value})
}

// Update applies several field edits at once. Nothing is saved if any field
// name is unknown.
func (u *Usecase) Update(ctx context.Context, sessionID string, patch map[application.Field]string) (*SessionDTO, error) {
	s, err := u.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	form := s.Form
	for field, value := range patch {
		if err := form.Set(field, value); err != nil {
			return nil, fmt.Errorf("%w: %s", err, field)
		}
	}
	s.Form = form
	if err := u.repo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return toDTO(s), nil
}

func (u *Usecase) Letter(ctx context.Context, sessionID string) (*letter.Letter, *application.Session, error) {
	s, err := u.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	l := letter.Compose(s.Form, s.IssueDate, u.boilerplate)
	return &l, s, nil
}

func (u *Usecase) Derived(ctx context.Context, sessionID string) (*letter.Derived, error) {
	s, err := u.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d := letter.Derive(s.Form, s.IssueDate)
	return &d, nil
}
