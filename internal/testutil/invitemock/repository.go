package invitemock

import (
	"context"

	domain "prizzys-backend/internal/domain/invite"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, i *domain.Invite) error
	GetByIDFn            func(ctx context.Context, inviteID string) (*domain.Invite, error)
	FindPendingFn        func(ctx context.Context, loanerID, email string) (*domain.Invite, error)
	ListPendingByEmailFn func(ctx context.Context, email string) ([]domain.Invite, error)
	ListByLoanerFn       func(ctx context.Context, loanerID string) ([]domain.Invite, error)
	SaveFn               func(ctx context.Context, i *domain.Invite) error
}

func (m *Repo) Create(ctx context.Context, i *domain.Invite) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, inviteID string) (*domain.Invite, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, inviteID)
	}
	return nil, context.Canceled
}

// FindPending defaults to ErrNotFound so a send goes through unless a test says otherwise.
func (m *Repo) FindPending(ctx context.Context, loanerID, email string) (*domain.Invite, error) {
	if m.FindPendingFn != nil {
		return m.FindPendingFn(ctx, loanerID, email)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) ListPendingByEmail(ctx context.Context, email string) ([]domain.Invite, error) {
	if m.ListPendingByEmailFn != nil {
		return m.ListPendingByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByLoaner(ctx context.Context, loanerID string) ([]domain.Invite, error) {
	if m.ListByLoanerFn != nil {
		return m.ListByLoanerFn(ctx, loanerID)
	}
	return nil, context.Canceled
}
func (m *Repo) Save(ctx context.Context, i *domain.Invite) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}
