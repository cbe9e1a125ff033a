package loanmock

import (
	"context"
	"time"

	domain "prizzys-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to context.Canceled.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	SaveTransitionFn   func(ctx context.Context, l *domain.Loan, expected domain.Status) error
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	ListOverdueFn      func(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *Repo) SaveTransition(ctx context.Context, l *domain.Loan, expected domain.Status) error {
	if m.SaveTransitionFn != nil {
		return m.SaveTransitionFn(ctx, l, expected)
	}
	return nil
}
func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}
func (m *Repo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, asOf)
	}
	return nil, context.Canceled
}
