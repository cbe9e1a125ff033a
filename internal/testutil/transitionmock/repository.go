package transitionmock

import (
	"context"

	domain "prizzys-backend/internal/domain/transition"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Created rows are kept so tests can assert on the audit trail.
type Repo struct {
	CreateFn       func(ctx context.Context, t *domain.Transition) error
	ListByLoanIDFn func(ctx context.Context, loanID string) ([]domain.Transition, error)

	Created []*domain.Transition
}

func (m *Repo) Create(ctx context.Context, t *domain.Transition) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, t); err != nil {
			return err
		}
	}
	m.Created = append(m.Created, t)
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Transition, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
