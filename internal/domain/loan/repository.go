package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, loanID string) (*Loan, error)
	// GetByIDForUpdate locks the row for the rest of the transaction where the dialect supports it.
	GetByIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// SaveTransition persists l only if the stored status still equals expected; otherwise ErrStale.
	SaveTransition(ctx context.Context, l *Loan, expected Status) error
	// List returns loans newest first. Empty filter fields match everything.
	List(ctx context.Context, f Filter) ([]Loan, error)
	// ListOverdue returns outstanding loans whose due date is before asOf's day.
	ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error)
}

type Filter struct {
	LoanerID string
	LoaneeID string
	Statuses []Status
}
