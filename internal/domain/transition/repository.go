package transition

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transition) error

	// ListByLoanID returns the loan's history, oldest first.
	ListByLoanID(ctx context.Context, loanID string) ([]Transition, error)
}
