package uow

import (
	"context"

	"prizzys-backend/internal/domain/invite"
	"prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/domain/transition"
	"prizzys-backend/internal/domain/user"
)

// Repos are bound to one transaction.
type Repos struct {
	Users       user.Repository
	Network     network.Repository
	Invites     invite.Repository
	Loans       loan.Repository
	Transitions transition.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
