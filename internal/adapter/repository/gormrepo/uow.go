package gormrepo

import (
	"context"

	"prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repos returns repositories bound to db (a tx or the root handle).
func Repos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:       &UserRepository{db: db},
		Network:     &NetworkRepository{db: db},
		Invites:     &InviteRepository{db: db},
		Loans:       &LoanRepository{db: db},
		Transitions: &TransitionRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
