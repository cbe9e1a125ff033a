package user

import (
	"context"
	"fmt"
	"strings"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"

	"go.uber.org/zap"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// Load reads a user inside an open unit of work and fills its network projection.
func Load(ctx context.Context, r uow.Repos, userID string) (*domainUser.User, error) {
	u, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	peers, err := r.Network.PeersOf(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if peers == nil {
		peers = []string{}
	}
	u.Network = peers
	return u, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*domainUser.User, error) {
	var out *domainUser.User
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = Load(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) SetAcceptingLoans(ctx context.Context, userID string, accepting bool) (*domainUser.User, error) {
	var out *domainUser.User
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := Load(ctx, r, userID)
		if err != nil {
			return err
		}
		if !usr.IsLoaner() {
			return fmt.Errorf("only loaners accept loans: %w", domainUser.ErrWrongRole)
		}
		usr.IsAcceptingLoans = accepting
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}
		out = usr
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("accepting loans toggled",
		zap.String("user_id", userID), zap.Bool("accepting", accepting))
	return out, nil
}

func (u *Usecase) UpdateBankAccount(ctx context.Context, userID string, acct domainUser.BankAccount) (*domainUser.User, error) {
	acct = domainUser.BankAccount{
		AccountNumber: strings.TrimSpace(acct.AccountNumber),
		AccountName:   strings.TrimSpace(acct.AccountName),
		BankName:      strings.TrimSpace(acct.BankName),
	}
	if acct.AccountNumber == "" || acct.BankName == "" {
		return nil, fmt.Errorf("account number and bank name are required: %w", apperr.ErrInvalidInput)
	}

	var out *domainUser.User
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := Load(ctx, r, userID)
		if err != nil {
			return err
		}
		if !usr.IsLoanee() {
			return fmt.Errorf("only loanees keep a payout account: %w", domainUser.ErrWrongRole)
		}
		usr.BankAccount = acct
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}
		out = usr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
