package main

import (
	"context"
	"errors"
	"fmt"

	"prizzys-backend/internal/domain/money"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/usecase/network"

	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	Name  string
	Email string
	Role  domainUser.Role
}

var demoAccounts = []seedAccount{
	{Name: "Prizzys Admin", Email: "admin@prizzys.test", Role: domainUser.RoleAdmin},
	{Name: "Lola Lender", Email: "lola@prizzys.test", Role: domainUser.RoleLoaner},
	{Name: "Bode Borrower", Email: "bode@prizzys.test", Role: domainUser.RoleLoanee},
}

// seedDemo creates any missing demo account and networks the loaner with the
// loanee. Running it again changes nothing.
func seedDemo(ctx context.Context, tx uow.UnitOfWork, password string, cost int) (int, error) {
	if len(password) < 8 {
		return 0, errors.New("seed password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return 0, err
	}

	created := 0
	err = tx.WithinTx(ctx, func(r uow.Repos) error {
		ids := make(map[domainUser.Role]string, len(demoAccounts))
		for _, acct := range demoAccounts {
			u, err := r.Users.GetByEmail(ctx, acct.Email)
			switch {
			case errors.Is(err, domainUser.ErrNotFound):
				u = &domainUser.User{
					Name:             acct.Name,
					Email:            acct.Email,
					Role:             acct.Role,
					PasswordHash:     string(hash),
					Currency:         money.DefaultCurrency,
					IsAcceptingLoans: acct.Role == domainUser.RoleLoaner,
				}
				if acct.Role == domainUser.RoleLoanee {
					u.BankAccount = domainUser.BankAccount{AccountNumber: "0001112223", AccountName: acct.Name, BankName: "Demo Bank"}
				}
				if err := r.Users.Create(ctx, u); err != nil {
					return fmt.Errorf("create %s: %w", acct.Email, err)
				}
				created++
			case err != nil:
				return err
			}
			ids[acct.Role] = u.ID
		}
		_, err := network.Link(ctx, r, ids[domainUser.RoleLoaner], ids[domainUser.RoleLoanee])
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
