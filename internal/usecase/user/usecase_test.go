package user

import (
	"context"
	"errors"
	"testing"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/testutil/networkmock"
	"prizzys-backend/internal/testutil/uowmock"
	"prizzys-backend/internal/testutil/usermock"

	"go.uber.org/zap"
)

func newUsecase(u *domainUser.User, saved *domainUser.User) *Usecase {
	users := &usermock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
			if u == nil || id != u.ID {
				return nil, domainUser.ErrNotFound
			}
			cp := *u
			return &cp, nil
		},
		SaveFn: func(_ context.Context, got *domainUser.User) error {
			if saved != nil {
				*saved = *got
			}
			return nil
		},
	}
	net := &networkmock.Repo{
		PeersOfFn: func(context.Context, string) ([]string, error) { return []string{"peer"}, nil },
	}
	return NewUsecase(uowmock.Over(uow.Repos{Users: users, Network: net}), zap.NewNop())
}

func TestUsecase_Get_FillsNetwork(t *testing.T) {
	uc := newUsecase(&domainUser.User{ID: "u1", Role: domainUser.RoleLoanee}, nil)

	got, err := uc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Network) != 1 || got.Network[0] != "peer" {
		t.Fatalf("network not projected: %v", got.Network)
	}

	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get missing: want ErrNotFound, got %v", err)
	}
}

func TestUsecase_SetAcceptingLoans(t *testing.T) {
	tests := []struct {
		name    string
		role    domainUser.Role
		wantErr error
	}{
		{name: "loaner toggles", role: domainUser.RoleLoaner},
		{name: "loanee refused", role: domainUser.RoleLoanee, wantErr: apperr.ErrUnauthorized},
		{name: "admin refused", role: domainUser.RoleAdmin, wantErr: apperr.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved domainUser.User
			uc := newUsecase(&domainUser.User{ID: "u1", Role: tt.role, IsAcceptingLoans: true}, &saved)

			got, err := uc.SetAcceptingLoans(context.Background(), "u1", false)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got.IsAcceptingLoans || saved.IsAcceptingLoans {
				t.Fatalf("flag not cleared")
			}
		})
	}
}

func TestUsecase_UpdateBankAccount(t *testing.T) {
	var saved domainUser.User
	uc := newUsecase(&domainUser.User{ID: "u1", Role: domainUser.RoleLoanee}, &saved)
	ctx := context.Background()

	acct := domainUser.BankAccount{AccountNumber: " 0123456789 ", AccountName: "Ada", BankName: "GTBank"}
	got, err := uc.UpdateBankAccount(ctx, "u1", acct)
	if err != nil {
		t.Fatalf("UpdateBankAccount: %v", err)
	}
	if got.BankAccount.AccountNumber != "0123456789" || saved.BankAccount.BankName != "GTBank" {
		t.Fatalf("account not saved: %+v", saved.BankAccount)
	}

	if _, err := uc.UpdateBankAccount(ctx, "u1", domainUser.BankAccount{AccountName: "x"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("missing fields: want ErrInvalidInput, got %v", err)
	}

	loaner := newUsecase(&domainUser.User{ID: "u2", Role: domainUser.RoleLoaner}, nil)
	if _, err := loaner.UpdateBankAccount(ctx, "u2", acct); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("loaner: want ErrUnauthorized, got %v", err)
	}
}
