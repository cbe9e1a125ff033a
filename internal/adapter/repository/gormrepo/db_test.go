package gormrepo

import (
	"testing"
	"time"

	"prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/money"
	"prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/testutil/sqlitedb"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return sqlitedb.Open(t)
}

func seedUser(t *testing.T, gdb *gorm.DB, name, email string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{Name: name, Email: email, Role: role, PasswordHash: "x", Currency: money.NGN}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func makeLoan(loaneeID, loanerID string, status loan.Status, requested time.Time) *loan.Loan {
	return &loan.Loan{
		LoaneeID:        loaneeID,
		LoanerID:        loanerID,
		Amount:          decimal.NewFromInt(5000),
		Currency:        money.NGN,
		Status:          status,
		RequestDate:     requested.UTC(),
		DueDate:         loan.Day(requested.AddDate(0, 0, 30)),
		InterestRate:    decimal.Zero,
		StatusUpdatedAt: requested.UTC(),
	}
}
