package user

import (
	"fmt"
	"strings"
	"time"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/money"
	"prizzys-backend/pkg/id"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrDuplicateEmail = fmt.Errorf("user: %w", apperr.ErrDuplicateEmail)
	ErrWrongRole      = fmt.Errorf("user role: %w", apperr.ErrUnauthorized)
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleLoaner Role = "LOANER"
	RoleLoanee Role = "LOANEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLoaner, RoleLoanee:
		return true
	}
	return false
}

// BankAccount is display-only payout information for a loanee.
type BankAccount struct {
	AccountNumber string `gorm:"column:account_number;size:32" json:"account_number"`
	AccountName   string `gorm:"column:account_name;size:128" json:"account_name"`
	BankName      string `gorm:"column:bank_name;size:128" json:"bank_name"`
}

func (b BankAccount) IsZero() bool {
	return b.AccountNumber == "" && b.AccountName == "" && b.BankName == ""
}

// Table: users
type User struct {
	ID           string         `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name         string         `gorm:"column:name;size:128;not null" json:"name"`
	Email        string         `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone        string         `gorm:"column:phone;size:32" json:"phone"`
	Role         Role           `gorm:"column:role;size:16;not null;index" json:"role"`
	PasswordHash string         `gorm:"column:password_hash;size:72;not null" json:"-"`
	Currency     money.Currency `gorm:"column:currency;size:3" json:"currency,omitempty"`
	BankAccount  BankAccount    `gorm:"embedded" json:"bank_account"`
	// Only meaningful for loaners.
	IsAcceptingLoans bool      `gorm:"column:is_accepting_loans;not null;default:false" json:"is_accepting_loans"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Network is filled from network_links for the caller's own profile only;
	// it is never a column. Profiles listed as network members leave it unset.
	Network []string `gorm:"-" json:"network,omitempty"`
}

func (User) TableName() string { return "users" }

// BeforeCreate assigns the opaque public id when the caller did not.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = id.NewID32()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func (u *User) IsLoaner() bool { return u.Role == RoleLoaner }
func (u *User) IsLoanee() bool { return u.Role == RoleLoanee }
func (u *User) IsAdmin() bool  { return u.Role == RoleAdmin }

// NormalizeEmail lower-cases and trims so uniqueness and invite matching are case-insensitive.
func NormalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
