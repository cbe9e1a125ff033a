package loan

import (
	"fmt"
	"time"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/money"
	"prizzys-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = fmt.Errorf("loan %w", apperr.ErrNotFound)
	ErrInvalidTransition = apperr.ErrInvalidTransition
	ErrNotAParty         = fmt.Errorf("actor is not allowed to act on this loan: %w", apperr.ErrUnauthorized)
	ErrNotNetworked      = fmt.Errorf("loanee and loaner are not connected: %w", apperr.ErrUnauthorized)
	ErrLenderUnavailable = fmt.Errorf("loaner is not accepting loans: %w", apperr.ErrLenderUnavailable)
	ErrInvalidAmount     = fmt.Errorf("amount must be positive: %w", apperr.ErrInvalidAmount)
	ErrInvalidRate       = fmt.Errorf("interest rate must not be negative: %w", apperr.ErrInvalidAmount)
	ErrInvalidDueDate    = fmt.Errorf("due date must be after the request date: %w", apperr.ErrInvalidDueDate)
	ErrMissingProof      = fmt.Errorf("proof of disbursement is required: %w", apperr.ErrMissingProof)
	ErrNotOverdue        = fmt.Errorf("loan is not past its due date: %w", apperr.ErrInvalidTransition)
	// ErrStale is returned when a conditional write finds the status already moved.
	ErrStale = fmt.Errorf("loan status changed concurrently: %w", apperr.ErrInvalidTransition)
)

// Proof columns hold opaque base64 image payloads; the size maps to LONGTEXT/TEXT per dialect.
type Loan struct {
	ID                     string          `gorm:"column:id;primaryKey;size:32" json:"id"`
	LoaneeID               string          `gorm:"column:loanee_id;size:32;not null;index:idx_loans_loanee_requested" json:"loanee_id"`
	LoaneeName             string          `gorm:"column:loanee_name;size:128" json:"loanee_name"`
	LoanerID               string          `gorm:"column:loaner_id;size:32;not null;index:idx_loans_loaner_requested" json:"loaner_id"`
	LoanerName             string          `gorm:"column:loaner_name;size:128" json:"loaner_name"`
	Amount                 decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Currency               money.Currency  `gorm:"column:currency;size:3;not null" json:"currency"`
	Status                 Status          `gorm:"column:status;size:32;not null;index" json:"status"`
	RequestDate            time.Time       `gorm:"column:request_date;not null;index:idx_loans_loanee_requested;index:idx_loans_loaner_requested" json:"request_date"`
	DueDate                time.Time       `gorm:"column:due_date;not null" json:"due_date"`
	InterestRate           decimal.Decimal `gorm:"column:interest_rate;type:decimal(7,3);not null;default:0" json:"interest_rate"`
	ProofOfDisbursement    *string         `gorm:"column:proof_of_disbursement;size:16777216" json:"proof_of_disbursement,omitempty"`
	ProofOfRepayment       *string         `gorm:"column:proof_of_repayment;size:16777216" json:"proof_of_repayment,omitempty"`
	Notes                  string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ApprovalDate           *time.Time      `gorm:"column:approval_date" json:"approval_date,omitempty"`
	ConfirmedDate          *time.Time      `gorm:"column:confirmed_date" json:"confirmed_date,omitempty"`
	RepaymentSubmittedDate *time.Time      `gorm:"column:repayment_submitted_date" json:"repayment_submitted_date,omitempty"`
	ClearedDate            *time.Time      `gorm:"column:cleared_date" json:"cleared_date,omitempty"`
	RescindedDate          *time.Time      `gorm:"column:rescinded_date" json:"rescinded_date,omitempty"`
	DefaultedDate          *time.Time      `gorm:"column:defaulted_date" json:"defaulted_date,omitempty"`
	StatusUpdatedAt        time.Time       `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt              time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = id.NewID32()
	}
	return nil
}

// IsParty reports whether userID is the loanee or the loaner of this loan.
func (l *Loan) IsParty(userID string) bool {
	return userID != "" && (userID == l.LoaneeID || userID == l.LoanerID)
}

// IsOverdue reports whether now falls on a day after the due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return Day(now).After(Day(l.DueDate))
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
