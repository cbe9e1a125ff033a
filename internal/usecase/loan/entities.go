package loan

import (
	"time"

	domain "prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/money"
	"prizzys-backend/internal/domain/transition"
	"prizzys-backend/pkg/interest"

	"github.com/shopspring/decimal"
)

type RequestInput struct {
	LoaneeID string
	LoanerID string
	Amount   decimal.Decimal
	// Empty means the loanee's own currency.
	Currency string
	DueDate  time.Time
	Notes    string
}

type ApproveInput struct {
	Proof        string
	InterestRate decimal.Decimal
}

type LoanDTO struct {
	ID                     string          `json:"id"`
	LoaneeID               string          `json:"loanee_id"`
	LoaneeName             string          `json:"loanee_name"`
	LoanerID               string          `json:"loaner_id"`
	LoanerName             string          `json:"loaner_name"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               money.Currency  `json:"currency"`
	FormattedAmount        string          `json:"formatted_amount"`
	InterestRate           decimal.Decimal `json:"interest_rate"`
	InterestEstimate       decimal.Decimal `json:"interest_estimate"`
	AmountDue              decimal.Decimal `json:"amount_due"`
	FormattedAmountDue     string          `json:"formatted_amount_due"`
	Status                 domain.Status   `json:"status"`
	StatusLabel            string          `json:"status_label"`
	StatusColor            string          `json:"status_color"`
	Overdue                bool            `json:"overdue"`
	RequestDate            time.Time       `json:"request_date"`
	DueDate                time.Time       `json:"due_date"`
	Notes                  string          `json:"notes,omitempty"`
	ProofOfDisbursement    *string         `json:"proof_of_disbursement,omitempty"`
	ProofOfRepayment       *string         `json:"proof_of_repayment,omitempty"`
	ApprovalDate           *time.Time      `json:"approval_date,omitempty"`
	ConfirmedDate          *time.Time      `json:"confirmed_date,omitempty"`
	RepaymentSubmittedDate *time.Time      `json:"repayment_submitted_date,omitempty"`
	ClearedDate            *time.Time      `json:"cleared_date,omitempty"`
	RescindedDate          *time.Time      `json:"rescinded_date,omitempty"`
	DefaultedDate          *time.Time      `json:"defaulted_date,omitempty"`
	StatusUpdatedAt        time.Time       `json:"status_updated_at"`
}

// toDTO renders l as seen at now. Interest stops accruing once the loan is terminal.
func toDTO(l *domain.Loan, now time.Time) *LoanDTO {
	asOf := now
	if l.Status.Terminal() {
		asOf = l.StatusUpdatedAt
	}
	est := interest.Estimate(l.Amount, l.InterestRate, l.RequestDate, asOf)
	due := interest.AmountDue(l.Amount, l.InterestRate, l.RequestDate, asOf)
	return &LoanDTO{
		ID:                     l.ID,
		LoaneeID:               l.LoaneeID,
		LoaneeName:             l.LoaneeName,
		LoanerID:               l.LoanerID,
		LoanerName:             l.LoanerName,
		Amount:                 l.Amount,
		Currency:               l.Currency,
		FormattedAmount:        money.Format(l.Amount, l.Currency),
		InterestRate:           l.InterestRate,
		InterestEstimate:       est,
		AmountDue:              due,
		FormattedAmountDue:     money.Format(due, l.Currency),
		Status:                 l.Status,
		StatusLabel:            l.Status.Label(),
		StatusColor:            l.Status.Color(),
		Overdue:                l.Status.Outstanding() && l.IsOverdue(now),
		RequestDate:            l.RequestDate,
		DueDate:                l.DueDate,
		Notes:                  l.Notes,
		ProofOfDisbursement:    l.ProofOfDisbursement,
		ProofOfRepayment:       l.ProofOfRepayment,
		ApprovalDate:           l.ApprovalDate,
		ConfirmedDate:          l.ConfirmedDate,
		RepaymentSubmittedDate: l.RepaymentSubmittedDate,
		ClearedDate:            l.ClearedDate,
		RescindedDate:          l.RescindedDate,
		DefaultedDate:          l.DefaultedDate,
		StatusUpdatedAt:        l.StatusUpdatedAt,
	}
}

type CurrencyTotal struct {
	Currency  money.Currency  `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// SummaryDTO backs the dashboard cards.
type SummaryDTO struct {
	PendingRequests      int             `json:"pending_requests"`
	PendingConfirmations int             `json:"pending_confirmations"`
	ActiveLoans          int             `json:"active_loans"`
	RepaymentsToReview   int             `json:"repayments_to_review"`
	Overdue              int             `json:"overdue"`
	ActivePrincipal      []CurrencyTotal `json:"active_principal"`
}

type TransitionDTO struct {
	ID         string        `json:"id"`
	Action     domain.Action `json:"action"`
	FromStatus domain.Status `json:"from_status"`
	ToStatus   domain.Status `json:"to_status"`
	ToLabel    string        `json:"to_label"`
	ActorID    string        `json:"actor_id"`
	ActorRole  string        `json:"actor_role"`
	WithProof  bool          `json:"with_proof"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func toTransitionDTO(t transition.Transition) TransitionDTO {
	return TransitionDTO{
		ID:         t.TransitionID,
		Action:     t.Action,
		FromStatus: t.FromStatus,
		ToStatus:   t.ToStatus,
		ToLabel:    t.ToStatus.Label(),
		ActorID:    t.ActorID,
		ActorRole:  t.ActorRole,
		WithProof:  t.WithProof,
		OccurredAt: t.OccurredAt,
	}
}
