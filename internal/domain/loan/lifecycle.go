package loan

import (
	"fmt"
	"strings"
	"time"

	"prizzys-backend/internal/domain/money"
	"prizzys-backend/internal/domain/user"

	"github.com/shopspring/decimal"
)

// Actor is whoever invokes a transition.
type Actor struct {
	UserID string
	Role   user.Role
}

// System is the actor used by scheduled sweeps.
var System = Actor{UserID: "system", Role: user.RoleAdmin}

func (a Actor) IsSystem() bool { return a == System }

type Action string

const (
	ActionApprove         Action = "approve"
	ActionRescind         Action = "rescind"
	ActionConfirmReceipt  Action = "confirm_receipt"
	ActionSubmitRepayment Action = "submit_repayment"
	ActionClear           Action = "clear"
	ActionMarkDefaulted   Action = "mark_defaulted"
)

type party int

const (
	byLoaner party = iota + 1
	byLoanee
	// loaner of the loan, or an admin/system operator
	byOperator
)

type rule struct {
	from []Status
	to   Status
	by   party
	// statuses the system actor may start from; nil means the same as from
	systemFrom []Status
}

func (a Action) rule() rule {
	switch a {
	case ActionApprove:
		return rule{from: []Status{StatusRequested}, to: StatusApprovedPendingConfirmation, by: byLoaner}
	case ActionRescind:
		return rule{from: []Status{StatusRequested}, to: StatusRescinded, by: byLoaner}
	case ActionConfirmReceipt:
		return rule{from: []Status{StatusApprovedPendingConfirmation}, to: StatusActive, by: byLoanee}
	case ActionSubmitRepayment:
		return rule{from: []Status{StatusActive}, to: StatusRepaymentSubmitted, by: byLoanee}
	case ActionClear:
		return rule{from: []Status{StatusActive, StatusRepaymentSubmitted}, to: StatusCleared, by: byLoaner}
	case ActionMarkDefaulted:
		// A submitted repayment waits for the loaner; sweeps only default ACTIVE loans.
		return rule{
			from:       []Status{StatusActive, StatusRepaymentSubmitted},
			to:         StatusDefaulted,
			by:         byOperator,
			systemFrom: []Status{StatusActive},
		}
	}
	return rule{}
}

// Target is the status an action moves a loan into.
func (a Action) Target() Status { return a.rule().to }

// Sources lists the statuses an action may start from.
func (a Action) Sources() []Status { return append([]Status(nil), a.rule().from...) }

func (r rule) permits(actor Actor, l *Loan) bool {
	switch r.by {
	case byLoaner:
		return actor.UserID != "" && actor.UserID == l.LoanerID
	case byLoanee:
		return actor.UserID != "" && actor.UserID == l.LoaneeID
	case byOperator:
		return actor.Role == user.RoleAdmin || (actor.UserID != "" && actor.UserID == l.LoanerID)
	}
	return false
}

func (r rule) allowsFrom(actor Actor, s Status) bool {
	from := r.from
	if actor.IsSystem() && r.systemFrom != nil {
		from = r.systemFrom
	}
	for _, f := range from {
		if f == s {
			return true
		}
	}
	return false
}

// Command is a typed lifecycle transition. Commands validate their input
// before touching the loan.
type Command interface {
	Action() Action
	apply(l *Loan, now time.Time) error
}

type Approve struct {
	Proof        string
	InterestRate decimal.Decimal
}

type Rescind struct{}

type ConfirmReceipt struct{}

type SubmitRepayment struct {
	// Optional.
	Proof string
}

type Clear struct{}

type MarkDefaulted struct{}

func (Approve) Action() Action         { return ActionApprove }
func (Rescind) Action() Action         { return ActionRescind }
func (ConfirmReceipt) Action() Action  { return ActionConfirmReceipt }
func (SubmitRepayment) Action() Action { return ActionSubmitRepayment }
func (Clear) Action() Action           { return ActionClear }
func (MarkDefaulted) Action() Action   { return ActionMarkDefaulted }

func (c Approve) apply(l *Loan, now time.Time) error {
	if strings.TrimSpace(c.Proof) == "" {
		return ErrMissingProof
	}
	if c.InterestRate.IsNegative() {
		return ErrInvalidRate
	}
	proof := c.Proof
	l.ProofOfDisbursement = &proof
	l.InterestRate = c.InterestRate
	l.ApprovalDate = &now
	return nil
}

func (Rescind) apply(l *Loan, now time.Time) error {
	l.RescindedDate = &now
	return nil
}

func (ConfirmReceipt) apply(l *Loan, now time.Time) error {
	l.ConfirmedDate = &now
	return nil
}

func (c SubmitRepayment) apply(l *Loan, now time.Time) error {
	if strings.TrimSpace(c.Proof) != "" {
		proof := c.Proof
		l.ProofOfRepayment = &proof
	}
	l.RepaymentSubmittedDate = &now
	return nil
}

func (Clear) apply(l *Loan, now time.Time) error {
	l.ClearedDate = &now
	return nil
}

func (MarkDefaulted) apply(l *Loan, now time.Time) error {
	if !l.IsOverdue(now) {
		return ErrNotOverdue
	}
	l.DefaultedDate = &now
	return nil
}

// Apply runs cmd against the loan on behalf of actor. On success the loan
// carries the new status and the status it left is returned. On failure the
// loan is left untouched.
func (l *Loan) Apply(actor Actor, cmd Command, now time.Time) (Status, error) {
	now = now.UTC()
	a := cmd.Action()
	r := a.rule()
	if !r.permits(actor, l) {
		return "", fmt.Errorf("%s loan %s: %w", a, l.ID, ErrNotAParty)
	}
	if !r.allowsFrom(actor, l.Status) {
		return "", fmt.Errorf("%s loan %s from %s: %w", a, l.ID, l.Status, ErrInvalidTransition)
	}
	if err := cmd.apply(l, now); err != nil {
		return "", err
	}
	prev := l.Status
	l.Status = r.to
	l.StatusUpdatedAt = now
	return prev, nil
}

// RequestParams is the validated shape of a new loan request.
type RequestParams struct {
	LoaneeID   string
	LoaneeName string
	LoanerID   string
	LoanerName string
	Amount     decimal.Decimal
	Currency   money.Currency
	DueDate    time.Time
	Notes      string
}

// NewRequest builds a REQUESTED loan stamped at now. Network membership and
// lender availability are checked by the caller, which owns that state.
func NewRequest(p RequestParams, now time.Time) (*Loan, error) {
	now = now.UTC()
	if !p.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !Day(p.DueDate).After(Day(now)) {
		return nil, ErrInvalidDueDate
	}
	if !p.Currency.Valid() {
		return nil, fmt.Errorf("currency %q: %w", p.Currency, ErrInvalidAmount)
	}
	return &Loan{
		LoaneeID:        p.LoaneeID,
		LoaneeName:      p.LoaneeName,
		LoanerID:        p.LoanerID,
		LoanerName:      p.LoanerName,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Status:          StatusRequested,
		RequestDate:     now,
		DueDate:         Day(p.DueDate),
		InterestRate:    decimal.Zero,
		Notes:           strings.TrimSpace(p.Notes),
		StatusUpdatedAt: now,
	}, nil
}
