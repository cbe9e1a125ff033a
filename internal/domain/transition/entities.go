package transition

import (
	"time"

	"prizzys-backend/internal/domain/loan"
	"prizzys-backend/pkg/id"

	"gorm.io/gorm"
)

// Table: loan_transitions. One row per applied lifecycle command.
type Transition struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	TransitionID string      `gorm:"column:transition_id;size:32;not null;uniqueIndex:ux_loan_transitions_transition_id" json:"transition_id"`
	LoanID       string      `gorm:"column:loan_id;size:32;not null;index:idx_loan_transitions_loan" json:"loan_id"`
	Action       loan.Action `gorm:"column:action;size:32;not null" json:"action"`
	FromStatus   loan.Status `gorm:"column:from_status;size:32;not null" json:"from_status"`
	ToStatus     loan.Status `gorm:"column:to_status;size:32;not null" json:"to_status"`
	ActorID      string      `gorm:"column:actor_id;size:32;not null" json:"actor_id"`
	ActorRole    string      `gorm:"column:actor_role;size:16;not null" json:"actor_role"`
	// Whether the command carried a proof image; the image itself lives on the loan.
	WithProof  bool      `gorm:"column:with_proof;not null;default:false" json:"with_proof"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Transition) TableName() string { return "loan_transitions" }

func (t *Transition) BeforeCreate(*gorm.DB) error {
	if t.TransitionID == "" {
		t.TransitionID = id.NewID32()
	}
	return nil
}

// Record builds the audit row for a transition that just succeeded on l.
func Record(l *loan.Loan, a loan.Action, from loan.Status, actor loan.Actor, withProof bool) *Transition {
	return &Transition{
		LoanID:     l.ID,
		Action:     a,
		FromStatus: from,
		ToStatus:   l.Status,
		ActorID:    actor.UserID,
		ActorRole:  string(actor.Role),
		WithProof:  withProof,
		OccurredAt: l.StatusUpdatedAt,
	}
}
