package invite

import (
	"fmt"
	"time"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/pkg/id"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = fmt.Errorf("invite %w", apperr.ErrNotFound)
	ErrDuplicate  = fmt.Errorf("invite already pending for this email: %w", apperr.ErrDuplicateInvite)
	ErrNotInvitee = fmt.Errorf("invite is addressed to another email: %w", apperr.ErrUnauthorized)
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
)

// Table: invites
type Invite struct {
	ID         string     `gorm:"column:id;primaryKey;size:32" json:"id"`
	LoanerID   string     `gorm:"column:loaner_id;size:32;not null;index:idx_invites_loaner_email" json:"loaner_id"`
	LoanerName string     `gorm:"column:loaner_name;size:128" json:"loaner_name"`
	Email      string     `gorm:"column:email;size:255;not null;index:idx_invites_loaner_email;index:idx_invites_email_status" json:"email"`
	Status     Status     `gorm:"column:status;size:16;not null;index:idx_invites_email_status" json:"status"`
	AcceptedBy *string    `gorm:"column:accepted_by;size:32" json:"accepted_by,omitempty"`
	AcceptedAt *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	// loaner_id|email while PENDING, NULL otherwise; unique across the table.
	PendingKey *string    `gorm:"column:pending_key;size:300;uniqueIndex:uq_invites_pending_key" json:"-"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Invite) TableName() string { return "invites" }

func (i *Invite) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = id.NewID32()
	}
	return nil
}

// BeforeSave keeps pending_key in step with status on every create and save.
func (i *Invite) BeforeSave(*gorm.DB) error {
	i.PendingKey = nil
	if i.Status == StatusPending {
		k := i.LoanerID + "|" + i.Email
		i.PendingKey = &k
	}
	return nil
}

// Accept moves the invite to ACCEPTED. It reports false when it already was.
func (i *Invite) Accept(loaneeID string, now time.Time) bool {
	if i.Status == StatusAccepted {
		return false
	}
	i.Status = StatusAccepted
	i.AcceptedBy = &loaneeID
	i.AcceptedAt = &now
	return true
}
