package gormrepo

import (
	"context"
	"errors"

	inviteDomain "prizzys-backend/internal/domain/invite"

	"gorm.io/gorm"
)

type InviteRepository struct{ db *gorm.DB }

func NewInviteRepository(db *gorm.DB) *InviteRepository { return &InviteRepository{db: db} }

// Create fails with ErrDuplicate when the loaner already has a pending invite
// for the email, including one committed by a concurrent transaction.
func (r *InviteRepository) Create(ctx context.Context, i *inviteDomain.Invite) error {
	err := r.db.WithContext(ctx).Create(i).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return inviteDomain.ErrDuplicate
	}
	return err
}

func (r *InviteRepository) GetByID(ctx context.Context, inviteID string) (*inviteDomain.Invite, error) {
	var out inviteDomain.Invite
	if err := r.db.WithContext(ctx).Where("id = ?", inviteID).First(&out).Error; err != nil {
		return nil, translate(err, inviteDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *InviteRepository) FindPending(ctx context.Context, loanerID, email string) (*inviteDomain.Invite, error) {
	var out inviteDomain.Invite
	err := r.db.WithContext(ctx).
		Where("loaner_id = ? AND email = ? AND status = ?", loanerID, email, inviteDomain.StatusPending).
		First(&out).Error
	if err != nil {
		return nil, translate(err, inviteDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *InviteRepository) ListPendingByEmail(ctx context.Context, email string) ([]inviteDomain.Invite, error) {
	out := []inviteDomain.Invite{}
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, inviteDomain.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *InviteRepository) ListByLoaner(ctx context.Context, loanerID string) ([]inviteDomain.Invite, error) {
	out := []inviteDomain.Invite{}
	err := r.db.WithContext(ctx).
		Where("loaner_id = ?", loanerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *InviteRepository) Save(ctx context.Context, i *inviteDomain.Invite) error {
	return r.db.WithContext(ctx).Save(i).Error
}
