package gormrepo

import (
	"context"

	transitionDomain "prizzys-backend/internal/domain/transition"

	"gorm.io/gorm"
)

type TransitionRepository struct{ db *gorm.DB }

func NewTransitionRepository(db *gorm.DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

func (r *TransitionRepository) Create(ctx context.Context, t *transitionDomain.Transition) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransitionRepository) ListByLoanID(ctx context.Context, loanID string) ([]transitionDomain.Transition, error) {
	out := []transitionDomain.Transition{}
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("occurred_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
