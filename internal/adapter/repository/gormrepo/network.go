package gormrepo

import (
	"context"

	networkDomain "prizzys-backend/internal/domain/network"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NetworkRepository struct{ db *gorm.DB }

func NewNetworkRepository(db *gorm.DB) *NetworkRepository { return &NetworkRepository{db: db} }

// Connect is an insert-if-absent, so replays never duplicate an edge.
// created_at is stamped on the returned link by gorm before the insert.
func (r *NetworkRepository) Connect(ctx context.Context, loanerID, loaneeID string) (*networkDomain.Link, error) {
	l := &networkDomain.Link{LoanerID: loanerID, LoaneeID: loaneeID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(l)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return l, nil
}

func (r *NetworkRepository) AreConnected(ctx context.Context, loanerID, loaneeID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&networkDomain.Link{}).
		Where("loaner_id = ? AND loanee_id = ?", loanerID, loaneeID).
		Count(&n).Error
	return n > 0, err
}

func (r *NetworkRepository) PeersOf(ctx context.Context, userID string) ([]string, error) {
	var loanees, loaners []string
	db := r.db.WithContext(ctx).Model(&networkDomain.Link{})
	if err := db.Where("loaner_id = ?", userID).Order("created_at ASC").Pluck("loanee_id", &loanees).Error; err != nil {
		return nil, err
	}
	db = r.db.WithContext(ctx).Model(&networkDomain.Link{})
	if err := db.Where("loanee_id = ?", userID).Order("created_at ASC").Pluck("loaner_id", &loaners).Error; err != nil {
		return nil, err
	}
	return append(loanees, loaners...), nil
}

func (r *NetworkRepository) All(ctx context.Context) ([]networkDomain.Link, error) {
	out := []networkDomain.Link{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error
	return out, err
}
