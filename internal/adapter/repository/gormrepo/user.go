package gormrepo

import (
	"context"
	"errors"

	userDomain "prizzys-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&out).Error; err != nil {
		return nil, translate(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", userDomain.NormalizeEmail(email)).
		First(&out).Error
	if err != nil {
		return nil, translate(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, userIDs []string) ([]userDomain.User, error) {
	out := []userDomain.User{}
	if len(userIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Order("name ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
