package user

import "context"

type Repository interface {
	// Create fails with ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ListByIDs resolves ids to profiles; unknown ids are skipped.
	ListByIDs(ctx context.Context, userIDs []string) ([]User, error)
	Save(ctx context.Context, u *User) error
}
