package invite

import "context"

type Repository interface {
	Create(ctx context.Context, i *Invite) error
	GetByID(ctx context.Context, inviteID string) (*Invite, error)
	// FindPending returns the pending invite for (loanerID, email) or ErrNotFound.
	FindPending(ctx context.Context, loanerID, email string) (*Invite, error)
	ListPendingByEmail(ctx context.Context, email string) ([]Invite, error)
	ListByLoaner(ctx context.Context, loanerID string) ([]Invite, error)
	Save(ctx context.Context, i *Invite) error
}
