package networkmock

import (
	"context"

	domain "prizzys-backend/internal/domain/network"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.Projector  = (*Projector)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ConnectFn      func(ctx context.Context, loanerID, loaneeID string) (*domain.Link, error)
	AreConnectedFn func(ctx context.Context, loanerID, loaneeID string) (bool, error)
	PeersOfFn      func(ctx context.Context, userID string) ([]string, error)
	AllFn          func(ctx context.Context) ([]domain.Link, error)
}

func (m *Repo) Connect(ctx context.Context, loanerID, loaneeID string) (*domain.Link, error) {
	if m.ConnectFn != nil {
		return m.ConnectFn(ctx, loanerID, loaneeID)
	}
	return &domain.Link{LoanerID: loanerID, LoaneeID: loaneeID}, nil
}
func (m *Repo) AreConnected(ctx context.Context, loanerID, loaneeID string) (bool, error) {
	if m.AreConnectedFn != nil {
		return m.AreConnectedFn(ctx, loanerID, loaneeID)
	}
	return false, context.Canceled
}
func (m *Repo) PeersOf(ctx context.Context, userID string) ([]string, error) {
	if m.PeersOfFn != nil {
		return m.PeersOfFn(ctx, userID)
	}
	return nil, context.Canceled
}
func (m *Repo) All(ctx context.Context) ([]domain.Link, error) {
	if m.AllFn != nil {
		return m.AllFn(ctx)
	}
	return nil, context.Canceled
}

// Projector records every projected link.
type Projector struct {
	ProjectLinkFn func(ctx context.Context, l domain.Link) error
	Projected     []domain.Link
}

func (p *Projector) ProjectLink(ctx context.Context, l domain.Link) error {
	p.Projected = append(p.Projected, l)
	if p.ProjectLinkFn != nil {
		return p.ProjectLinkFn(ctx, l)
	}
	return nil
}
