package network

import "context"

type Repository interface {
	// Connect inserts the edge if absent. It returns the stored edge when one
	// was created and nil when the pair was already connected.
	Connect(ctx context.Context, loanerID, loaneeID string) (*Link, error)
	AreConnected(ctx context.Context, loanerID, loaneeID string) (bool, error)
	// PeersOf returns the ids on the other side of every edge touching userID.
	PeersOf(ctx context.Context, userID string) ([]string, error)
	// All streams every edge; used for graph reconciliation.
	All(ctx context.Context) ([]Link, error)
}

// Projector mirrors committed edges into a secondary graph store.
type Projector interface {
	ProjectLink(ctx context.Context, l Link) error
}

// NopProjector is used when no graph store is configured.
type NopProjector struct{}

func (NopProjector) ProjectLink(context.Context, Link) error { return nil }
