package network

import (
	"context"
	"fmt"

	domainNetwork "prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"

	"go.uber.org/zap"
)

type Usecase struct {
	uow       uow.UnitOfWork
	projector domainNetwork.Projector
	log       *zap.Logger
}

// NewUsecase: a nil projector disables graph mirroring.
func NewUsecase(tx uow.UnitOfWork, p domainNetwork.Projector, log *zap.Logger) *Usecase {
	if p == nil {
		p = domainNetwork.NopProjector{}
	}
	return &Usecase{uow: tx, projector: p, log: log}
}

// Link connects a loaner and a loanee inside an open unit of work. Both users
// must exist with the matching roles. It returns the new edge, or nil when
// the two were already connected.
func Link(ctx context.Context, r uow.Repos, loanerID, loaneeID string) (*domainNetwork.Link, error) {
	loaner, err := r.Users.GetByID(ctx, loanerID)
	if err != nil {
		return nil, err
	}
	if !loaner.IsLoaner() {
		return nil, fmt.Errorf("user %s is not a loaner: %w", loanerID, domainUser.ErrWrongRole)
	}
	loanee, err := r.Users.GetByID(ctx, loaneeID)
	if err != nil {
		return nil, err
	}
	if !loanee.IsLoanee() {
		return nil, fmt.Errorf("user %s is not a loanee: %w", loaneeID, domainUser.ErrWrongRole)
	}
	return r.Network.Connect(ctx, loanerID, loaneeID)
}

func (u *Usecase) Connect(ctx context.Context, loanerID, loaneeID string) error {
	var link *domainNetwork.Link
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		link, err = Link(ctx, r, loanerID, loaneeID)
		return err
	})
	if err != nil {
		return err
	}
	if link != nil {
		u.Project(ctx, *link)
	}
	return nil
}

// Project mirrors committed edges into the graph store. Failures are logged only.
func (u *Usecase) Project(ctx context.Context, links ...domainNetwork.Link) {
	for _, l := range links {
		if err := u.projector.ProjectLink(ctx, l); err != nil {
			u.log.Warn("network: graph projection failed",
				zap.String("loaner_id", l.LoanerID),
				zap.String("loanee_id", l.LoaneeID),
				zap.Error(err))
		}
	}
}

// Resync replays every stored edge into the projector and returns how many were sent.
func (u *Usecase) Resync(ctx context.Context) (int, error) {
	var links []domainNetwork.Link
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		links, err = r.Network.All(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	for _, l := range links {
		if err := u.projector.ProjectLink(ctx, l); err != nil {
			return 0, fmt.Errorf("project %s->%s: %w", l.LoanerID, l.LoaneeID, err)
		}
	}
	return len(links), nil
}

func (u *Usecase) MembersOf(ctx context.Context, userID string) ([]domainUser.User, error) {
	var out []domainUser.User
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		peers, err := r.Network.PeersOf(ctx, userID)
		if err != nil {
			return err
		}
		out, err = r.Users.ListByIDs(ctx, peers)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NetworkMembersFor is the viewer-facing form of MembersOf.
func (u *Usecase) NetworkMembersFor(ctx context.Context, userID string) ([]domainUser.User, error) {
	return u.MembersOf(ctx, userID)
}

// LendableLoaners lists the loaners in a loanee's network that currently take requests.
func (u *Usecase) LendableLoaners(ctx context.Context, loaneeID string) ([]domainUser.User, error) {
	members, err := u.MembersOf(ctx, loaneeID)
	if err != nil {
		return nil, err
	}
	out := make([]domainUser.User, 0, len(members))
	for _, m := range members {
		if m.IsLoaner() && m.IsAcceptingLoans {
			out = append(out, m)
		}
	}
	return out, nil
}
