package invite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prizzys-backend/internal/domain/apperr"
	domainInvite "prizzys-backend/internal/domain/invite"
	domainNetwork "prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/usecase/network"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// Projector is the part of the network usecase invites need after commit.
type Projector interface {
	Project(ctx context.Context, links ...domainNetwork.Link)
}

type Usecase struct {
	uow     uow.UnitOfWork
	network Projector
	log     *zap.Logger
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, p Projector, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, network: p, log: log, now: time.Now}
}

// SendInvite invites email into the loaner's network. When the email already
// belongs to a loanee the two are connected at once and the invite is stored
// as accepted.
func (u *Usecase) SendInvite(ctx context.Context, loanerID, email string) (*domainInvite.Invite, error) {
	email = domainUser.NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("email %q: %w", email, apperr.ErrInvalidInput)
	}

	var (
		out  *domainInvite.Invite
		link *domainNetwork.Link
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loaner, err := r.Users.GetByID(ctx, loanerID)
		if err != nil {
			return err
		}
		if !loaner.IsLoaner() {
			return fmt.Errorf("only loaners send invites: %w", domainUser.ErrWrongRole)
		}

		switch _, err := r.Invites.FindPending(ctx, loanerID, email); {
		case err == nil:
			return domainInvite.ErrDuplicate
		case !errors.Is(err, domainInvite.ErrNotFound):
			return err
		}

		inv := &domainInvite.Invite{
			LoanerID:   loaner.ID,
			LoanerName: loaner.Name,
			Email:      email,
			Status:     domainInvite.StatusPending,
		}

		existing, err := r.Users.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, domainUser.ErrNotFound):
		case err != nil:
			return err
		case !existing.IsLoanee():
			return fmt.Errorf("%s is registered as %s: %w", email, existing.Role, domainUser.ErrWrongRole)
		default:
			if link, err = network.Link(ctx, r, loaner.ID, existing.ID); err != nil {
				return err
			}
			inv.Accept(existing.ID, u.now().UTC())
		}

		if err := r.Invites.Create(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	if link != nil {
		u.network.Project(ctx, *link)
	}
	u.log.Info("invite sent",
		zap.String("invite_id", out.ID),
		zap.String("loaner_id", out.LoanerID),
		zap.String("status", string(out.Status)))
	return out, nil
}

// ResolveOnRegistration accepts every pending invite for email on behalf of the
// new loanee and connects each inviting loaner. It runs inside the caller's
// unit of work; the returned links are for projection after commit.
func (u *Usecase) ResolveOnRegistration(ctx context.Context, r uow.Repos, email, loaneeID string) ([]domainNetwork.Link, error) {
	pending, err := r.Invites.ListPendingByEmail(ctx, domainUser.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	links := make([]domainNetwork.Link, 0, len(pending))
	for i := range pending {
		inv := &pending[i]
		if !inv.Accept(loaneeID, now) {
			continue
		}
		if err := r.Invites.Save(ctx, inv); err != nil {
			return nil, err
		}
		link, err := network.Link(ctx, r, inv.LoanerID, loaneeID)
		if err != nil {
			return nil, err
		}
		if link != nil {
			links = append(links, *link)
		}
	}
	return links, nil
}

// AcceptInvite is idempotent: accepting an already accepted invite returns it unchanged.
func (u *Usecase) AcceptInvite(ctx context.Context, inviteID, loaneeID string) (*domainInvite.Invite, error) {
	var (
		out  *domainInvite.Invite
		link *domainNetwork.Link
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Invites.GetByID(ctx, inviteID)
		if err != nil {
			return err
		}
		loanee, err := r.Users.GetByID(ctx, loaneeID)
		if err != nil {
			return err
		}
		if !loanee.IsLoanee() {
			return fmt.Errorf("only loanees accept invites: %w", domainUser.ErrWrongRole)
		}
		if domainUser.NormalizeEmail(loanee.Email) != inv.Email {
			return domainInvite.ErrNotInvitee
		}
		out = inv
		if !inv.Accept(loanee.ID, u.now().UTC()) {
			return nil
		}
		if err := r.Invites.Save(ctx, inv); err != nil {
			return err
		}
		link, err = network.Link(ctx, r, inv.LoanerID, loanee.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if link != nil {
		u.network.Project(ctx, *link)
	}
	return out, nil
}

func (u *Usecase) PendingInvitesFor(ctx context.Context, email string) ([]domainInvite.Invite, error) {
	var out []domainInvite.Invite
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Invites.ListPendingByEmail(ctx, domainUser.NormalizeEmail(email))
		return err
	})
	return out, err
}

func (u *Usecase) SentInvites(ctx context.Context, loanerID string) ([]domainInvite.Invite, error) {
	var out []domainInvite.Invite
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Invites.ListByLoaner(ctx, loanerID)
		return err
	})
	return out, err
}
