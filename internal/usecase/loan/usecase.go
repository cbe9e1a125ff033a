package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/money"
	"prizzys-backend/internal/domain/transition"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"

	"go.uber.org/zap"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, log: log, now: time.Now}
}

// RequestLoan files a new REQUESTED loan from a loanee to a loaner in their network.
func (u *Usecase) RequestLoan(ctx context.Context, in RequestInput) (*LoanDTO, error) {
	now := u.now().UTC()
	var out *domain.Loan

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loanee, err := r.Users.GetByID(ctx, in.LoaneeID)
		if err != nil {
			return err
		}
		if !loanee.IsLoanee() {
			return fmt.Errorf("only loanees request loans: %w", domainUser.ErrWrongRole)
		}
		loaner, err := r.Users.GetByID(ctx, in.LoanerID)
		if err != nil {
			return err
		}
		if !loaner.IsLoaner() {
			return fmt.Errorf("user %s is not a loaner: %w", loaner.ID, domainUser.ErrWrongRole)
		}
		ok, err := r.Network.AreConnected(ctx, loaner.ID, loanee.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotNetworked
		}
		if !loaner.IsAcceptingLoans {
			return domain.ErrLenderUnavailable
		}

		cur, err := money.Parse(in.Currency)
		if err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrInvalidAmount)
		}
		if cur == "" {
			cur = loanee.Currency
		}
		if cur == "" {
			cur = money.DefaultCurrency
		}

		l, err := domain.NewRequest(domain.RequestParams{
			LoaneeID:   loanee.ID,
			LoaneeName: loanee.Name,
			LoanerID:   loaner.ID,
			LoanerName: loaner.Name,
			Amount:     in.Amount,
			Currency:   cur,
			DueDate:    in.DueDate,
			Notes:      in.Notes,
		}, now)
		if err != nil {
			return err
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan requested",
		zap.String("loan_id", out.ID),
		zap.String("loanee_id", out.LoaneeID),
		zap.String("loaner_id", out.LoanerID),
		zap.String("amount", out.Amount.String()),
		zap.String("currency", string(out.Currency)))
	return toDTO(out, now), nil
}

func (u *Usecase) Approve(ctx context.Context, actor domain.Actor, loanID string, in ApproveInput) (*LoanDTO, error) {
	return u.transition(ctx, actor, loanID, domain.Approve{Proof: in.Proof, InterestRate: in.InterestRate})
}

func (u *Usecase) Rescind(ctx context.Context, actor domain.Actor, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, actor, loanID, domain.Rescind{})
}

func (u *Usecase) ConfirmReceipt(ctx context.Context, actor domain.Actor, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, actor, loanID, domain.ConfirmReceipt{})
}

func (u *Usecase) SubmitRepayment(ctx context.Context, actor domain.Actor, loanID, proof string) (*LoanDTO, error) {
	return u.transition(ctx, actor, loanID, domain.SubmitRepayment{Proof: proof})
}

func (u *Usecase) Clear(ctx context.Context, actor domain.Actor, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, actor, loanID, domain.Clear{})
}

func (u *Usecase) MarkDefaulted(ctx context.Context, actor domain.Actor, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, actor, loanID, domain.MarkDefaulted{})
}

// transition applies cmd under the loan row lock, persists it conditioned on
// the status it was read in, and appends the audit row in the same tx.
func (u *Usecase) transition(ctx context.Context, actor domain.Actor, loanID string, cmd domain.Command) (*LoanDTO, error) {
	now := u.now().UTC()
	var (
		out  *domain.Loan
		from domain.Status
	)

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		prev, err := l.Apply(actor, cmd, now)
		if err != nil {
			return err
		}
		if err := r.Loans.SaveTransition(ctx, l, prev); err != nil {
			return err
		}
		if err := r.Transitions.Create(ctx, transition.Record(l, cmd.Action(), prev, actor, carriesProof(cmd))); err != nil {
			return err
		}
		out, from = l, prev
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan transition",
		zap.String("loan_id", out.ID),
		zap.String("action", string(cmd.Action())),
		zap.String("from", string(from)),
		zap.String("to", string(out.Status)),
		zap.String("actor_id", actor.UserID))
	return toDTO(out, now), nil
}

func carriesProof(cmd domain.Command) bool {
	switch c := cmd.(type) {
	case domain.Approve:
		return strings.TrimSpace(c.Proof) != ""
	case domain.SubmitRepayment:
		return strings.TrimSpace(c.Proof) != ""
	}
	return false
}

// SweepDefaults marks every overdue ACTIVE loan as defaulted on behalf of the
// system. Loans awaiting repayment review and loans that moved on concurrently
// are skipped.
func (u *Usecase) SweepDefaults(ctx context.Context) (int, error) {
	var overdue []domain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		overdue, err = r.Loans.ListOverdue(ctx, u.now().UTC())
		return err
	})
	if err != nil {
		return 0, err
	}

	n := 0
	for _, l := range overdue {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if l.Status != domain.StatusActive {
			continue
		}
		_, err := u.MarkDefaulted(ctx, domain.System, l.ID)
		switch {
		case err == nil:
			n++
		case errors.Is(err, domain.ErrInvalidTransition):
			u.log.Debug("sweep: loan moved on", zap.String("loan_id", l.ID), zap.Error(err))
		default:
			return n, fmt.Errorf("default loan %s: %w", l.ID, err)
		}
	}
	if n > 0 {
		u.log.Info("sweep: loans defaulted", zap.Int("count", n))
	}
	return n, nil
}
