package loan

import (
	"context"
	"sort"

	domain "prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/money"
	"prizzys-backend/internal/domain/uow"
	domainUser "prizzys-backend/internal/domain/user"

	"github.com/shopspring/decimal"
)

func (u *Usecase) Get(ctx context.Context, viewer domain.Actor, loanID string) (*LoanDTO, error) {
	var out *domain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if !canView(viewer, l) {
			return domain.ErrNotAParty
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(out, u.now().UTC()), nil
}

// LoansFor lists loans newest first: everything for admins, otherwise the
// loans where the viewer is the party matching their role.
func (u *Usecase) LoansFor(ctx context.Context, viewer domain.Actor) ([]LoanDTO, error) {
	loans, err := u.list(ctx, viewer)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i], now))
	}
	return out, nil
}

func (u *Usecase) Summary(ctx context.Context, viewer domain.Actor) (*SummaryDTO, error) {
	loans, err := u.list(ctx, viewer)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	totals := map[money.Currency]decimal.Decimal{}
	out := &SummaryDTO{ActivePrincipal: []CurrencyTotal{}}
	for i := range loans {
		l := &loans[i]
		switch l.Status {
		case domain.StatusRequested:
			out.PendingRequests++
		case domain.StatusApprovedPendingConfirmation:
			out.PendingConfirmations++
		case domain.StatusRepaymentSubmitted:
			out.RepaymentsToReview++
		}
		if !l.Status.Outstanding() {
			continue
		}
		out.ActiveLoans++
		if l.IsOverdue(now) {
			out.Overdue++
		}
		totals[l.Currency] = totals[l.Currency].Add(l.Amount)
	}
	for c, amt := range totals {
		out.ActivePrincipal = append(out.ActivePrincipal, CurrencyTotal{Currency: c, Amount: amt, Formatted: money.Format(amt, c)})
	}
	sort.Slice(out.ActivePrincipal, func(i, j int) bool {
		return out.ActivePrincipal[i].Currency < out.ActivePrincipal[j].Currency
	})
	return out, nil
}

// History returns the loan's transitions oldest first, with Get's visibility.
func (u *Usecase) History(ctx context.Context, viewer domain.Actor, loanID string) ([]TransitionDTO, error) {
	var out []TransitionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if !canView(viewer, l) {
			return domain.ErrNotAParty
		}
		rows, err := r.Transitions.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]TransitionDTO, 0, len(rows))
		for _, t := range rows {
			out = append(out, toTransitionDTO(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) list(ctx context.Context, viewer domain.Actor) ([]domain.Loan, error) {
	var f domain.Filter
	switch viewer.Role {
	case domainUser.RoleAdmin:
	case domainUser.RoleLoaner:
		f.LoanerID = viewer.UserID
	case domainUser.RoleLoanee:
		f.LoaneeID = viewer.UserID
	default:
		return nil, domain.ErrNotAParty
	}
	var out []domain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Loans.List(ctx, f)
		return err
	})
	return out, err
}

func canView(viewer domain.Actor, l *domain.Loan) bool {
	return viewer.Role == domainUser.RoleAdmin || l.IsParty(viewer.UserID)
}
