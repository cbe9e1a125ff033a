package gormrepo

import (
	"context"
	"time"

	loanDomain "prizzys-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", loanID).First(&out).Error; err != nil {
		return nil, translate(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE; sqlite ignores the locking clause.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", loanID).
		First(&out).Error
	if err != nil {
		return nil, translate(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

// SaveTransition writes only the lifecycle-mutable columns, conditioned on the
// status the caller read. Identity columns and request date are never rewritten.
func (r *LoanRepository) SaveTransition(ctx context.Context, l *loanDomain.Loan, expected loanDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND status = ?", l.ID, expected).
		Updates(map[string]any{
			"status":                   l.Status,
			"interest_rate":            l.InterestRate,
			"proof_of_disbursement":    l.ProofOfDisbursement,
			"proof_of_repayment":       l.ProofOfRepayment,
			"approval_date":            l.ApprovalDate,
			"confirmed_date":           l.ConfirmedDate,
			"repayment_submitted_date": l.RepaymentSubmittedDate,
			"cleared_date":             l.ClearedDate,
			"rescinded_date":           l.RescindedDate,
			"defaulted_date":           l.DefaultedDate,
			"status_updated_at":        l.StatusUpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrStale
	}
	return nil
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.LoanerID != "" {
		q = q.Where("loaner_id = ?", f.LoanerID)
	}
	if f.LoaneeID != "" {
		q = q.Where("loanee_id = ?", f.LoaneeID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	err := q.Order("request_date DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]loanDomain.Loan, error) {
	out := []loanDomain.Loan{}
	err := r.db.WithContext(ctx).
		Where("status IN ? AND due_date < ?",
			[]loanDomain.Status{loanDomain.StatusActive, loanDomain.StatusRepaymentSubmitted},
			loanDomain.Day(asOf)).
		Order("due_date ASC, id ASC").
		Find(&out).Error
	return out, err
}
