package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	domainLoan "prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	LoanerID string `json:"loaner_id" validate:"required,hex32"`
	// decimal string, e.g. "5000.50"
	Amount   string `json:"amount"    validate:"required,money"`
	Currency string `json:"currency"  validate:"omitempty,len=3"`
	// Accept canonical date `YYYY-MM-DD`
	DueDate string `json:"due_date"  validate:"required,datetime=2006-01-02"`
	Notes   string `json:"notes"     validate:"omitempty,max=500"`
}

type approveLoanReq struct {
	Proof        string `json:"proof"         validate:"required"`
	InterestRate string `json:"interest_rate" validate:"omitempty,rate"`
}

// Proof is optional for repayments.
type repayLoanReq struct {
	Proof string `json:"proof"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	due, _ := time.Parse(time.DateOnly, req.DueDate)
	dto, err := h.uc.RequestLoan(c.Request().Context(), loan.RequestInput{
		LoaneeID: caller(c).ID,
		LoanerID: req.LoanerID,
		Amount:   decimal.RequireFromString(strings.TrimSpace(req.Amount)),
		Currency: req.Currency,
		DueDate:  due,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	list, err := h.uc.LoansFor(c.Request().Context(), actorOf(caller(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context(), actorOf(caller(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return nil
	}
	dto, err := h.uc.Get(c.Request().Context(), actorOf(caller(c)), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) History(c echo.Context) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return nil
	}
	list, err := h.uc.History(c.Request().Context(), actorOf(caller(c)), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req approveLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	rate := decimal.Zero
	if s := strings.TrimSpace(req.InterestRate); s != "" {
		rate = decimal.RequireFromString(s)
	}
	return h.act(c, func(ctx context.Context, a domainLoan.Actor, id string) (*loan.LoanDTO, error) {
		return h.uc.Approve(ctx, a, id, loan.ApproveInput{Proof: req.Proof, InterestRate: rate})
	})
}

func (h *LoanHandler) SubmitRepayment(c echo.Context) error {
	var req repayLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	return h.act(c, func(ctx context.Context, a domainLoan.Actor, id string) (*loan.LoanDTO, error) {
		return h.uc.SubmitRepayment(ctx, a, id, req.Proof)
	})
}

func (h *LoanHandler) ConfirmReceipt(c echo.Context) error { return h.act(c, h.uc.ConfirmReceipt) }
func (h *LoanHandler) ClearLoan(c echo.Context) error      { return h.act(c, h.uc.Clear) }
func (h *LoanHandler) RescindLoan(c echo.Context) error    { return h.act(c, h.uc.Rescind) }
func (h *LoanHandler) MarkDefaulted(c echo.Context) error  { return h.act(c, h.uc.MarkDefaulted) }

// act runs one lifecycle transition on the loan named by the path.
func (h *LoanHandler) act(c echo.Context, fn func(context.Context, domainLoan.Actor, string) (*loan.LoanDTO, error)) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return nil
	}
	dto, err := fn(c.Request().Context(), actorOf(caller(c)), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
