package http

import (
	"net/http"

	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct{ uc *user.Usecase }

func NewProfileHandler(uc *user.Usecase) *ProfileHandler { return &ProfileHandler{uc: uc} }

type acceptingReq struct {
	// pointer so an explicit false passes "required"
	Accepting *bool `json:"accepting" validate:"required"`
}

type bankAccountReq struct {
	AccountNumber string `json:"account_number" validate:"required,max=32"`
	AccountName   string `json:"account_name"   validate:"omitempty,max=128"`
	BankName      string `json:"bank_name"      validate:"required,max=128"`
}

func (h *ProfileHandler) SetAcceptingLoans(c echo.Context) error {
	var req acceptingReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	u, err := h.uc.SetAcceptingLoans(c.Request().Context(), caller(c).ID, *req.Accepting)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) UpdateBankAccount(c echo.Context) error {
	var req bankAccountReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	u, err := h.uc.UpdateBankAccount(c.Request().Context(), caller(c).ID, domainUser.BankAccount(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
