package http

import (
	"net/http"

	"prizzys-backend/internal/usecase/network"

	"github.com/labstack/echo/v4"
)

type NetworkHandler struct{ uc *network.Usecase }

func NewNetworkHandler(uc *network.Usecase) *NetworkHandler { return &NetworkHandler{uc: uc} }

func (h *NetworkHandler) Members(c echo.Context) error {
	members, err := h.uc.NetworkMembersFor(c.Request().Context(), caller(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// Lenders lists the caller's loaners that currently accept requests.
func (h *NetworkHandler) Lenders(c echo.Context) error {
	u := caller(c)
	if !u.IsLoanee() {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "only loanees have lenders"})
	}
	loaners, err := h.uc.LendableLoaners(c.Request().Context(), u.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loaners)
}
