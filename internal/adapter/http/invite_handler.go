package http

import (
	"net/http"

	"prizzys-backend/internal/usecase/invite"

	"github.com/labstack/echo/v4"
)

type InviteHandler struct{ uc *invite.Usecase }

func NewInviteHandler(uc *invite.Usecase) *InviteHandler { return &InviteHandler{uc: uc} }

type sendInviteReq struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

func (h *InviteHandler) Send(c echo.Context) error {
	var req sendInviteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	inv, err := h.uc.SendInvite(c.Request().Context(), caller(c).ID, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, inv)
}

// Pending lists invites addressed to the caller's email.
func (h *InviteHandler) Pending(c echo.Context) error {
	list, err := h.uc.PendingInvitesFor(c.Request().Context(), caller(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *InviteHandler) Sent(c echo.Context) error {
	list, err := h.uc.SentInvites(c.Request().Context(), caller(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *InviteHandler) Accept(c echo.Context) error {
	id, ok := pathID(c, "invite_id")
	if !ok {
		return nil
	}
	inv, err := h.uc.AcceptInvite(c.Request().Context(), id, caller(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}
