package http

import (
	"errors"
	"net/http"

	"prizzys-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
)

// statusFor maps the shared error taxonomy onto HTTP codes. Anything outside
// it is a server fault and its message is not exposed.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrAuthFailure):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrDuplicateEmail),
		errors.Is(err, apperr.ErrDuplicateInvite):
		return http.StatusConflict, err.Error()
	case errors.Is(err, apperr.ErrInvalidAmount),
		errors.Is(err, apperr.ErrInvalidDueDate),
		errors.Is(err, apperr.ErrLenderUnavailable),
		errors.Is(err, apperr.ErrMissingProof),
		errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func writeError(c echo.Context, err error) error {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, msg).SetInternal(err)
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// ErrorHandler renders echo errors in the ErrorResponse shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := http.StatusInternalServerError, "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, ErrorResponse{Error: msg})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// bindValid binds the JSON body into req and validates it, writing the
// error response itself. ok is false when the handler should return.
func bindValid(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, badBody(c)
	}
	if err := c.Validate(req); err != nil {
		return false, invalid(c, err)
	}
	return true, nil
}
