package http

import (
	"net/http"
	"strings"

	"prizzys-backend/internal/adapter/middleware"
	domainLoan "prizzys-backend/internal/domain/loan"
	domainUser "prizzys-backend/internal/domain/user"
	"prizzys-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// caller is only reachable behind RequireAuth, so a missing user is a wiring bug.
func caller(c echo.Context) *domainUser.User {
	u, ok := middleware.UserFrom(c)
	if !ok {
		panic("http: handler mounted without RequireAuth")
	}
	return u
}

func actorOf(u *domainUser.User) domainLoan.Actor {
	return domainLoan.Actor{UserID: u.ID, Role: u.Role}
}

// pathID reads a 32-hex path param, writing a 400 when it is malformed.
func pathID(c echo.Context, name string) (string, bool) {
	v := c.Param(name)
	if !id.Valid(v) {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
		return "", false
	}
	return v, true
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
