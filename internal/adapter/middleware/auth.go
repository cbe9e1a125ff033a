package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"prizzys-backend/internal/domain/apperr"
	domainSession "prizzys-backend/internal/domain/session"
	domainUser "prizzys-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ctxUser    = "auth.user"
	ctxSession = "auth.session"
	ctxToken   = "auth.token"
)

// Authenticator resolves a bearer token to the signed-in user.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*domainUser.User, *domainSession.Session, error)
}

// RequireAuth rejects requests without a live session and stores the caller
// on the echo context for handlers.
func RequireAuth(a Authenticator, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			usr, sess, err := a.CurrentUser(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, apperr.ErrAuthFailure) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
				}
				log.Error("auth: resolve session", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
			c.Set(ctxUser, usr)
			c.Set(ctxSession, sess)
			c.Set(ctxToken, token)
			return next(c)
		}
	}
}

// UserFrom returns the caller stored by RequireAuth.
func UserFrom(c echo.Context) (*domainUser.User, bool) {
	u, ok := c.Get(ctxUser).(*domainUser.User)
	return u, ok && u != nil
}

func TokenFrom(c echo.Context) string {
	s, _ := c.Get(ctxToken).(string)
	return s
}

func bearer(h string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
