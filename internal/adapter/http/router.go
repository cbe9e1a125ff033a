package http

import (
	"time"

	"prizzys-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Health  *Handler
	Auth    *AuthHandler
	Profile *ProfileHandler
	Network *NetworkHandler
	Invites *InviteHandler
	Loans   *LoanHandler
}

type RouterOptions struct {
	Authenticator  middleware.Authenticator
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	Log            *zap.Logger
}

// NewRouter builds the echo instance serving the /api/v1 surface.
func NewRouter(h Handlers, opt RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(opt.Log))

	e.GET("/health", h.Health.Health)

	api := e.Group("/api/v1")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", middleware.RequireAuth(opt.Authenticator, opt.Log))
	idem := middleware.Idempotency(opt.Redis, opt.IdempotencyTTL, opt.Log)

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	authed.PATCH("/me/accepting-loans", h.Profile.SetAcceptingLoans, idem)
	authed.PUT("/me/bank-account", h.Profile.UpdateBankAccount, idem)

	authed.GET("/network", h.Network.Members)
	authed.GET("/network/lenders", h.Network.Lenders)

	authed.POST("/invites", h.Invites.Send, idem)
	authed.GET("/invites/pending", h.Invites.Pending)
	authed.GET("/invites/sent", h.Invites.Sent)
	authed.POST("/invites/:invite_id/accept", h.Invites.Accept, idem)

	authed.POST("/loans", h.Loans.CreateLoan, idem)
	authed.GET("/loans", h.Loans.ListLoans)
	authed.GET("/loans/summary", h.Loans.Summary)
	authed.GET("/loans/:loan_id", h.Loans.GetLoan)
	authed.GET("/loans/:loan_id/history", h.Loans.History)
	authed.POST("/loans/:loan_id/approve", h.Loans.ApproveLoan, idem)
	authed.POST("/loans/:loan_id/confirm", h.Loans.ConfirmReceipt, idem)
	authed.POST("/loans/:loan_id/repay", h.Loans.SubmitRepayment, idem)
	authed.POST("/loans/:loan_id/clear", h.Loans.ClearLoan, idem)
	authed.POST("/loans/:loan_id/rescind", h.Loans.RescindLoan, idem)
	authed.POST("/loans/:loan_id/default", h.Loans.MarkDefaulted, idem)

	return e
}
