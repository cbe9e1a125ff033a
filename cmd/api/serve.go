package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "prizzys-backend/internal/adapter/http"
	"prizzys-backend/internal/adapter/session"
	"prizzys-backend/internal/infrastructure/cache"
	"prizzys-backend/internal/usecase/auth"
	"prizzys-backend/internal/usecase/invite"
	"prizzys-backend/internal/usecase/loan"
	"prizzys-backend/internal/usecase/network"
	"prizzys-backend/internal/usecase/user"
	"prizzys-backend/internal/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the default sweeper",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	rdb, err := cache.OpenRedis(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	proj, err := a.projector(ctx)
	if err != nil {
		return err
	}

	netUC := network.NewUsecase(a.tx, proj, log)
	invUC := invite.NewUsecase(a.tx, netUC, log)
	authUC := auth.NewUsecase(a.tx, invUC, netUC, session.NewRedisStore(rdb, log), auth.Options{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.SessionTTL(),
	}, log)
	loanUC := loan.NewUsecase(a.tx, log)

	checks := []httpadp.Check{
		{Name: "db", Ping: a.pingDB},
		{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
	if a.graph != nil {
		checks = append(checks, httpadp.Check{Name: "graph", Ping: a.graph.VerifyConnectivity})
	}

	e := httpadp.NewRouter(httpadp.Handlers{
		Health:  httpadp.NewHandler(checks...),
		Auth:    httpadp.NewAuthHandler(authUC),
		Profile: httpadp.NewProfileHandler(user.NewUsecase(a.tx, log)),
		Network: httpadp.NewNetworkHandler(netUC),
		Invites: httpadp.NewInviteHandler(invUC),
		Loans:   httpadp.NewLoanHandler(loanUC),
	}, httpadp.RouterOptions{
		Authenticator:  authUC,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		Log:            log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.AppPort
		log.Info("http: listening", zap.String("addr", addr))
		if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.NewSweeper(loanUC, cfg.DefaultSweepInterval(), log).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("http: shutting down")
		return e.Shutdown(sctx)
	})
	return g.Wait()
}
