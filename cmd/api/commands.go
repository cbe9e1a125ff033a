package main

import (
	"context"
	"errors"
	"fmt"

	"prizzys-backend/internal/adapter/graph"
	"prizzys-backend/internal/infrastructure/db"
	"prizzys-backend/internal/usecase/loan"
	"prizzys-backend/internal/usecase/network"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		if err := db.Migrate(a.db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrate: done", zap.Int("tables", len(db.Models)))
		return nil
	},
}

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo accounts (admin, one loaner, one networked loanee)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		n, err := seedDemo(cmd.Context(), a.tx, seedPassword, bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d new account(s)\n", n)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep-defaults",
	Short: "Mark every overdue loan as defaulted once and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		n, err := loan.NewUsecase(a.tx, log).SweepDefaults(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "defaulted %d loan(s)\n", n)
		return nil
	},
}

var graphSyncCmd = &cobra.Command{
	Use:   "graph-sync",
	Short: "Replay every network edge into the graph mirror",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cfg.GraphEnabled() {
			return errors.New("graph-sync needs GRAPH_URI")
		}
		a, err := openApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		proj, err := a.projector(cmd.Context())
		if err != nil {
			return err
		}
		n, err := network.NewUsecase(a.tx, proj, log).Resync(cmd.Context())
		if err != nil {
			return err
		}
		held, err := graph.NewProjector(a.graph).CountLinks(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "projected %d edge(s), graph holds %d\n", n, held)
		if held < int64(n) {
			return fmt.Errorf("graph holds %d edge(s), expected at least %d", held, n)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "prizzys-demo", "password for every seeded account")
}
