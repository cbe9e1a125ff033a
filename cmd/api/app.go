package main

import (
	"context"
	"fmt"

	"prizzys-backend/internal/adapter/graph"
	"prizzys-backend/internal/adapter/repository/gormrepo"
	"prizzys-backend/internal/config"
	domainNetwork "prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/infrastructure/db"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the process-wide resources shared by every command.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	tx    *gormrepo.GormUoW
	graph graph.Client
}

func openApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	gdb, err := db.OpenGorm(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		log.Info("gorm: schema migrated")
	}
	return &app{cfg: cfg, log: log, db: gdb, tx: gormrepo.NewGormUoW(gdb)}, nil
}

// projector connects the graph mirror when GRAPH_URI is set. A nil
// projector means mirroring is off.
func (a *app) projector(ctx context.Context) (domainNetwork.Projector, error) {
	if !a.cfg.GraphEnabled() {
		return nil, nil
	}
	c, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:      a.cfg.GraphURI,
		Database: a.cfg.GraphDatabase,
		Username: a.cfg.GraphUser,
		Password: a.cfg.GraphPass,
	})
	if err != nil {
		return nil, err
	}
	p := graph.NewProjector(c)
	if err := p.EnsureSchema(ctx); err != nil {
		_ = c.Close(ctx)
		return nil, fmt.Errorf("graph schema: %w", err)
	}
	a.graph = c
	a.log.Info("graph: mirroring enabled", zap.String("uri", a.cfg.GraphURI))
	return p, nil
}

func (a *app) pingDB(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *app) close(ctx context.Context) {
	if a.graph != nil {
		if err := a.graph.Close(ctx); err != nil {
			a.log.Warn("graph: close", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
