package db

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"prizzys-backend/internal/config"
	"prizzys-backend/internal/domain/invite"
	"prizzys-backend/internal/domain/loan"
	"prizzys-backend/internal/domain/network"
	"prizzys-backend/internal/domain/transition"
	"prizzys-backend/internal/domain/user"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the service owns, in migration order.
var Models = []any{
	&user.User{},
	&network.Link{},
	&invite.Invite{},
	&loan.Loan{},
	&transition.Transition{},
}

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
}

func OpenGorm(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := openGorm(dial, gormLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, err
	}
	log.Info("gorm: connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// OpenGormWithDialector opens and pings an already-built dialector; tests use it with sqlmock.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return openGorm(dial, logger.Warn)
}

func openGorm(dial gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         newGormLogger(os.Stdout, level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// newGormLogger mirrors logger.Default but stays quiet on lookups that miss;
// callers map gorm.ErrRecordNotFound to domain errors themselves.
func newGormLogger(w io.Writer, level logger.LogLevel) logger.Interface {
	return logger.New(stdlog.New(w, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate creates or updates every table in Models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func gormLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	}
	return logger.Warn
}
