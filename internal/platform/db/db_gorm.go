// Package db opens the GORM connection and migrates the schema.
package db

import (
	"fmt"
	"log/slog"
	"time"

	sqlCommenter "github.com/gouyelliot/gorm-sqlcommenter-plugin"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "tend_backend/internal/feature/auth/adapters"
	"tend_backend/internal/feature/auth/domain/entity"
	experimentadapters "tend_backend/internal/feature/experiments/adapters"
	northstaradapters "tend_backend/internal/feature/northstar/adapters"
	relationshipadapters "tend_backend/internal/feature/relationships/adapters"
	"tend_backend/internal/platform/config"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a connection for dsn.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the data source name for the configured driver.
func BuildDSN(cfg config.DatabaseConfig) string {
	if cfg.Driver == "sqlite" {
		return cfg.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ConnectWithRetry calls open until it succeeds or timeout has passed.
// Postgres often starts after the server in container setups.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects with the configured driver, installs the SQL commenter and
// migrates when database.runmigrations is set.
func OpenDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectWithin, opener(cfg.Driver))
	if err != nil {
		return nil, err
	}
	if err := db.Use(sqlCommenter.New()); err != nil {
		return nil, fmt.Errorf("install sql commenter: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite allows one writer; a single connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database ready", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&authadapters.SessionModel{},
		&relationshipadapters.RelationshipModel{},
		&northstaradapters.NorthStarModel{},
		&experimentadapters.ExperimentModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func opener(driver string) Opener {
	gcfg := &gorm.Config{TranslateError: true}
	if driver == "sqlite" {
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn+"?_foreign_keys=on"), gcfg)
		}
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gcfg)
	}
}
