// Command sweep deletes expired sessions once and exits. It suits deployments
// that schedule maintenance outside the server, such as a cron job container.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tend_backend/internal/app/di"
	authadapters "tend_backend/internal/feature/auth/adapters"
	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/platform/config"
	platformdb "tend_backend/internal/platform/db"
	"tend_backend/internal/platform/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.New(cfg.Environment)

	db, err := platformdb.OpenDB(cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis sessions expire by TTL, so only the sessions table needs sweeping.
	auth := authusecase.NewAuthenticator(authadapters.NewUserPostgres(db), di.NewSessionRepository(nil, db), cfg.Session.TTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	n, err := auth.PurgeExpiredSessions(ctx)
	cancel()
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	slog.Info("sweep ok", "deleted", n)
}
