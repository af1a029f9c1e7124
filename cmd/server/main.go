package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tend_backend/internal/app/di"
	"tend_backend/internal/app/router"
	accountadapters "tend_backend/internal/feature/account/adapters"
	accounthandler "tend_backend/internal/feature/account/transport/handler"
	accountusecase "tend_backend/internal/feature/account/usecase"
	authadapters "tend_backend/internal/feature/auth/adapters"
	authhandler "tend_backend/internal/feature/auth/transport/handler"
	authusecase "tend_backend/internal/feature/auth/usecase"
	experimentadapters "tend_backend/internal/feature/experiments/adapters"
	experimenthandler "tend_backend/internal/feature/experiments/transport/handler"
	experimentusecase "tend_backend/internal/feature/experiments/usecase"
	northstaradapters "tend_backend/internal/feature/northstar/adapters"
	northstarhandler "tend_backend/internal/feature/northstar/transport/handler"
	northstarusecase "tend_backend/internal/feature/northstar/usecase"
	pageshandler "tend_backend/internal/feature/pages/transport/handler"
	relationshipadapters "tend_backend/internal/feature/relationships/adapters"
	relationshiphandler "tend_backend/internal/feature/relationships/transport/handler"
	relationshipusecase "tend_backend/internal/feature/relationships/usecase"
	structuringhandler "tend_backend/internal/feature/structuring/transport/handler"
	"tend_backend/internal/platform/cache"
	"tend_backend/internal/platform/config"
	platformdb "tend_backend/internal/platform/db"
	"tend_backend/internal/platform/http/handler"
	"tend_backend/internal/platform/jobs"
	"tend_backend/internal/platform/jwtauth"
	"tend_backend/internal/platform/logging"
	platformredis "tend_backend/internal/platform/redis"
	"tend_backend/internal/platform/sessionmw"
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

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis is optional: without it sessions live in the database, caching is
	// off and rate limits are per process.
	rdb, err := platformredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, running without it", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	relationshipRepo := relationshipadapters.NewRelationshipPostgres(db)
	northStarRepo := cache.NewCachingNorthStarRepository(rdb, 0, northstaradapters.NewNorthStarPostgres(db), "northstar")
	experimentRepo := experimentadapters.NewExperimentPostgres(db)
	accountRepo := accountadapters.NewAccountPostgres(db)

	// Usecase
	authenticator := authusecase.NewAuthenticator(userRepo, sessionRepo, cfg.Session.TTL)
	guard := authusecase.NewAccessGuard(authenticator)
	relationshipUC := relationshipusecase.NewRelationshipsUsecase(relationshipRepo)
	northStarUC := northstarusecase.NewNorthStarUsecase(northStarRepo)
	experimentUC := experimentusecase.NewExperimentsUsecase(experimentRepo)
	accountUC := accountusecase.NewAccountUsecase(accountRepo, authenticator, northStarRepo)
	structurer, err := di.NewStructurer(ctx, cfg.LLM, northStarUC, relationshipUC)
	if err != nil {
		return err
	}

	// Guard
	issuer := jwtauth.NewIssuer(cfg.Security.JWTSecret, 24*time.Hour)
	var bearer sessionmw.BearerParser
	if issuer.Enabled() {
		bearer = issuer
	} else {
		slog.Warn("security.jwtsecret is not set; bearer tokens are disabled")
	}
	sessions := sessionmw.New(guard, bearer, sessionmw.Cookies{
		Secure: cfg.IsProduction(),
		MaxAge: authenticator.SessionTTL(),
	})

	// Handler
	r := router.NewRouter(router.Deps{
		Sessions:      sessions,
		Limiter:       di.NewLimiter(rdb, cfg.LLM.RateLimit),
		CORSOrigins:   cfg.CORS.AllowOrigins,
		ReadyChecks:   readyChecks(db, rdb),
		Auth:          authhandler.NewAuthHandler(authenticator, sessions, issuer),
		Relationships: relationshiphandler.NewRelationshipHandler(relationshipUC, sessions),
		NorthStar:     northstarhandler.NewNorthStarHandler(northStarUC, sessions),
		Experiments:   experimenthandler.NewExperimentHandler(experimentUC, sessions),
		Account:       accounthandler.NewAccountHandler(accountUC, sessions),
		Structuring:   structuringhandler.NewStructuringHandler(structurer, sessions),
		Pages:         pageshandler.NewPagesHandler(),
	})

	// Jobs
	scheduler := jobs.NewScheduler(authenticator)
	if err := scheduler.Start(cfg.Session.SweepSchedule); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTP.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

func readyChecks(db *gorm.DB, rdb *redis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
