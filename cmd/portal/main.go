package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/prefeitura-sp/coresso-portal/config"
	"github.com/prefeitura-sp/coresso-portal/internal/bootstrap"
	"github.com/prefeitura-sp/coresso-portal/internal/data"
)

// auditRetention bounds how long login audit rows are kept.
const auditRetention = 90 * 24 * time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting coresso portal",
		"addr", cfg.HTTP.Addr,
		"audit_enabled", cfg.Postgres.Enabled(),
		"revocation_enabled", cfg.Redis.Enabled(),
		"dev", cfg.IsDev)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if db != nil {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}
		if redisClient != nil {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}
	}()

	authService, err := bootstrap.BuildAuthService(bootstrap.AuthConfig{
		Auth:        cfg.Auth,
		Notify:      cfg.Notify,
		IsDev:       cfg.IsDev,
		RedisClient: redisClient,
		DB:          db,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	server := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config: &cfg,
		Auth:   authService,
		Logger: logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	if db != nil {
		repo := data.NewLoginAuditRepo(db)
		g.Go(func() error {
			return auditPruneLoop(gctx, repo, logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Logger:  logger,
		})
	})

	return g.Wait()
}

// initInfrastructure connects the optional database and redis dependencies.
// Both are skipped when not configured; the portal still serves logins.
//
//nolint:ireturn // returning redis.UniversalClient keeps the client flavor flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	var db *sql.DB
	if cfg.Postgres.Enabled() {
		var err error
		db, err = bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
			DBConfig: cfg.Postgres,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled() {
		var err error
		redisClient, err = bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{
			RedisConfig: cfg.Redis,
			Logger:      logger,
		})
		if err != nil {
			if db != nil {
				if cerr := db.Close(); cerr != nil {
					logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
				}
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	return db, redisClient, nil
}

// auditPruneLoop removes expired login audit rows once a day until the
// context is canceled.
func auditPruneLoop(ctx context.Context, repo *data.LoginAuditRepo, logger *slog.Logger) error {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed, err := repo.PruneBefore(ctx, time.Now().Add(-auditRetention))
			if err != nil {
				logger.ErrorContext(ctx, "prune login audits failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.InfoContext(ctx, "pruned login audits", "removed", removed)
			}
		}
	}
}
