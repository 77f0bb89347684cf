// Command server runs the farm manager API.
//
// @title                       Farm Manager API
// @version                     1.0
// @description                 Farm management collections, role-gated sections and derived dashboard views.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/greenfield-farms/farm-manager/internal/api"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
	mongostore "github.com/greenfield-farms/farm-manager/internal/infrastructure/db/mongo"
	redisstore "github.com/greenfield-farms/farm-manager/internal/infrastructure/db/redis"
	"github.com/greenfield-farms/farm-manager/internal/pkg/config"
	"github.com/greenfield-farms/farm-manager/pkg/logger"
)

func main() {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "farm-manager",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	svcs := api.BuildServices(cfg, db, rdb, log)
	if cfg.Admin.Enabled() {
		if err := seedAdmin(ctx, svcs.Auth, cfg.Admin, log); err != nil {
			return err
		}
	}

	e := api.NewRouter(svcs, logger.Component("http"))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func seedAdmin(ctx context.Context, auth ports.AuthService, admin config.AdminConfig, log zerolog.Logger) error {
	_, err := auth.Provision(ctx, ports.RegisterInput{
		Email:    admin.Email,
		Password: admin.Password,
		FullName: admin.FullName,
		Role:     string(domain.RoleAdministrator),
	})
	if errors.Is(err, domain.ErrUserExists) {
		log.Debug().Str("email", admin.Email).Msg("administrator already present")
		return nil
	}
	return err
}
