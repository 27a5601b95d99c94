package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"itemhub/internal/auth"
	"itemhub/internal/config"
	apphttp "itemhub/internal/http"
	"itemhub/internal/repository/gormstore"
	"itemhub/internal/service"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "itemhub",
		Short:         "Multi-tenant item backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.{yaml,json,toml})")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Create the default groups and the bootstrap administrator",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return seed(cmd.Context(), configPath)
			},
		},
	)
	return rootCmd
}

type app struct {
	cfg    config.Config
	logger *logrus.Logger
	db     *gorm.DB
}

func setup(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := gormstore.Open(gormstore.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := gormstore.Migrate(db); err != nil {
		_ = gormstore.Close(db)
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

func seed(ctx context.Context, configPath string) error {
	a, err := setup(configPath)
	if err != nil {
		return err
	}
	defer gormstore.Close(a.db)

	return service.Seed(ctx,
		gormstore.NewGroupRepository(a.db),
		gormstore.NewUserRepository(a.db),
		service.AdminAccount{
			Username: a.cfg.Bootstrap.AdminUsername,
			Password: a.cfg.Bootstrap.AdminPassword,
			Email:    a.cfg.Bootstrap.AdminEmail,
		},
		a.logger,
	)
}

func serve(parent context.Context, configPath string) error {
	a, err := setup(configPath)
	if err != nil {
		return err
	}
	defer gormstore.Close(a.db)
	cfg, logger := a.cfg, a.logger

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		Algorithm:     cfg.Auth.Algorithm,
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
	})
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	userRepo := gormstore.NewUserRepository(a.db)
	groupRepo := gormstore.NewGroupRepository(a.db)
	itemRepo := gormstore.NewItemRepository(a.db)

	if err := service.Seed(ctx, groupRepo, userRepo, service.AdminAccount{
		Username: cfg.Bootstrap.AdminUsername,
		Password: cfg.Bootstrap.AdminPassword,
		Email:    cfg.Bootstrap.AdminEmail,
	}, logger); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	handler := apphttp.NewHandler(apphttp.Options{
		Auth:               service.NewAuthService(userRepo, issuer),
		Users:              service.NewUserService(userRepo, groupRepo),
		Groups:             service.NewGroupService(groupRepo),
		Items:              service.NewItemService(itemRepo),
		Logger:             logger,
		RefreshTTL:         issuer.RefreshTTL(),
		CookieSecure:       cfg.Auth.CookieSecure,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		LoginRatePerSecond: cfg.Auth.LoginRatePerSecond,
		LoginBurst:         cfg.Auth.LoginBurst,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
	return nil
}
