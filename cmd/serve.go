package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/AnthoniusHendriyanto/marketplace-api/config"
	"github.com/AnthoniusHendriyanto/marketplace-api/db"
	authhandler "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/handler"
	accountrepo "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/repository/postgres"
	authservice "github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/service"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/auth/session"
	"github.com/AnthoniusHendriyanto/marketplace-api/internal/httpx"
	markethandler "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/handler"
	marketrepo "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/repository/postgres"
	marketservice "github.com/AnthoniusHendriyanto/marketplace-api/internal/market/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(env func() (*config.Config, *slog.Logger)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := env()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tokens, err := authservice.NewTokenService(authservice.TokenConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     time.Duration(cfg.AccessExpiryMin) * time.Minute,
		RefreshTTL:    time.Duration(cfg.RefreshExpiryMin) * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	app := newApp(cfg, logger, pool, tokens)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.Env)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newApp(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, tokens *authservice.TokenService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "marketplace-api",
		ErrorHandler: httpx.ErrorHandler(logger),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
	})
	app.Use(
		recover.New(),
		requestid.New(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: cfg.CORSOrigins != "*",
		}),
		httpx.RequestLogger(logger),
	)

	sessions := session.NewManager(session.Options{
		TTL:    tokens.RefreshTTL(),
		Secure: cfg.CookieSecure,
	})

	accounts := accountrepo.NewPostgresRepository(pool)
	shops := marketrepo.NewShopRepository(pool)
	products := marketrepo.NewProductRepository(pool)
	orders := marketrepo.NewOrderRepository(pool)

	app.Get("/healthz", httpx.Health(pool))

	authhandler.RegisterRoutes(app,
		authhandler.NewAuthHandler(authservice.NewAuthService(accounts, tokens, logger), sessions),
		authhandler.NewAccountHandler(authservice.NewAccountService(accounts, shops, logger), sessions),
		tokens, accounts)

	markethandler.RegisterRoutes(app,
		markethandler.NewShopHandler(marketservice.NewShopService(shops, products, logger)),
		markethandler.NewProductHandler(marketservice.NewProductService(products, logger)),
		markethandler.NewOrderHandler(marketservice.NewOrderService(orders, products, logger)),
		markethandler.Stores{Tokens: tokens, Accounts: accounts, Shops: shops, Products: products, Orders: orders})

	return app
}
