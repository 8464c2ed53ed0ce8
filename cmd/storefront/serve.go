package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ModaVista/internal/auth"
	"ModaVista/internal/cart"
	"ModaVista/internal/catalog"
	"ModaVista/internal/config"
	"ModaVista/internal/events"
	"ModaVista/internal/store"
	"ModaVista/internal/storefront"
	"ModaVista/pkg/kit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg config.App) error {
	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tracing := false
	if cfg.OTELEndpoint != "" {
		shutdown, err := kit.InitTracer(ctx, service, cfg.Env, cfg.OTELEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
		tracing = true
	}

	st := store.New()
	demoHash, err := auth.HashPassword(store.DemoPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	store.Seed(st, demoHash)

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	pub, err := openPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = pub.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cartSvc := cart.NewService(st, pub, log)
	cartSvc.Metrics = cart.NewMetrics(reg)

	h := storefront.NewHandler(
		storefront.Deps{
			Store:        st,
			Catalog:      catalog.NewService(st),
			Auth:         auth.NewService(st, pub, log, cfg.BcryptCost),
			Sessions:     auth.NewSessions(sessionStore, auth.NewTokenMaker(cfg.SessionSecret), cfg.SessionTTL),
			Cart:         cartSvc,
			CookieSecure: cfg.CookieSecure,
		},
		storefront.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
			Tracing:        tracing,
		},
	)

	log.Info("storefront ready",
		zap.String("env", cfg.Env),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Bool("events", cfg.RabbitMQURL != ""),
		zap.Bool("tracing", tracing),
	)
	return kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log)
}

func openSessionStore(ctx context.Context, cfg config.App) (auth.SessionStore, func(), error) {
	if cfg.SessionBackend != "redis" {
		return auth.NewMemSessionStore(), func() {}, nil
	}

	rdb := auth.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return auth.NewRedisSessionStore(rdb), func() { _ = rdb.Close() }, nil
}

func openPublisher(cfg config.App, log *zap.Logger) (events.Publisher, error) {
	if cfg.RabbitMQURL == "" {
		return events.Nop{}, nil
	}
	pub, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, service)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: %w", err)
	}
	log.Info("publishing domain events", zap.String("exchange", cfg.RabbitMQExchange))
	return pub, nil
}
