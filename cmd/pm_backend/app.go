package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/ports/services"
	coreservices "github.com/SscSPs/property_management_app/internal/core/services"
	"github.com/SscSPs/property_management_app/internal/gateway"
	"github.com/SscSPs/property_management_app/internal/idempotency"
	"github.com/SscSPs/property_management_app/internal/notify"
	"github.com/SscSPs/property_management_app/internal/platform/config"
	"github.com/SscSPs/property_management_app/internal/platform/metrics"
	"github.com/SscSPs/property_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/property_management_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// application holds the long-lived collaborators shared by the commands.
type application struct {
	pool       *pgxpool.Pool
	services   *services.ServiceContainer
	dispatcher *notify.Dispatcher
	cache      *idempotency.RedisCache
}

// newApplication connects to the store and wires the services. Integrations
// that are not configured stay disabled.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, business *metrics.Business) (*application, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	app := &application{pool: pool}
	integrations := coreservices.PaymentIntegrations{}

	var notifier services.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
		logger.Info("E-mail notifications enabled", slog.String("smtp_host", cfg.SMTPHost))
	} else {
		notifier = notify.NewLogNotifier(logger)
	}
	app.dispatcher = notify.NewDispatcher(notifier, logger, 0)
	integrations.Notifier = app.dispatcher

	if cfg.PaymentGatewayURL != "" {
		integrations.Gateway = gateway.NewClient(cfg.PaymentGatewayURL, cfg.PaymentGatewayAPIKey, logger)
	} else {
		logger.Warn("PAYMENT_GATEWAY_URL not set, payment initiation disabled")
	}

	if cfg.RedisAddr != "" {
		app.cache = idempotency.NewRedisCache(idempotency.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), 0)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := app.cache.Ping(pingCtx); err != nil {
			// Postgres still deduplicates; the cache only saves a round trip.
			logger.Warn("Redis not reachable, confirmations will hit the database", slog.String("error", err.Error()))
		}
		cancel()
		integrations.Cache = app.cache
	}

	options := []coreservices.Option{coreservices.WithMetrics(business)}
	app.services = coreservices.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), integrations, options...)
	return app, nil
}

// Close waits for pending notifications and releases connections.
func (a *application) Close(logger *slog.Logger) {
	a.dispatcher.Wait()
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.pool)
}
