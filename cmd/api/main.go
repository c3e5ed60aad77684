package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/ovisslabs/oviss-backend/api/routes"
	"github.com/ovisslabs/oviss-backend/internal/appointments"
	"github.com/ovisslabs/oviss-backend/internal/catalog"
	"github.com/ovisslabs/oviss-backend/internal/notifications"
	"github.com/ovisslabs/oviss-backend/internal/session"
	"github.com/ovisslabs/oviss-backend/pkg/clock"
	"github.com/ovisslabs/oviss-backend/pkg/config"
	"github.com/ovisslabs/oviss-backend/pkg/db"
	"github.com/ovisslabs/oviss-backend/pkg/ident"
	"github.com/ovisslabs/oviss-backend/pkg/kv"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
	"github.com/ovisslabs/oviss-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to open database", err)
		os.Exit(1)
	}

	store := kv.New(dbClient.DB())
	if cfg.DB.AutoMigrate {
		if err := store.Migrate(); err != nil {
			logg.Error(ctx, "failed to migrate storage", err)
			os.Exit(1)
		}
	}

	startingCredit, err := decimal.NewFromString(cfg.Booking.StartingCredit)
	if err != nil {
		logg.Error(ctx, "invalid starting credit", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	systemClock := clock.System()
	ids := ident.NewUUIDGenerator()
	cat := catalog.Default()

	notificationsService, err := notifications.NewService(ctx, notifications.ServiceParams{
		Store:   store,
		Clock:   systemClock,
		IDs:     ids,
		Logger:  logg,
		Metrics: bookingMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create notifications service", err)
		os.Exit(1)
	}

	appointmentsService, err := appointments.NewService(ctx, appointments.ServiceParams{
		Store:   store,
		Catalog: cat,
		Emitter: notificationsService,
		Clock:   systemClock,
		IDs:     ids,
		Logger:  logg,
		Metrics: bookingMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create appointments service", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(ctx, session.ManagerParams{
		Store:          store,
		IDs:            ids,
		Logger:         logg,
		Auth:           cfg.Auth,
		StartingCredit: startingCredit,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, registry,
			sessionManager, cat, appointmentsService, notificationsService,
		),
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(startCtx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		closeErr := multierr.Append(server.Shutdown(shutdownCtx), dbClient.Close())
		if closeErr != nil {
			logg.Error(startCtx, "shutdown incomplete", closeErr)
			os.Exit(1)
		}
	}
}
