// Package app wires configuration, storage, services, and the HTTP server
// together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/aigateway"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/postgres"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/schedrow"
	"github.com/mindflowhq/mindflow-backend/internal/auth"
	"github.com/mindflowhq/mindflow-backend/internal/config"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/repository/challenge"
	"github.com/mindflowhq/mindflow-backend/internal/repository/dailylog"
	"github.com/mindflowhq/mindflow-backend/internal/repository/schedule"
	"github.com/mindflowhq/mindflow-backend/internal/repository/settings"
	"github.com/mindflowhq/mindflow-backend/internal/repository/wisdom"
	"github.com/mindflowhq/mindflow-backend/internal/service/catalog"
	"github.com/mindflowhq/mindflow-backend/internal/service/insight"
	"github.com/mindflowhq/mindflow-backend/internal/service/journal"
	"github.com/mindflowhq/mindflow-backend/internal/service/planner"
	"github.com/mindflowhq/mindflow-backend/internal/transport/middleware"
	"github.com/mindflowhq/mindflow-backend/internal/transport/rest"
	"github.com/mindflowhq/mindflow-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects the
// primary and secondary stores, applies migrations, wires the services, and
// serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	loc, err := time.LoadLocation(cfg.Phases.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	db, err := connectStores(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logRepo := dailylog.New(db)
	challengeRepo := challenge.New(db)
	wisdomRepo := wisdom.New(db)
	scheduleRepo := schedule.New(db)
	settingsRepo := settings.New(db)

	gateway := aigateway.New(aigateway.Config{
		BaseURL: cfg.Insight.BaseURL,
		APIKey:  cfg.Insight.APIKey,
		Model:   cfg.Insight.Model,
		Timeout: cfg.Insight.Timeout,
	}, logger)

	gates := domain.PhaseGates{
		MiddayUnlockHour:  cfg.Phases.MiddayUnlockHour,
		EveningUnlockHour: cfg.Phases.EveningUnlockHour,
	}

	catalogSvc := catalog.NewService(logger, challengeRepo, wisdomRepo)
	journalSvc := journal.NewService(logger, logRepo, gates, loc)
	plannerSvc := planner.NewService(logger, scheduleRepo, settingsRepo)
	insightSvc := insight.NewService(logger, gateway, logRepo, challengeRepo, wisdomRepo, scheduleRepo, loc)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(db, BuildVersion()),
		Catalog: rest.NewCatalogHandler(catalogSvc, logger),
		Journal: rest.NewJournalHandler(journalSvc, logger),
		Planner: rest.NewPlannerHandler(plannerSvc, logger),
		Insight: rest.NewInsightHandler(insightSvc, logger),
	}, middleware.Auth(verifier))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// connectStores opens both pools, applies the per-store migrations, and
// builds the replication client. The schedules secondary transform folds
// the work mode into the tags array before the column strip.
func connectStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*replica.Client, error) {
	primaryPool, err := postgres.NewPool(ctx, cfg.PrimaryDB)
	if err != nil {
		return nil, fmt.Errorf("connect primary: %w", err)
	}

	secondaryPool, err := postgres.NewPool(ctx, cfg.SecondaryDB)
	if err != nil {
		return nil, fmt.Errorf("connect secondary: %w", err)
	}

	if err := postgres.Migrate(ctx, cfg.PrimaryDB.DSN, migrations.Primary()); err != nil {
		return nil, fmt.Errorf("migrate primary: %w", err)
	}
	if err := postgres.Migrate(ctx, cfg.SecondaryDB.DSN, migrations.Secondary()); err != nil {
		return nil, fmt.Errorf("migrate secondary: %w", err)
	}

	primary := postgres.NewStore("primary", primaryPool, postgres.PrimaryTables(), logger)
	secondary := postgres.NewStore("secondary", secondaryPool, postgres.SecondaryTables(), logger)

	return replica.New(primary, secondary, logger,
		replica.WithSecondaryTransform("schedules", schedrow.SecondaryTransform),
	), nil
}
