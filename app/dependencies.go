package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dstl-lab/dsc10-tutor-logger/config"
	"github.com/dstl-lab/dsc10-tutor-logger/handlers"
	"github.com/dstl-lab/dsc10-tutor-logger/repositories"
	"github.com/dstl-lab/dsc10-tutor-logger/repositories/postgres"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection: the database pool is owned here and
// passed to handlers explicitly, never reached through package-level state.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Events repositories.EventRepository

	// Handlers
	EventHandler     *handlers.EventHandler
	HealthHandler    *handlers.HealthHandler
	DashboardHandler *handlers.DashboardHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	db, err := postgres.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.DB = db

	// Confirm the pool hands out usable connections before serving traffic
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	deps.Events = postgres.NewEventRepository(db, logger)

	deps.EventHandler = handlers.NewEventHandler(deps.Events, logger)
	deps.HealthHandler = handlers.NewHealthHandler(db, logger)
	deps.DashboardHandler = handlers.NewDashboardHandler(deps.Events, cfg.Dashboard, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Close tears down the connection pool. Acquiring a connection after Close
// fails rather than blocking.
func (d *Dependencies) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
