// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, storage, cache,
// events, auth, metrics) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/bizz/internal/config"
	"github.com/JaimeStill/bizz/pkg/auth"
	"github.com/JaimeStill/bizz/pkg/cache"
	"github.com/JaimeStill/bizz/pkg/database"
	"github.com/JaimeStill/bizz/pkg/events"
	"github.com/JaimeStill/bizz/pkg/lifecycle"
	"github.com/JaimeStill/bizz/pkg/metrics"
	"github.com/JaimeStill/bizz/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     cache.System
	Events    events.Publisher
	Auth      auth.System
	Metrics   *metrics.Metrics
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	c, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Cache:     c,
		Events:    events.New(&cfg.Events, logger),
		Auth:      auth.New(&cfg.Auth, logger),
		Metrics:   metrics.New(),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cache start failed: %w", err)
	}
	if err := i.Events.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("events start failed: %w", err)
	}
	if err := i.Auth.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("auth start failed: %w", err)
	}
	return nil
}
