package cmd

import (
	"context"
	"fmt"

	"hookmap/core/config"
	"hookmap/core/logger"

	"hookmap/core/database"
	"hookmap/core/writeback"
	"hookmap/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cliEnv bundles what every CLI command needs: configuration, a logger and a
// loaded catalog store.
type cliEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *catalog.Store
	queue  *writeback.Queue
}

// newCliEnv loads configuration, connects to the database and loads the
// catalog snapshot. Call close when done so pending writes flush.
func newCliEnv(ctx context.Context) (*cliEnv, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	queue := writeback.New(cfg.Server.WriteDelay(), logg)
	store := catalog.NewStore(db, queue, logg)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	if err := store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &cliEnv{cfg: cfg, logger: logg, db: db, store: store, queue: queue}, nil
}

func (e *cliEnv) close(ctx context.Context) {
	e.store.Flush(ctx)
	e.queue.Close()
	_ = e.logger.Sync()
}
