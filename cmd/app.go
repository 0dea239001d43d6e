package cmd

import (
	"context"
	"fmt"
	"time"

	"inventory-sync/core/config"
	"inventory-sync/core/database"
	"inventory-sync/core/logger"
	"inventory-sync/core/moysklad"
	"inventory-sync/core/storage"
	"inventory-sync/feature/inventory/projection"
	"inventory-sync/feature/inventory/store"
	"inventory-sync/feature/inventory/syncer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the components shared by every command.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *gorm.DB
	store     *store.Store
	cache     *projection.Cache
	refresher *projection.Refresher
}

// bootstrap wires the shared components. With tolerateOutage an unreachable
// database is logged instead of failing, and connections are retried on use.
func bootstrap(tolerateOutage bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Ping(db, cfg.Database); err != nil {
		if !tolerateOutage {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logg.Warn("Database unreachable, continuing", zap.Error(err))
	} else {
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	st := store.New(db)

	var archive projection.Snapshotter
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		archive = projection.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.SnapshotKey)
	}

	var builder projection.TreeBuilder = projection.NewBuilder(st, cfg.Sync.ExcludedGroups)
	if cfg.Sync.Preload {
		builder = projection.NewPreloadBuilder(st, cfg.Sync.ExcludedGroups)
	}

	cache := projection.NewCache()
	return &app{
		cfg:       cfg,
		log:       logg,
		db:        db,
		store:     st,
		cache:     cache,
		refresher: projection.NewRefresher(cache, builder, archive, logg),
	}, nil
}

func (a *app) orchestrator() (*syncer.Orchestrator, error) {
	client, err := moysklad.NewClient(a.cfg.MoySklad)
	if err != nil {
		return nil, err
	}
	return syncer.New(client, a.store, a.refresher, a.cfg.Sync, a.cfg.MoySklad.CounterpartyTag, a.log), nil
}

// warmUp publishes the first projection, falling back to the archived one.
func (a *app) warmUp(ctx context.Context) {
	if _, err := a.refresher.WarmUp(ctx); err != nil {
		a.log.Warn("No projection available yet", zap.Error(err))
	}
}

// migrateWhenReachable retries the migration every idle interval until it
// succeeds or ctx is done.
func (a *app) migrateWhenReachable(ctx context.Context) bool {
	interval := a.cfg.Sync.Idle()
	for {
		t := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return false
		case <-t.C:
		}
		if err := a.store.Migrate(ctx); err != nil {
			a.log.Warn("Migration failed, retrying", zap.Error(err), zap.Duration("retry_in", interval))
			continue
		}
		a.log.Info("Database reachable, migration applied")
		return true
	}
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
