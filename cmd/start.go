package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"inventory-sync/core/loader"
	"inventory-sync/core/logger"
	"inventory-sync/core/middleware/auth"
	"inventory-sync/core/middleware/rayid"
	"inventory-sync/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Inventory Sync API
// @version 1.0
// @description Read API over the synchronized inventory projection.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync loop and the HTTP server",
	Long: `Migrates the database, publishes the first projection, then runs the
sync loop and serves the inventory API until SIGINT or SIGTERM.

When the database is unreachable the archived projection is served and the
migration is retried before the sync loop begins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.log

		migrated := true
		if err := a.store.Migrate(ctx); err != nil {
			migrated = false
			logg.Warn("Migration deferred until the database is reachable", zap.Error(err))
		}
		a.warmUp(ctx)

		orch, err := a.orchestrator()
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		if a.cfg.Sync.Enabled {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !migrated && !a.migrateWhenReachable(ctx) {
					return
				}
				_ = orch.Run(ctx)
			}()
		} else {
			logg.Info("Sync loop disabled")
		}

		srv := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it.
		srv.Use(rayid.New())
		srv.Use(recover.New())
		srv.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		srv.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		srv.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		mgr := loader.NewManager()
		mgr.Register(inventory.NewFeature(inventory.NewService(a.cache, a.refresher, a.store, orch, logg)))
		loaded, err := mgr.LoadAll(srv)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			if err := srv.Listen(a.cfg.Server.Address()); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down...")
		if err := srv.ShutdownWithTimeout(a.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		wg.Wait()
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
