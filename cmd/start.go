package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hookmap/core/config"
	"hookmap/core/database"
	"hookmap/core/loader"
	"hookmap/core/logger"
	"hookmap/core/middleware/auth"
	"hookmap/core/middleware/rayid"
	"hookmap/core/storage"
	"hookmap/core/writeback"

	"hookmap/feature/catalog"
	"hookmap/feature/codebank"
	"hookmap/feature/export"
	"hookmap/feature/offers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "hookmap/docs/swagger"
)

// @title Hookmap API
// @version 1.0
// @description API for the towing hook catalog, code bank and marketplace listings.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Catalog Store (snapshot + engine lifecycle)
		queue := writeback.New(cfg.Server.WriteDelay(), logg)
		store := catalog.NewStore(db, queue, logg)
		if err := store.Migrate(); err != nil {
			logg.Fatal("Failed to migrate catalog tables", zap.Error(err))
		}
		if err := store.Reload(context.Background()); err != nil {
			logg.Fatal("Failed to load catalog", zap.Error(err))
		}

		// 5. Initialize Storage
		backupStore, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		offersFeature := offers.NewFeature(db, store, logg)
		if err := offersFeature.Service().Migrate(); err != nil {
			logg.Fatal("Failed to migrate listings table", zap.Error(err))
		}

		mgr.Register(catalog.NewFeature(store, logg))
		mgr.Register(codebank.NewFeature(store, logg))
		mgr.Register(offersFeature)
		mgr.Register(export.NewFeature(store, backupStore, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// RayID must come first so everything downstream is traceable.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		// Push pending debounced edits before the process exits.
		store.Flush(context.Background())
		queue.Close()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
