package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rinksync/core/archive"
	"rinksync/core/calendar"
	"rinksync/core/config"
	"rinksync/core/database"
	"rinksync/core/feed"
	"rinksync/core/loader"
	"rinksync/core/logger"
	"rinksync/core/metrics"
	"rinksync/core/middleware/auth"
	"rinksync/core/middleware/rayid"
	"rinksync/core/storage"
	"rinksync/feature/schedule"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync daemon",
	Long: `Starts the HTTP server and the cron schedule. Every tick runs one
reconciliation pass against the configured feed and calendar.`,
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

		ctx := context.Background()

		// 3. Connect to Database (optional; daemon runs without history)
		var store *schedule.Store
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, run history disabled", zap.Error(err))
		} else if s, err := schedule.NewStore(conn); err != nil {
			logg.Warn("Run history schema migration failed, history disabled", zap.Error(err))
		} else {
			store = s
			logg.Info("Connected to run history database")
		}

		// 4. Snapshot archive (optional)
		var archiver *archive.Archiver
		if cfg.Archive.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Snapshot storage unavailable, archiving disabled", zap.Error(err))
			} else {
				archiver = archive.New(client, cfg.Storage.Bucket, cfg.Archive, logg)
				if err := archiver.EnsureBucket(ctx); err != nil {
					logg.Warn("Snapshot bucket check failed, archiving disabled", zap.Error(err))
					archiver = nil
				}
			}
		}

		// 5. Calendar and feed clients
		cal, err := calendar.NewClient(ctx, cfg.Calendar, cfg.Sync.TitlePrefix)
		if err != nil {
			logg.Fatal("Failed to create calendar client", zap.Error(err))
		}
		feedClient := feed.NewClient(cfg.Feed, logg)

		// 6. Metrics and the schedule feature
		m := metrics.New()
		svc := schedule.NewService(cfg.Sync, feedClient, cal, store, archiver, m, logg)
		feature := schedule.NewFeature(cfg.Sync, svc, logg)

		mgr := loader.NewManager()
		mgr.Register(feature)

		// 7. Fiber app with middleware
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// RayID first so every later log line can be traced.
		app.Use(rayid.New())
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

		// Metrics scrape endpoint stays outside the API key gate.
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Cron schedule
		scheduler := cron.New()
		if cfg.Sync.Enabled {
			if _, err := scheduler.AddFunc(cfg.Sync.Cron, func() {
				if _, err := svc.Run(ctx, "cron"); err != nil {
					logg.Error("Scheduled run failed", zap.Error(err))
				}
				if archiver != nil {
					if _, err := archiver.Prune(ctx, time.Now()); err != nil {
						logg.Warn("Snapshot pruning failed", zap.Error(err))
					}
				}
			}); err != nil {
				logg.Fatal("Invalid cron expression", zap.String("cron", cfg.Sync.Cron), zap.Error(err))
			}
			scheduler.Start()
			logg.Info("Schedule armed", zap.String("cron", cfg.Sync.Cron))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")
		scheduler.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
