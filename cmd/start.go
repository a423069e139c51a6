package cmd

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kg-sync/core/loader"
	"kg-sync/core/logger"
	"kg-sync/core/metrics"
	"kg-sync/core/middleware/auth"
	"kg-sync/core/middleware/rayid"
	"kg-sync/core/storage"

	"kg-sync/feature/catalog"
	"kg-sync/feature/verify"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "kg-sync/docs/swagger"
)

// @title kg-sync API
// @version 1.0
// @description Product catalog sync to a schema.org knowledge graph.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the kg-sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, logg, err := loadRuntime()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Graph API client
		client, err := newGraphClient(cfg)
		if err != nil {
			logg.Fatal("Failed to create api client", zap.Error(err))
		}

		// 3. Report storage (optional)
		var reports *catalog.Reports
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Report storage unavailable", zap.Error(err))
		} else {
			reports = catalog.NewReports(store, cfg.Storage.Bucket, cfg.Storage.ReportPrefix)
		}

		baseURI, err := cfg.DatasetURI()
		if err != nil {
			logg.Warn("Catalog feature disabled", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})
		reg := metrics.NewRegistry()

		// 4. Register Features
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(catalog.NewService(client, baseURI, cfg.Sync.Options(), reports, reg, logg)))
		mgr.Register(verify.NewFeature(client, http.DefaultClient, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging
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

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
