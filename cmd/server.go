package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/api"
	"github.com/Alkhemd/SistemaH2-sub000/internal/config"
	"github.com/Alkhemd/SistemaH2-sub000/internal/database"
	"github.com/Alkhemd/SistemaH2-sub000/internal/metrics"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the SistemaH2 API server. The server listens on the
configured host and port and exposes the work-order lifecycle endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Local overrides from .env, when present.
		_ = godotenv.Load()

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		api.SetLogger(logger)

		db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		orderRepo := repository.NewWorkOrderRepository(db)
		activitySvc := service.NewActivityLogService(repository.NewActivityLogRepository(db))
		statsSvc := service.NewStatisticsService(orderRepo,
			time.Duration(cfg.Statistics.CacheTTLSeconds)*time.Second)
		workOrderSvc := service.NewWorkOrderService(db, activitySvc, logger,
			service.WithMutationHook(statsSvc.Invalidate))
		querySvc := service.NewOrderQueryService(orderRepo)

		controllers := &api.Controllers{
			WorkOrders: api.NewWorkOrderController(workOrderSvc, querySvc),
			Catalog: api.NewCatalogController(
				repository.NewEquipmentRepository(db),
				repository.NewClientRepository(db),
			),
			Statistics:  api.NewStatisticsController(statsSvc),
			ActivityLog: api.NewActivityLogController(activitySvc),
		}

		router := api.SetupRoutes(cfg, db, controllers)

		stopCollector := make(chan struct{})
		metrics.StartPoolCollector(db, 15*time.Second, stopCollector)
		defer close(stopCollector)

		// Reload-sensitive settings follow the config file while running.
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(newCfg *config.Config) {
				logger.Info("configuration reloaded")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watcher not started")
			}
			defer watcher.Stop()
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
