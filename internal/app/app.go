// Package app wires configuration, storage and controllers into the
// running estimator service.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/solarninja/solarninja/internal/controllers/restserver"
	"github.com/solarninja/solarninja/internal/database"
	"github.com/solarninja/solarninja/internal/log"
	"github.com/solarninja/solarninja/pkg/config"
	"github.com/solarninja/solarninja/pkg/estimate"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfgData, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	estimatorCfg := EstimatorConfig(&cfgData.Estimator)

	// The history store is optional; without it, report download and
	// history endpoints answer 503.
	var db *database.Client
	if cfgData.Storage.SQLite != nil && cfgData.Storage.SQLite.Path != "" {
		db = database.NewClient(a.logger)
		if err := db.Connect(cfgData.Storage.SQLite.Path); err != nil {
			return err
		}
		defer db.Close()
	} else {
		log.Info("storage.sqlite not configured; estimate history disabled")
	}

	rest, err := restserver.NewController(ctx, &wg, cfgData.Server, estimatorCfg, db, a.logger)
	if err != nil {
		return err
	}
	if err := rest.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}

// EstimatorConfig builds the kernel configuration from the estimator
// config section, filling unset fields with the kernel defaults.
func EstimatorConfig(data *config.EstimatorData) estimate.Config {
	cfg := estimate.DefaultConfig()
	if data == nil {
		return cfg
	}
	if data.ReferenceYear != 0 {
		cfg.ReferenceYear = data.ReferenceYear
	}
	if data.SystemLosses != 0 {
		cfg.SystemLosses = data.SystemLosses
	}
	if data.PanelAzimuth != 0 {
		cfg.PanelAzimuth = data.PanelAzimuth
	}
	if data.Altitude != 0 {
		cfg.Altitude = data.Altitude
	}
	if data.Turbidity != 0 {
		cfg.Turbidity = data.Turbidity
	}
	return cfg
}
