// Package restserver implements the HTTP API for the estimator service:
// estimate submission, report download, history and status endpoints.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/solarninja/solarninja/internal/database"
	"github.com/solarninja/solarninja/internal/log"
	"github.com/solarninja/solarninja/pkg/config"
	"github.com/solarninja/solarninja/pkg/estimate"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	serverConfig config.ServerData
	estimatorCfg estimate.Config
	Server       http.Server
	DB           *database.Client
	DBEnabled    bool
	logger       *zap.SugaredLogger
	handlers     *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, sc config.ServerData, estimatorCfg estimate.Config, db *database.Client, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		serverConfig: sc,
		estimatorCfg: estimatorCfg,
		DB:           db,
		DBEnabled:    db != nil,
		logger:       logger,
	}

	// If a listen address was not provided, listen on all interfaces
	if ctrl.serverConfig.ListenAddr == "" {
		logger.Info("server.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.serverConfig.ListenAddr = "0.0.0.0"
	}

	if ctrl.serverConfig.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		ctrl.serverConfig.Port = 8080
	}

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.serverConfig.ListenAddr, ctrl.serverConfig.Port)
	ctrl.Server.Handler = handlers.CompressHandler(handlers.CombinedLoggingHandler(zapLogWriter{logger}, router))

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.TLSCertPath != "" && c.serverConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.TLSCertPath, c.serverConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/estimate", c.handlers.PostEstimate).Methods(http.MethodPost)
	router.HandleFunc("/api/estimates", c.handlers.GetEstimates).Methods(http.MethodGet)
	router.HandleFunc("/api/estimate/{id}/report", c.handlers.GetReport).Methods(http.MethodGet)
	router.HandleFunc("/api/status", c.handlers.GetStatus).Methods(http.MethodGet)

	return router
}

// zapLogWriter adapts the sugared logger to the io.Writer the gorilla
// access-log middleware expects.
type zapLogWriter struct {
	logger *zap.SugaredLogger
}

func (w zapLogWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}
