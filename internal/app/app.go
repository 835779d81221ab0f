// Package app manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wallet-settings/internal/config"
	"wallet-settings/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// App orchestrates server startup and graceful shutdown.
type App struct {
	engine     *gin.Engine
	config     *config.Manager
	store      store.Store
	httpServer *http.Server
}

// NewAppParams defines the dependencies for the NewApp constructor.
type NewAppParams struct {
	dig.In
	Engine *gin.Engine
	Config *config.Manager
	Store  store.Store
}

// NewApp creates a new application instance.
func NewApp(params NewAppParams) *App {
	return &App{
		engine: params.Engine,
		config: params.Config,
		store:  params.Store,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (a *App) Start() error {
	a.config.SetupLogger()
	a.config.DisplayServerConfig()

	serverConfig := a.config.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:      a.engine,
		ReadTimeout:  time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(serverConfig.IdleTimeout) * time.Second,
	}

	logrus.Infof("settings service listening on %s", a.httpServer.Addr)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully and closes the settings store.
func (a *App) Stop() {
	timeout := time.Duration(a.config.GetEffectiveServerConfig().GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("server shutdown failed")
		}
	}
	if err := a.store.Close(); err != nil {
		logrus.WithError(err).Warn("store close failed")
	}
	logrus.Info("settings service stopped")
}
