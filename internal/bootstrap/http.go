package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prefeitura-sp/coresso-portal/config"
	httpx "github.com/prefeitura-sp/coresso-portal/internal/http"
	"github.com/prefeitura-sp/coresso-portal/internal/service"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config *config.AppConfig
	Auth   *service.AuthService
	Logger *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth:         cfg.Auth,
		Guard:        guardConfig(appCfg.Guard),
		CookieName:   appCfg.Auth.Session.CookieName,
		CookieDomain: appCfg.HTTP.CookieDomain,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	}

	// Order: Recover -> RequestID -> Logging -> Router (guard applied inside)
	var h http.Handler = httpx.NewRouter(services)
	h = httpx.Logging(logger)(h)
	h = httpx.RequestID()(h)
	h = httpx.Recover(logger)(h)

	return startServer(logger, h, appCfg.HTTP.Addr)
}

// guardConfig converts env-sourced guard settings into the router's guard
// configuration, falling back to defaults for unset values.
func guardConfig(g config.GuardConfig) httpx.GuardConfig {
	out := httpx.DefaultGuardConfig()
	if len(g.ProtectedPrefixes) > 0 {
		out.ProtectedPrefixes = g.ProtectedPrefixes
	}
	if len(g.ExcludedPrefixes) > 0 {
		out.ExcludedPrefixes = g.ExcludedPrefixes
	}
	if g.LoginPath != "" {
		out.LoginPath = g.LoginPath
		out.RootPath = g.LoginPath
	}
	if g.DashboardPath != "" {
		out.DashboardPath = g.DashboardPath
	}
	return out
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
