package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/gate"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/linkedin"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/relay"
	errwrap "github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/errors"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/metrics"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/server"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/server/handlers"
)

var (
	serverPort int
	serverHost string
)

// signalHealthChecker implements HealthChecker for signal system
type signalHealthChecker struct{}

func (s signalHealthChecker) CheckHealth(ctx context.Context) error {
	// Signal handlers are registered during startup; nothing to probe beyond
	// the registration having happened.
	return nil
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

// upstreamConfigHealthChecker verifies the outbound side is configured well
// enough to dispatch: a base URL and a sane pacing interval.
type upstreamConfigHealthChecker struct{}

func (upstreamConfigHealthChecker) CheckHealth(ctx context.Context) error {
	cfg := config.GetConfig()
	if cfg == nil {
		return errwrap.NewConfigInvalidError("configuration not loaded")
	}
	if cfg.Upstream.BaseURL == "" {
		return errwrap.NewConfigInvalidError("upstream base URL missing")
	}
	if cfg.Upstream.MaxAttempts < 1 {
		return errwrap.NewConfigInvalidError("upstream max attempts must be at least 1")
	}
	return nil
}

// gateHealthChecker confirms the shared outbound gate was constructed.
type gateHealthChecker struct {
	g *gate.Gate
}

func (c gateHealthChecker) CheckHealth(ctx context.Context) error {
	if c.g == nil {
		return errwrap.NewInternalError("outbound rate gate not constructed")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload (refreshes the default credential and limits)

The server will cleanly shut down the HTTP server and flush logs on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve and validate the full configuration
		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			return errwrap.WrapConfigInvalid(cmd.Context(), err, "configuration invalid")
		}

		// Initialize server logger with namespace
		observability.InitServerLogger(appName, cfg.Logging.Level, telemetryNamespace)

		metricsPort := cfg.Metrics.Port
		if metricsPort == 0 {
			metricsPort = 9090
		}

		if cfg.Metrics.Enabled {
			if err := observability.InitMetrics(appName, metricsPort, telemetryNamespace); err != nil {
				observability.ServerLogger.Error("Failed to initialize metrics",
					zap.Error(err))
				return errwrap.WrapInternal(cmd.Context(), err, "metrics initialization failed")
			}
		} else {
			observability.ServerLogger.Info("Metrics disabled by configuration")
		}

		observability.ServerLogger.Info("Initializing server",
			zap.String("service", appName),
			zap.String("namespace", telemetryNamespace),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.Int("metrics_port", metricsPort),
			zap.String("upstream", cfg.Upstream.BaseURL),
			zap.Duration("min_interval", cfg.Upstream.MinInterval),
			zap.Bool("default_credential", cfg.RapidAPI.Key != ""))

		// Construct the outbound pipeline: one gate shared by every route,
		// one dispatcher carrying the retry policy.
		outboundGate := gate.New(cfg.Upstream.MinInterval)
		dispatcher := &relay.Relay{
			Builder: &linkedin.Client{
				BaseURL: cfg.Upstream.BaseURL,
				Host:    cfg.Upstream.HostHeader,
			},
			Client:      &http.Client{Timeout: cfg.Upstream.Timeout},
			Gate:        outboundGate,
			MaxAttempts: cfg.Upstream.MaxAttempts,
			BackoffBase: cfg.Upstream.BackoffBase,
		}

		proxy := &handlers.Proxy{
			Relay: dispatcher,
			// Read through GetConfig so a SIGHUP reload picks up a rotated key.
			DefaultKey: func() string {
				if current := config.GetConfig(); current != nil {
					return current.RapidAPI.Key
				}
				return ""
			},
		}

		// Initialize health manager
		handlers.InitHealthManager(versionInfo.Version)
		hm := handlers.GetHealthManager()
		hm.RegisterChecker("signal_handlers", signalHealthChecker{})
		hm.RegisterChecker("telemetry", telemetryHealthChecker{})
		hm.RegisterChecker("upstream_config", upstreamConfigHealthChecker{})
		hm.RegisterChecker("rate_gate", gateHealthChecker{g: outboundGate})

		handlers.SetAppName(appName)

		// Create server
		srv := server.New(cfg, proxy)

		metrics.SetServerStartTime(time.Now().Unix())

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Register graceful shutdown handlers (LIFO order - last registered, first executed)
		// Handler 1: Flush logger (executed last)
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Flushing logger...")
			if err := observability.ServerLogger.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				observability.ServerLogger.Warn("Logger sync returned error (may be benign)",
					zap.Error(err))
			}
			return nil
		})

		// Handler 2: Shutdown HTTP server (executed first)
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errwrap.WrapInternal(ctx, err, "server shutdown failed")
			}

			observability.ServerLogger.Info("HTTP server stopped gracefully")
			return nil
		})

		// Register config reload handler (SIGHUP)
		signals.OnReload(func(ctx context.Context) error {
			observability.ServerLogger.Info("Received SIGHUP: attempting config reload")

			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					observability.ServerLogger.Info("No config file found - using defaults and environment variables")
				} else {
					observability.ServerLogger.Error("Failed to reload config file",
						zap.String("file", viper.ConfigFileUsed()),
						zap.Error(err))
					return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
				}
			}

			// Revalidate and swap the shared snapshot; the proxy reads the
			// default credential through it on every request.
			if _, err := config.FromViper(viper.GetViper()); err != nil {
				observability.ServerLogger.Error("Reloaded configuration is invalid, keeping previous",
					zap.Error(err))
				return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
			}

			observability.ServerLogger.Info("Configuration reloaded successfully",
				zap.String("file", viper.ConfigFileUsed()))

			return nil
		})

		// Enable double-tap force quit (Ctrl+C within 2 seconds)
		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			observability.ServerLogger.Warn("Failed to enable double-tap force quit",
				zap.Error(err))
		}

		// Start server in background goroutine
		errChan := make(chan error, 1)
		go func() {
			observability.ServerLogger.Info("Starting HTTP server...",
				zap.String("host", cfg.Server.Host),
				zap.Int("port", cfg.Server.Port))
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		// Start signal listener in background
		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				observability.ServerLogger.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		// Wait for error or shutdown completion
		if err := <-errChan; err != nil {
			return errwrap.WrapInternal(cmd.Context(), err, "server error")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
