package server

import (
	"os"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/server/handlers"
)

// adminTokenEnv guards the admin signal endpoint; unset means disabled.
const adminTokenEnv = "LINKEDIN_BACKEND_ADMIN_TOKEN"

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(cfg *config.Config, proxy *handlers.Proxy) {
	// Root liveness status, kept compatible with the dashboard frontend
	s.router.Get("/", handlers.Status)

	// Proxy routes
	if proxy != nil {
		s.router.Route("/api", func(r chi.Router) {
			r.Get("/profile", proxy.Profile)
			r.Get("/posts", proxy.Posts)
			r.Get("/comments", proxy.Comments)
			r.Get("/company", proxy.Company)
			r.Get("/analytics/comments", proxy.CommentAnalytics)
			r.Post("/post/reactions", proxy.Reactions)
		})
	}

	// Standard health endpoints
	if cfg == nil || cfg.Health.Enabled {
		s.router.Get("/health", handlers.HealthHandler)
		s.router.Get("/health/live", handlers.LivenessHandler)
		s.router.Get("/health/ready", handlers.ReadinessHandler)
		s.router.Get("/health/startup", handlers.StartupHandler)
	}

	// Version endpoint
	s.router.Get("/version", handlers.VersionHandler)

	// Metrics endpoint (in server package to access HandleError)
	if cfg == nil || cfg.Metrics.Enabled {
		s.router.Get("/metrics", MetricsHandler)
	}

	// Admin signal endpoint (optional, requires LINKEDIN_BACKEND_ADMIN_TOKEN)
	s.registerAdminEndpoint()
}

// registerAdminEndpoint optionally registers the admin signal endpoint
func (s *Server) registerAdminEndpoint() {
	adminToken := os.Getenv(adminTokenEnv)
	logger := observability.ServerLogger

	if adminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no " + adminTokenEnv + " set)")
		}
		return
	}

	// Create HTTP signal handler with bearer token auth and rate limiting
	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: adminToken,
		RateLimit: 10,  // 10 requests per minute
		RateBurst: 5,   // burst size
		Manager:   nil, // use default global manager
	})

	// Register admin endpoint
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("auth", "bearer token"),
			zap.String("rate_limit", "10/min, burst 5"))
		logger.Warn("Admin endpoint enabled - ensure this server is not exposed to public internet")
	}
}
