package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display comprehensive environment, configuration, and version information.",
	Run: func(cmd *cobra.Command, args []string) {
		version := crucible.GetVersion()

		observability.CLILogger.Info("=== LinkedIn Backend Environment Information ===")
		observability.CLILogger.Info("")

		// Application Info
		observability.CLILogger.Info("Application:")
		observability.CLILogger.Info("  Name:       " + appName)
		observability.CLILogger.Info("  Version:    " + versionInfo.Version)
		observability.CLILogger.Info("  Commit:     " + versionInfo.Commit)
		observability.CLILogger.Info("  Built:      " + versionInfo.BuildDate)
		observability.CLILogger.Info("")

		// SSOT Info
		observability.CLILogger.Info("SSOT:")
		observability.CLILogger.Info("  Gofulmen:   "+version.Gofulmen, zap.String("gofulmen_version", version.Gofulmen))
		observability.CLILogger.Info("  Crucible:   "+version.Crucible, zap.String("crucible_version", version.Crucible))
		observability.CLILogger.Info("")

		// Runtime Info
		observability.CLILogger.Info("Runtime:")
		observability.CLILogger.Info("  Go Version: "+runtime.Version(), zap.String("go_version", runtime.Version()))
		observability.CLILogger.Info("  GOOS:       "+runtime.GOOS, zap.String("goos", runtime.GOOS))
		observability.CLILogger.Info("  GOARCH:     "+runtime.GOARCH, zap.String("goarch", runtime.GOARCH))
		observability.CLILogger.Info(fmt.Sprintf("  NumCPU:     %d", runtime.NumCPU()), zap.Int("num_cpu", runtime.NumCPU()))
		observability.CLILogger.Info("")

		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			observability.CLILogger.Warn("Config load failed", zap.Error(err))
			return
		}

		// Configuration
		observability.CLILogger.Info("Configuration:")
		observability.CLILogger.Info("  Server Host:    "+cfg.Server.Host, zap.String("host", cfg.Server.Host))
		observability.CLILogger.Info(fmt.Sprintf("  Server Port:    %d", cfg.Server.Port), zap.Int("port", cfg.Server.Port))
		observability.CLILogger.Info("  Log Level:      "+cfg.Logging.Level, zap.String("log_level", cfg.Logging.Level))
		observability.CLILogger.Info(fmt.Sprintf("  Metrics:        %t", cfg.Metrics.Enabled), zap.Bool("metrics_enabled", cfg.Metrics.Enabled))
		observability.CLILogger.Info(fmt.Sprintf("  Metrics Port:   %d", cfg.Metrics.Port), zap.Int("metrics_port", cfg.Metrics.Port))
		if viper.ConfigFileUsed() != "" {
			observability.CLILogger.Info("  Config File:    "+viper.ConfigFileUsed(), zap.String("config_file", viper.ConfigFileUsed()))
		} else {
			observability.CLILogger.Info("  Config File:    (defaults and environment only)")
		}
		observability.CLILogger.Info("")

		// Upstream Gateway Configuration
		observability.CLILogger.Info("Upstream:")
		observability.CLILogger.Info("  Base URL:       "+cfg.Upstream.BaseURL, zap.String("upstream_base_url", cfg.Upstream.BaseURL))
		observability.CLILogger.Info("  Host Header:    "+cfg.Upstream.HostHeader, zap.String("upstream_host", cfg.Upstream.HostHeader))
		observability.CLILogger.Info("  Timeout:        " + cfg.Upstream.Timeout.String())
		observability.CLILogger.Info("  Min Interval:   " + cfg.Upstream.MinInterval.String())
		observability.CLILogger.Info(fmt.Sprintf("  Max Attempts:   %d", cfg.Upstream.MaxAttempts))
		observability.CLILogger.Info("  Backoff Base:   " + cfg.Upstream.BackoffBase.String())
		// Never print the credential itself.
		if cfg.RapidAPI.Key != "" {
			observability.CLILogger.Info("  RapidAPI Key:   (set)")
		} else {
			observability.CLILogger.Info("  RapidAPI Key:   (not set)")
		}
		observability.CLILogger.Info("")

		// Inbound Protection Configuration
		observability.CLILogger.Info("Protection:")
		observability.CLILogger.Info(fmt.Sprintf("  Rate Limit:     %t", cfg.RateLimit.Enabled), zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled))
		if cfg.RateLimit.Enabled {
			observability.CLILogger.Info(fmt.Sprintf("  RPS:            %g", cfg.RateLimit.RPS))
			observability.CLILogger.Info(fmt.Sprintf("  Burst:          %d", cfg.RateLimit.Burst))
		}
		observability.CLILogger.Info(fmt.Sprintf("  Max Inflight:   %d", cfg.Concurrency.MaxInflight), zap.Int64("max_inflight", cfg.Concurrency.MaxInflight))
		observability.CLILogger.Info("")

		observability.CLILogger.Info("=== End Environment Information ===")
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}
