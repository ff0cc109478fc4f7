package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	errwrap "github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/errors"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long:  "Run a self-health check to verify the application can start successfully.",
	Run: func(cmd *cobra.Command, args []string) {
		observability.CLILogger.Info("Running health check...")

		// Check 1: Version info available
		if versionInfo.Version == "" {
			observability.CLILogger.Error("❌ FAIL: Version information missing")
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Version information missing", errwrap.NewConfigInvalidError("Version information missing"))
			return
		}
		observability.CLILogger.Debug("Version check passed", zap.String("version", versionInfo.Version))
		observability.CLILogger.Info("✅ Version information available")

		// Check 2: Logger initialized
		if observability.CLILogger == nil {
			// Can't log if logger is nil, so use stderr
			ExitWithCodeStderr(foundry.ExitConfigInvalid, "Logger not initialized", errwrap.NewConfigInvalidError("Logger not initialized"))
			return
		}
		observability.CLILogger.Info("✅ Logger initialized")

		// Check 3: Configuration resolves and validates
		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			observability.CLILogger.Error("❌ FAIL: Configuration invalid", zap.Error(err))
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Configuration invalid", err)
			return
		}
		observability.CLILogger.Info("✅ Configuration system ready",
			zap.String("upstream", cfg.Upstream.BaseURL))

		// Check 4: Default credential. Its absence is not fatal - callers may
		// supply x-rapidapi-key per request - but worth surfacing.
		if cfg.RapidAPI.Key == "" {
			observability.CLILogger.Warn("⚠️  No default RapidAPI key configured; requests must carry x-rapidapi-key")
		} else {
			observability.CLILogger.Info("✅ Default RapidAPI key configured")
		}

		// Overall status
		observability.CLILogger.Info("")
		observability.CLILogger.Info("✅ All health checks passed")
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
