package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	errwrap "github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/errors"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long:  "Run diagnostic checks on the system and suggest fixes for common issues.",
	Run: func(cmd *cobra.Command, args []string) {
		observability.CLILogger.Info("=== " + appName + " doctor ===")
		observability.CLILogger.Info("")
		observability.CLILogger.Info("Running diagnostic checks...")
		observability.CLILogger.Info("")

		allChecks := true
		totalChecks := 8

		// Check 1: Go version
		goVersion := runtime.Version()
		if goVersion >= "go1.23" {
			observability.CLILogger.Info(fmt.Sprintf("[1/%d] Checking Go version... ✅ %s", totalChecks, goVersion), zap.String("go_version", goVersion))
		} else {
			observability.CLILogger.Warn(fmt.Sprintf("[1/%d] Checking Go version... ⚠️  %s (recommended: go1.23+)", totalChecks, goVersion), zap.String("go_version", goVersion))
			allChecks = false
		}

		// Check 2: Crucible access
		version := crucible.GetVersion()
		if version.Crucible != "" {
			observability.CLILogger.Info(fmt.Sprintf("[2/%d] Checking Crucible access... ✅ v%s", totalChecks, version.Crucible), zap.String("crucible_version", version.Crucible))
		} else {
			observability.CLILogger.Error(fmt.Sprintf("[2/%d] Checking Crucible access... ❌ Cannot access Crucible", totalChecks))
			ExitWithCode(observability.CLILogger, foundry.ExitExternalServiceUnavailable, "Cannot access Crucible", errwrap.NewExternalServiceError("Crucible service unavailable"))
			allChecks = false
		}

		// Check 3: Gofulmen access
		if version.Gofulmen != "" {
			observability.CLILogger.Info(fmt.Sprintf("[3/%d] Checking Gofulmen access... ✅ v%s", totalChecks, version.Gofulmen), zap.String("gofulmen_version", version.Gofulmen))
		} else {
			observability.CLILogger.Error(fmt.Sprintf("[3/%d] Checking Gofulmen access... ❌ Cannot access Gofulmen", totalChecks))
			allChecks = false
		}

		// Check 4: Config directory
		configDir := gfconfig.GetAppConfigDir(appConfigName)
		if configDir == "" {
			observability.CLILogger.Error(fmt.Sprintf("[4/%d] Checking config directory... ❌ Cannot resolve config directory", totalChecks))
			ExitWithCode(observability.CLILogger, foundry.ExitFileNotFound, "Cannot resolve config directory", errwrap.NewInternalError("config directory not resolved"))
			allChecks = false
		} else {
			observability.CLILogger.Info(fmt.Sprintf("[4/%d] Checking config directory... ✅ %s", totalChecks, configDir), zap.String("config_dir", configDir))
		}

		// Check 5: Environment
		observability.CLILogger.Info(fmt.Sprintf("[5/%d] Checking environment... ✅ %s/%s", totalChecks, runtime.GOOS, runtime.GOARCH),
			zap.String("os", runtime.GOOS),
			zap.String("arch", runtime.GOARCH))

		// Check 6: Configuration and upstream target
		cfg, cfgErr := config.FromViper(viper.GetViper())
		if cfgErr != nil {
			observability.CLILogger.Warn(fmt.Sprintf("[6/%d] Checking configuration... ⚠️  invalid", totalChecks), zap.Error(cfgErr))
			allChecks = false
		} else if parsed, parseErr := url.Parse(cfg.Upstream.BaseURL); parseErr != nil || parsed.Scheme == "" || parsed.Host == "" {
			observability.CLILogger.Warn(fmt.Sprintf("[6/%d] Checking configuration... ⚠️  upstream base URL malformed: %s", totalChecks, cfg.Upstream.BaseURL),
				zap.String("upstream_base_url", cfg.Upstream.BaseURL))
			allChecks = false
		} else {
			observability.CLILogger.Info(fmt.Sprintf("[6/%d] Checking configuration... ✅ upstream %s", totalChecks, parsed.Host),
				zap.String("upstream_base_url", cfg.Upstream.BaseURL))
		}

		// Check 7: .env file (optional; the key can come from anywhere)
		if fileExists(".env") {
			observability.CLILogger.Info(fmt.Sprintf("[7/%d] Checking .env file... ✅ present", totalChecks))
		} else {
			observability.CLILogger.Info(fmt.Sprintf("[7/%d] Checking .env file... ✅ absent (environment and config still apply)", totalChecks))
		}

		// Check 8: RapidAPI credential
		if cfgErr == nil && cfg.RapidAPI.Key != "" {
			observability.CLILogger.Info(fmt.Sprintf("[8/%d] Checking RapidAPI credential... ✅ configured", totalChecks))
		} else {
			observability.CLILogger.Warn(fmt.Sprintf("[8/%d] Checking RapidAPI credential... ⚠️  not configured", totalChecks))
			observability.CLILogger.Info("       " + rapidAPIKeyEnv + ": " + envStatus(rapidAPIKeyEnv))
			observability.CLILogger.Info("       Requests must send x-rapidapi-key, or set " + rapidAPIKeyEnv + " / rapidapi.key.")
		}

		observability.CLILogger.Info("")
		if allChecks {
			observability.CLILogger.Info(fmt.Sprintf("✅ All checks passed! Your %s installation is healthy.", appName))
		} else {
			observability.CLILogger.Warn("⚠️  Some checks failed. Review the output above for details.")
		}
		observability.CLILogger.Info("")
		observability.CLILogger.Info("=== End Diagnostics ===")
	},
}

var (
	doctorResetConfig bool
)

var doctorResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset user configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !doctorResetConfig {
			return fmt.Errorf("specify --config")
		}

		configPath := filepath.Join(gfconfig.GetAppConfigDir(appConfigName), "config.yaml")
		if err := os.Remove(configPath); err == nil {
			observability.CLILogger.Info("Config removed", zap.String("path", configPath))
		} else if os.IsNotExist(err) {
			observability.CLILogger.Info("Config already removed", zap.String("path", configPath))
		} else {
			return fmt.Errorf("remove config file: %w", err)
		}

		return nil
	},
}

var doctorValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.FromViper(viper.GetViper()); err != nil {
			return err
		}

		if used := viper.ConfigFileUsed(); used != "" {
			observability.CLILogger.Info("Config is valid", zap.String("path", used))
		} else {
			observability.CLILogger.Info("Config is valid (defaults and environment only)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.AddCommand(doctorResetCmd)
	doctorCmd.AddCommand(doctorValidateCmd)

	doctorResetCmd.Flags().BoolVar(&doctorResetConfig, "config", false, "remove user config file")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envStatus(name string) string {
	if strings.TrimSpace(os.Getenv(name)) != "" {
		return "(set)"
	}
	return "(not set)"
}
