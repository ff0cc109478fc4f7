package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/observability"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file populated with defaults",
	Long: `Write a config file populated with the built-in defaults.

The file is written to the application config directory unless --path is
given. Edit it to set the RapidAPI key and adjust server and upstream
settings; environment variables still override file values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := configInitPath
		if target == "" {
			target = filepath.Join(gfconfig.GetAppConfigDir(appConfigName), "config.yaml")
		}

		if _, err := os.Stat(target); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}

		// Marshal the same defaults the server starts from, so the generated
		// file never drifts from the in-code defaults.
		defaults := viper.New()
		config.SetDefaults(defaults)
		payload, err := yaml.Marshal(defaults.AllSettings())
		if err != nil {
			return fmt.Errorf("marshal defaults: %w", err)
		}

		header := []byte(fmt.Sprintf("# %s configuration\n# Environment variables with the %s_ prefix override these values.\n# RAPIDAPI_KEY overrides rapidapi.key.\n", appName, envPrefix))

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		if err := os.WriteFile(target, append(header, payload...), 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		observability.CLILogger.Info("Config file written", zap.String("path", target))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "Destination file (default: app config directory)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
}
