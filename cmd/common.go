package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"formset/internal/capability"
	"formset/internal/config"
	"formset/internal/report"
	"formset/pkg/logging"

	"github.com/spf13/cobra"
)

// connectionFlags holds the per-command credential overrides. Values set on
// the command line win over the configuration file and environment defaults.
type connectionFlags struct {
	endpoint   string
	viewServer string
	user       string
	secret     string
}

func (f *connectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "Catalog service endpoint URL")
	cmd.Flags().StringVar(&f.viewServer, "view-server", "", "View server name on the catalog endpoint")
	cmd.Flags().StringVar(&f.user, "user", "", "User name for catalog sessions")
	cmd.Flags().StringVar(&f.secret, "secret", "", "Secret for catalog sessions")
}

func (f *connectionFlags) apply(cfg *config.Config) {
	if f.endpoint != "" {
		cfg.Connection.Endpoint = f.endpoint
	}
	if f.viewServer != "" {
		cfg.Connection.ViewServer = f.viewServer
	}
	if f.user != "" {
		cfg.Connection.User = f.user
	}
	if f.secret != "" {
		cfg.Connection.Secret = f.secret
	}
}

// loadConfig loads the configuration, applies command line overrides, and
// initializes logging. configPath may be empty to use the default location.
func loadConfig(configPath, logLevel string, conn *connectionFlags) (config.Config, error) {
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			logging.Fallback("Failed to determine config directory: %v", err)
			return config.Config{}, err
		}
		configPath = defaultPath
	}

	// The logger is not initialized until the config supplies a level, so
	// failures up to this point go through the stderr fallback.
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fallback("Failed to load configuration from %s: %v", configPath, err)
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if conn != nil {
		conn.apply(&cfg)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logging.Init(logging.ParseLevel(cfg.LogLevel), os.Stderr)

	return cfg, nil
}

// buildRegistry assembles the report registry from the built-in catalog plus
// any YAML definitions found in the configured report directory.
func buildRegistry(cfg config.Config, reportDir string) (*report.Registry, error) {
	dir := reportDir
	if dir == "" {
		dir = cfg.Server.ReportDir
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			candidate := filepath.Join(home, ".config", "formset", "reports")
			if _, statErr := os.Stat(candidate); statErr == nil {
				dir = candidate
			}
		}
	}
	if dir == "" {
		return report.DefaultRegistry()
	}
	return report.BuildRegistry(dir)
}

func credentials(cfg config.Config) capability.Credentials {
	return capability.Credentials{
		Endpoint:   cfg.Connection.Endpoint,
		ViewServer: cfg.Connection.ViewServer,
		User:       cfg.Connection.User,
		Secret:     cfg.Connection.Secret,
	}
}
