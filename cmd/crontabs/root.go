package main

import (
	"fmt"
	"os"

	"github.com/mowens/crontabs/internal/config"
	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/discovery"
	"github.com/mowens/crontabs/internal/logger"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crontabs",
	Short: "Crontabs - discover every crontab on the system",
	Long: `Crontabs aggregates per-user spool files, system crontab files, cron.d
drop-ins and anacron periodic directories into one merged view, and can
rewrite a user's crontab with computed daily prayer times.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(azaanCmd)
}

// setup loads the configuration (or defaults when no --config is given) and
// builds the logger. It exits on failure: no command can run without both.
func setup() (*config.Config, *logger.Logger) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

// newEngine builds the crontab engine from the discovery configuration.
func newEngine(cfg *config.Config) *crontab.Engine {
	return &crontab.Engine{
		SpoolDir:       cfg.Discovery.SpoolDir,
		InstallCommand: cfg.Discovery.InstallCommand,
	}
}

// locations builds the discovery registry from the configuration, in the
// order discovery must run: spool, system tabs, then anacron directories.
func locations(cfg *config.Config, eng *crontab.Engine, log *logger.Logger) []discovery.Location {
	locs := []discovery.Location{
		{Source: discovery.NewUserSpoolSource(eng, log), Path: cfg.Discovery.SpoolDir},
	}
	for _, path := range cfg.Discovery.SystemTabs {
		locs = append(locs, discovery.Location{Source: discovery.NewSystemTabSource(eng, log), Path: path})
	}
	for _, path := range cfg.Discovery.AnacronDirs {
		locs = append(locs, discovery.Location{Source: discovery.NewAnaCronSource(eng, log), Path: path})
	}
	return locs
}
