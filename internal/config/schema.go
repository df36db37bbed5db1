// Package config loads and validates the TOML configuration for the crontabs
// CLI: logging, the discovery location registry, and the azaan updater
// settings.
package config

// Config is the root configuration document.
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Discovery DiscoveryConfig `toml:"discovery"`
	Azaan     AzaanConfig     `toml:"azaan"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, text
	Output string `toml:"output"` // stdout, stderr, or a file path
}

// DiscoveryConfig overrides the platform location registry. Empty fields
// fall back to the known Linux locations.
type DiscoveryConfig struct {
	SpoolDir       string   `toml:"spool_dir"`       // per-user spool directory
	SystemTabs     []string `toml:"system_tabs"`     // files or drop-in directories
	AnacronDirs    []string `toml:"anacron_dirs"`    // periodic-job directories
	InstallCommand string   `toml:"install_command"` // crontab binary; empty writes the spool directly
}

// AzaanConfig configures the prayer-time crontab updater.
type AzaanConfig struct {
	User      string  `toml:"user"`      // whose crontab is rewritten
	Latitude  float64 `toml:"latitude"`  // decimal degrees
	Longitude float64 `toml:"longitude"` // decimal degrees
	Method    string  `toml:"method"`    // calculation method name
	Tag       string  `toml:"tag"`       // comment marking jobs owned by the updater

	AdhanCommand    string `toml:"adhan_command"`     // played at each prayer time
	FajrCommand     string `toml:"fajr_command"`      // played at fajr; falls back to adhan_command
	UpdateCommand   string `toml:"update_command"`    // nightly self-refresh job
	ClearLogCommand string `toml:"clear_log_command"` // monthly log truncation job
}
