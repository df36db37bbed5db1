package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML config file, applies defaults and expands environment
// variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandEnvVars(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Logging.Level == "" {
		errors = append(errors, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errors = append(errors, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	if c.Discovery.SpoolDir == "" {
		errors = append(errors, fmt.Errorf("discovery.spool_dir is required"))
	}

	if c.Azaan.Latitude < -90 || c.Azaan.Latitude > 90 {
		errors = append(errors, fmt.Errorf("azaan.latitude out of range: %v (expected -90..90)", c.Azaan.Latitude))
	}
	if c.Azaan.Longitude < -180 || c.Azaan.Longitude > 180 {
		errors = append(errors, fmt.Errorf("azaan.longitude out of range: %v (expected -180..180)", c.Azaan.Longitude))
	}
	if c.Azaan.Method == "" {
		errors = append(errors, fmt.Errorf("azaan.method is required"))
	}
	if c.Azaan.Tag == "" {
		errors = append(errors, fmt.Errorf("azaan.tag is required: the updater cannot identify its own jobs without it"))
	}

	return errors
}

// expandEnvVars expands ${VAR:default} references and ~ in path fields.
func expandEnvVars(c *Config) {
	c.Azaan.User = expandEnv(c.Azaan.User)
	c.Discovery.SpoolDir = expandHome(expandEnv(c.Discovery.SpoolDir))
	c.Logging.Output = expandHome(expandEnv(c.Logging.Output))
	for i, p := range c.Discovery.SystemTabs {
		c.Discovery.SystemTabs[i] = expandHome(expandEnv(p))
	}
	for i, p := range c.Discovery.AnacronDirs {
		c.Discovery.AnacronDirs[i] = expandHome(expandEnv(p))
	}
}

// expandEnv expands an environment variable of the form ${VAR:default}.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		key := parts[0]
		defaultVal := parts[1]
		if val := os.Getenv(key); val != "" {
			return val
		}
		return defaultVal
	}

	return os.Getenv(s[2:end])
}

// expandHome expands a leading ~ in a path.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
