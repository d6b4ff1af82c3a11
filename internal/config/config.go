package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// UrgencyConfig tunes the urgency classifier thresholds.
type UrgencyConfig struct {
	// PercentThreshold marks equipment urgent below this % of interval remaining.
	PercentThreshold float64 `yaml:"percent_threshold"`
	// DaysThreshold marks calendar-axis equipment urgent under this many days.
	DaysThreshold int `yaml:"days_threshold"`
}

// Config holds all runtime configuration.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`
	// LogOperations enables structured operation logging to stderr.
	LogOperations bool          `yaml:"log_operations"`
	Urgency       UrgencyConfig `yaml:"urgency"`
}

// Default returns a Config with the standard thresholds and the database
// under the user's home directory.
func Default() Config {
	cfg := Config{
		LogOperations: false,
		Urgency: UrgencyConfig{
			PercentThreshold: 10,
			DaysThreshold:    7,
		},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DBPath = filepath.Join(home, ".mainstay", "mainstay.db")
	} else {
		cfg.DBPath = "mainstay.db"
	}
	return cfg
}

// Load reads configuration from the YAML file at path (missing file is fine,
// defaults apply), then applies MAINSTAY_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MAINSTAY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MAINSTAY_LOG_OPERATIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogOperations = b
		}
	}
	if v := os.Getenv("MAINSTAY_URGENCY_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Urgency.PercentThreshold = f
		}
	}
	if v := os.Getenv("MAINSTAY_URGENCY_DAYS"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			cfg.Urgency.DaysThreshold = d
		}
	}
}
