package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven configuration for the overlay.
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Default input/output locations for the CLI; every command can
	// override these with flags.
	Paths PathsConfig

	// Logging
	LogLevel  string
	LogFormat string // json (default) or console
}

// PathsConfig holds default file locations.
type PathsConfig struct {
	GPRCSV       string // daily risk index CSV
	PortfolioCSV string // fund holdings CSV with industry mapping
	StrategyYAML string // optional strategy config overriding thresholds
	OutputDir    string // where reports are written
}

// Load reads configuration from environment variables. This is the only
// function that calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Paths: PathsConfig{
			GPRCSV:       getEnv("GPR_CSV_PATH", "data/gpr_daily_recent.csv"),
			PortfolioCSV: getEnv("PORTFOLIO_CSV_PATH", "data/portfolio_holdings.csv"),
			StrategyYAML: getEnv("STRATEGY_CONFIG_PATH", ""),
			OutputDir:    getEnv("OUTPUT_DIR", "output"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks required configuration values.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	return nil
}

// loadEnvFile tries to load .env from a few likely locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
