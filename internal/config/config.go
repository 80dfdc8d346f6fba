package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ValetAPI configures the Bank of Canada Valet client.
type ValetAPI struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Selection configures the fetch window used to answer queries.
type Selection struct {
	// LookbackDays is the number of extra calendar days before the start
	// date requested from the source, so a fallback observation exists even
	// across holiday clusters.
	LookbackDays int `mapstructure:"lookback_days"`
}

// Cache configures the optional on-disk observation cache.
type Cache struct {
	Enabled  bool   `mapstructure:"enabled"`
	Path     string `mapstructure:"path"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// Logging configures log output.
type Logging struct {
	Level string `mapstructure:"level"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	ValetAPI  ValetAPI  `mapstructure:"valet_api"`
	Selection Selection `mapstructure:"selection"`
	Cache     Cache     `mapstructure:"cache"`
	Logging   Logging   `mapstructure:"logging"`
}

// Init loads configuration from an optional config.yaml and .env in the
// working directory, plus environment variables. Everything has a default;
// the tool runs with no configuration at all.
func Init() (*AppConfig, error) {
	var cfg AppConfig

	// A .env file is optional for a command-line tool.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("valet_api.base_url", "https://www.bankofcanada.ca/valet")
	viper.SetDefault("valet_api.timeout_seconds", 10)
	viper.SetDefault("selection.lookback_days", 10)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.path", defaultCachePath())
	viper.SetDefault("cache.ttl_hours", 24)
	viper.SetDefault("logging.level", "info")

	// valet api env vars
	_ = viper.BindEnv("valet_api.base_url", "BOC_BASE_URL")
	_ = viper.BindEnv("valet_api.timeout_seconds", "HTTP_TIMEOUT_SECONDS")

	// selection env vars
	_ = viper.BindEnv("selection.lookback_days", "LOOKBACK_DAYS")

	// cache env vars
	_ = viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = viper.BindEnv("cache.path", "CACHE_PATH")
	_ = viper.BindEnv("cache.ttl_hours", "CACHE_TTL_HOURS")

	// logging env vars
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// defaultCachePath places the observation cache under the user cache
// directory, falling back to the working directory when none is known.
func defaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "boc-usd-cad")
}
