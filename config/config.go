package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultWebAppURL is the hosted game client.
const DefaultWebAppURL = "https://powerj05.github.io/wordle-bot/"

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Redis         RedisConfig         `yaml:"redis"`
	HTTP          HTTPConfig          `yaml:"http"`
	Game          GameConfig          `yaml:"game"`
	Runtime       RuntimeConfig       `yaml:"runtime"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL           string `yaml:"url"`
	DurablePrefix string `yaml:"durable_prefix"`
}

// RedisConfig holds the display name cache configuration. An empty URL disables the cache.
type RedisConfig struct {
	URL string        `yaml:"url"`
	TTL time.Duration `yaml:"ttl"`
}

// HTTPConfig holds the health and metrics server configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// GameConfig holds the game calendar and client settings.
type GameConfig struct {
	// Timezone decides when a game day starts.
	Timezone  string `yaml:"timezone"`
	WebAppURL string `yaml:"web_app_url"`
}

// RuntimeConfig bounds request handling.
type RuntimeConfig struct {
	RequestTimeout         time.Duration `yaml:"request_timeout"`
	DialogTTL              time.Duration `yaml:"dialog_ttl"`
	RateLimit              float64       `yaml:"rate_limit"`
	RateBurst              int           `yaml:"rate_burst"`
	LeaderboardConcurrency int           `yaml:"leaderboard_concurrency"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file, then applies environment overrides.
// A missing file falls back to environment variables only.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, cfg.Validate()
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, cfg.Validate()
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if c.NATS.URL == "" {
		return fmt.Errorf("NATS_URL environment variable not set")
	}
	if _, err := time.LoadLocation(c.Game.Timezone); err != nil {
		return fmt.Errorf("invalid game timezone %q: %w", c.Game.Timezone, err)
	}
	return nil
}

// Location returns the game timezone. Validate has already checked it parses.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Game.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func applyDefaults(cfg *Config) {
	if cfg.NATS.DurablePrefix == "" {
		cfg.NATS.DurablePrefix = "wordle-bot"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Game.Timezone == "" {
		cfg.Game.Timezone = "UTC"
	}
	if cfg.Game.WebAppURL == "" {
		cfg.Game.WebAppURL = DefaultWebAppURL
	}
	if cfg.Runtime.RequestTimeout == 0 {
		cfg.Runtime.RequestTimeout = 10 * time.Second
	}
	if cfg.Runtime.DialogTTL == 0 {
		cfg.Runtime.DialogTTL = 15 * time.Minute
	}
	if cfg.Runtime.RateLimit == 0 {
		cfg.Runtime.RateLimit = 1
	}
	if cfg.Runtime.RateBurst == 0 {
		cfg.Runtime.RateBurst = 5
	}
	if cfg.Runtime.LeaderboardConcurrency == 0 {
		cfg.Runtime.LeaderboardConcurrency = 8
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_DURABLE_PREFIX"); v != "" {
		cfg.NATS.DurablePrefix = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("GAME_TIMEZONE"); v != "" {
		cfg.Game.Timezone = v
	}
	if v := os.Getenv("WEB_APP_URL"); v != "" {
		cfg.Game.WebAppURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"REDIS_TTL", &cfg.Redis.TTL},
		{"REQUEST_TIMEOUT", &cfg.Runtime.RequestTimeout},
		{"DIALOG_TTL", &cfg.Runtime.DialogTTL},
	}
	for _, d := range durations {
		v := os.Getenv(d.name)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %v", d.name, err)
		}
		*d.dst = parsed
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT value: %v", err)
		}
		cfg.Runtime.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_BURST value: %v", err)
		}
		cfg.Runtime.RateBurst = n
	}
	if v := os.Getenv("LEADERBOARD_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LEADERBOARD_CONCURRENCY value: %v", err)
		}
		cfg.Runtime.LeaderboardConcurrency = n
	}
	return nil
}
