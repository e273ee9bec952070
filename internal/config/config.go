package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Provider credentials
	NewsAPIKey   string
	GeminiAPIKey string // empty disables generation and semantic ranking

	// Rules
	RulesPath string

	// Timeouts
	ProviderTimeout time.Duration
	GenerateTimeout time.Duration

	// Memo caches
	FeedCacheTTL  time.Duration
	FeedCacheSize int
	TextCacheTTL  time.Duration
	TextCacheSize int

	// Ranking
	PromoteCount int

	// App settings
	Debug          bool
	MonitoringPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		RulesPath:       "configs/rules.yaml",
		ProviderTimeout: 20 * time.Second,
		GenerateTimeout: 60 * time.Second,
		FeedCacheTTL:    3 * time.Minute,
		FeedCacheSize:   64,
		TextCacheTTL:    1 * time.Hour,
		TextCacheSize:   512,
		PromoteCount:    5,
		MonitoringPort:  "8080",
	}

	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if path := os.Getenv("RULES_PATH"); path != "" {
		cfg.RulesPath = path
	}

	cfg.ProviderTimeout = getEnvDurationOrDefault("PROVIDER_TIMEOUT_SECONDS", cfg.ProviderTimeout)
	cfg.GenerateTimeout = getEnvDurationOrDefault("GENERATE_TIMEOUT_SECONDS", cfg.GenerateTimeout)

	if v := os.Getenv("FEED_CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FeedCacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("TEXT_CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.TextCacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("PROMOTE_COUNT"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.PromoteCount = val
		}
	}

	if port := os.Getenv("MONITORING_PORT"); port != "" {
		cfg.MonitoringPort = port
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			return time.Duration(val) * time.Second
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NewsAPIKey == "" {
		return fmt.Errorf("NEWSAPI_KEY is required")
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	return nil
}
