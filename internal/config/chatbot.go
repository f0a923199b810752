package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type ChatbotConfig struct {
	Session   SessionConfig   `mapstructure:"session"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type SessionConfig struct {
	Store            string        `mapstructure:"store"`
	TTL              time.Duration `mapstructure:"ttl"`
	MaxRecentQueries int           `mapstructure:"max_recent_queries"`
	Shards           int           `mapstructure:"shards"`
	JanitorInterval  time.Duration `mapstructure:"janitor_interval"`
}

type ForecastConfig struct {
	ModelVersion           string `mapstructure:"model_version"`
	DefaultLeadDays        int    `mapstructure:"default_lead_days"`
	AvailabilityWindowDays int    `mapstructure:"availability_window_days"`
	TrendWindowDays        int    `mapstructure:"trend_window_days"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoadChatbotConfig reads defaults, then an optional config.yaml, then
// CHATBOT_* environment variables such as CHATBOT_SESSION_TTL=45m.
func LoadChatbotConfig(configPath string) (*ChatbotConfig, error) {
	v := viper.New()

	setChatbotDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CHATBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg ChatbotConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *ChatbotConfig) Validate() error {
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Session.MaxRecentQueries <= 0 {
		return fmt.Errorf("session max_recent_queries must be positive, got %d", c.Session.MaxRecentQueries)
	}
	if c.Forecast.TrendWindowDays < 2 {
		return fmt.Errorf("forecast trend_window_days must be at least 2, got %d", c.Forecast.TrendWindowDays)
	}
	return nil
}

func setChatbotDefaults(v *viper.Viper) {
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.max_recent_queries", 5)
	v.SetDefault("session.shards", 16)
	v.SetDefault("session.janitor_interval", time.Minute)

	v.SetDefault("forecast.model_version", "heuristic-v1")
	v.SetDefault("forecast.default_lead_days", 7)
	v.SetDefault("forecast.availability_window_days", 7)
	v.SetDefault("forecast.trend_window_days", 14)

	v.SetDefault("rate_limit.requests_per_second", 50)
	v.SetDefault("rate_limit.burst", 100)
}
