package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Feed      FeedConfig
	Predictor PredictorConfig
	DB        DatabaseConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type FeedConfig struct {
	CycloneInterval        time.Duration
	StormSurgeInterval     time.Duration
	CoastalErosionInterval time.Duration
	WaterPollutionInterval time.Duration
	Seed                   int64
}

type PredictorConfig struct {
	Enabled bool
	URL     string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

type RateLimitConfig struct {
	RPS int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Feed: FeedConfig{
			CycloneInterval:        getEnvDuration("CYCLONE_FEED_INTERVAL", 2*time.Second),
			StormSurgeInterval:     getEnvDuration("STORM_SURGE_FEED_INTERVAL", 10*time.Second),
			CoastalErosionInterval: getEnvDuration("COASTAL_EROSION_FEED_INTERVAL", 10*time.Second),
			WaterPollutionInterval: getEnvDuration("WATER_POLLUTION_FEED_INTERVAL", 10*time.Second),
			Seed:                   getEnvInt64("FEED_SEED", time.Now().UnixNano()),
		},
		Predictor: PredictorConfig{
			Enabled: getEnvBool("PREDICTOR_ENABLED", true),
			URL:     getEnv("PREDICTOR_URL", "http://localhost:8000/predict"),
			Timeout: getEnvDuration("PREDICTOR_TIMEOUT", 5*time.Second),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/hazard-alerts.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		RateLimit: RateLimitConfig{
			RPS: getEnvInt("RATE_LIMIT_RPS", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	intervals := map[string]time.Duration{
		"cyclone":         c.Feed.CycloneInterval,
		"storm surge":     c.Feed.StormSurgeInterval,
		"coastal erosion": c.Feed.CoastalErosionInterval,
		"water pollution": c.Feed.WaterPollutionInterval,
	}
	for name, iv := range intervals {
		if iv < time.Second {
			return fmt.Errorf("%s feed interval must be at least 1 second", name)
		}
	}

	if c.Predictor.Enabled && c.Predictor.URL == "" {
		return fmt.Errorf("predictor enabled but no URL configured")
	}
	if c.Predictor.Timeout < time.Second {
		return fmt.Errorf("predictor timeout must be at least 1 second")
	}

	if c.RateLimit.RPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
