package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Predictor PredictorConfig
	Dataset   DatasetConfig
	Worker    WorkerConfig
	Sources   SourcesConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	RateLimitRPS    float64
	ShutdownTimeout time.Duration
}

type PredictorConfig struct {
	// Delay is the artificial inference latency before a result is returned.
	Delay time.Duration
}

type DatasetConfig struct {
	SampleSize     int
	TableLimit     int
	UploadMaxBytes int64
	Timezone       string
	Location       *time.Location
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type SourcesConfig struct {
	USGSEnabled       bool
	USGSURL           string
	USGSPollInterval  time.Duration
	GDACSEnabled      bool
	GDACSURL          string
	GDACSPollInterval time.Duration
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 10),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Predictor: PredictorConfig{
			Delay: getEnvDuration("PREDICT_DELAY", 1500*time.Millisecond),
		},
		Dataset: DatasetConfig{
			SampleSize:     getEnvInt("SAMPLE_SIZE", 100),
			TableLimit:     getEnvInt("TABLE_LIMIT", 50),
			UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 10<<20)),
			Timezone:       getEnv("DISPLAY_TIMEZONE", "Local"),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Sources: SourcesConfig{
			USGSEnabled:       getEnvBool("USGS_ENABLED", false),
			USGSURL:           getEnv("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/2.5_month.geojson"),
			USGSPollInterval:  getEnvDuration("USGS_POLL_INTERVAL", 15*time.Minute),
			GDACSEnabled:      getEnvBool("GDACS_ENABLED", false),
			GDACSURL:          getEnv("GDACS_URL", "https://www.gdacs.org/xml/rss.xml"),
			GDACSPollInterval: getEnvDuration("GDACS_POLL_INTERVAL", 30*time.Minute),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
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
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.Server.RateLimitRPS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Predictor.Delay < 0 {
		return fmt.Errorf("predict delay cannot be negative")
	}
	if c.Dataset.SampleSize < 1 {
		return fmt.Errorf("sample size must be at least 1, got %d", c.Dataset.SampleSize)
	}
	if c.Dataset.TableLimit < 1 {
		return fmt.Errorf("table limit must be at least 1, got %d", c.Dataset.TableLimit)
	}
	if c.Dataset.UploadMaxBytes < 1 {
		return fmt.Errorf("upload limit must be positive")
	}

	loc, err := time.LoadLocation(c.Dataset.Timezone)
	if err != nil {
		return fmt.Errorf("invalid display timezone %q: %w", c.Dataset.Timezone, err)
	}
	c.Dataset.Location = loc

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	if c.Sources.USGSPollInterval < time.Minute {
		return fmt.Errorf("USGS poll interval must be at least 1 minute")
	}
	if c.Sources.GDACSPollInterval < time.Minute {
		return fmt.Errorf("GDACS poll interval must be at least 1 minute")
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

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
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
