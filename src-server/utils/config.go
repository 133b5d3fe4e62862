package utils

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	port string

	username   string
	backendUrl string

	databasePath string
	location     *time.Location

	refreshInterval          time.Duration
	metricCollectionInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		username: func() string {
			username := os.Getenv("USERNAME")
			if username == "" {
				slog.Error("USERNAME is not set")
				os.Exit(1)
			}
			slog.Debug("env", "USERNAME", username)
			return username
		}(),
		backendUrl: func() string {
			// blank means the embedded sqlite backend
			backendUrl := os.Getenv("BACKEND_URL")
			slog.Debug("env", "BACKEND_URL", backendUrl)
			return backendUrl
		}(),

		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),
		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		refreshInterval: func() time.Duration {
			refreshInterval := os.Getenv("REFRESH_INTERVAL")
			if refreshInterval == "" {
				refreshInterval = "15m"
			}
			duration, err := time.ParseDuration(refreshInterval)
			if err != nil {
				slog.Error("invalid REFRESH_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "REFRESH_INTERVAL", refreshInterval, "duration", duration)
			return duration
		}(),
		metricCollectionInterval: func() time.Duration {
			metricCollectionInterval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if metricCollectionInterval == "" {
				metricCollectionInterval = "1m"
			}
			duration, err := time.ParseDuration(metricCollectionInterval)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", metricCollectionInterval, "duration", duration)
			return duration
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get USERNAME env, the session user this instance serves
func (c *Config) GetUsername() string {
	return c.username
}

// Get BACKEND_URL env; blank means the embedded sqlite backend
func (c *Config) GetBackendUrl() string {
	return c.backendUrl
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get REFRESH_INTERVAL env, default to 15m
func (c *Config) GetRefreshInterval() time.Duration {
	return c.refreshInterval
}

// Get METRIC_COLLECTION_INTERVAL env, default to 1m
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
