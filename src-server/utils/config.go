package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	StoreBackendJSON   = "json"
	StoreBackendSQLite = "sqlite"
)

type Config struct {
	port string

	dataDir      string
	storeBackend string

	location *time.Location

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

		dataDir: func() string {
			dataDir := os.Getenv("DATA_DIR")
			if dataDir == "" {
				dataDir = "./data"
			}
			slog.Debug("env", "DATA_DIR", dataDir)
			return filepath.Clean(dataDir)
		}(),
		storeBackend: func() string {
			storeBackend := os.Getenv("STORE_BACKEND")
			switch storeBackend {
			case "":
				storeBackend = StoreBackendJSON
			case StoreBackendJSON, StoreBackendSQLite:
			default:
				slog.Error("invalid STORE_BACKEND, want json or sqlite", "STORE_BACKEND", storeBackend)
				os.Exit(1)
			}
			slog.Debug("env", "STORE_BACKEND", storeBackend)
			return storeBackend
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

		metricCollectionInterval: func() time.Duration {
			intervalStr := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if intervalStr == "" {
				intervalStr = "1m"
			}
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", interval)
			return interval
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATA_DIR env, default to ./data
func (c *Config) GetDataDir() string {
	return c.dataDir
}

// Get STORE_BACKEND env, json or sqlite, default to json
func (c *Config) GetStoreBackend() string {
	return c.storeBackend
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get METRIC_COLLECTION_INTERVAL env, default to 1m
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
