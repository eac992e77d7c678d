package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Index   IndexConfig
	Drive   DriveConfig
	Ingest  IngestConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	MaxUploadBytes  int64
	DownloadTimeout time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig holds local file layout configuration
type StorageConfig struct {
	DataDir   string
	ParsedDir string
}

// IndexConfig selects and configures the index store backend
type IndexConfig struct {
	Backend    string // "file" | "sqlite" | "postgres"
	Path       string // file backend
	SQLitePath string // sqlite backend
	DSN        string // postgres backend
}

// DriveConfig holds Google Drive sync configuration
type DriveConfig struct {
	FolderID           string
	ServiceAccountJSON string
	SyncCron           string
}

// IngestConfig holds data-directory watcher configuration
type IngestConfig struct {
	WatchEnabled bool
	Debounce     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_MB", 25) << 20,
			DownloadTimeout: getEnvAsDuration("DOWNLOAD_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			DataDir:   getEnv("DATA_DIR", "data"),
			ParsedDir: getEnv("PARSED_DIR", "parsed"),
		},
		Index: IndexConfig{
			Backend:    getEnv("INDEX_BACKEND", "file"),
			Path:       getEnv("INDEX_PATH", "index.json"),
			SQLitePath: getEnv("SQLITE_PATH", "index.db"),
			DSN:        getEnv("DB_URL", ""),
		},
		Drive: DriveConfig{
			FolderID:           getEnv("DRIVE_FOLDER_ID", ""),
			ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
			SyncCron:           getEnv("SYNC_CRON", ""),
		},
		Ingest: IngestConfig{
			WatchEnabled: getEnvAsBool("WATCH_ENABLED", false),
			Debounce:     getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return NewAppError("CONFIG_ERROR", "PORT is required", ErrInvalidInput)
	}
	switch c.Index.Backend {
	case "file", "sqlite", "postgres":
	default:
		return NewAppError("CONFIG_ERROR", "INDEX_BACKEND must be file, sqlite or postgres", ErrInvalidInput)
	}
	if c.Index.Backend == "postgres" && c.Index.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres index backend", ErrInvalidInput)
	}
	if c.Drive.SyncCron != "" && c.Drive.ServiceAccountJSON == "" {
		return NewAppError("CONFIG_ERROR", "SYNC_CRON requires GOOGLE_SERVICE_ACCOUNT_JSON", ErrInvalidInput)
	}
	if c.Drive.SyncCron != "" && c.Drive.FolderID == "" {
		return NewAppError("CONFIG_ERROR", "SYNC_CRON requires DRIVE_FOLDER_ID", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
