package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StorageDriverLocal = "local"
	StorageDriverGCS   = "gcs"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port               string `yaml:"port" env:"SERVER_PORT"`
		Mode               string `yaml:"mode" env:"SERVER_MODE"`
		CORSAllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
		PublicBaseURL      string `yaml:"public_base_url" env:"PUBLIC_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Storage struct {
		Driver             string `yaml:"driver" env:"STORAGE_DRIVER"`
		LocalPath          string `yaml:"local_path" env:"STORAGE_LOCAL_PATH"`
		GCSBucket          string `yaml:"gcs_bucket" env:"GCS_BUCKET"`
		GCSCredentialsFile string `yaml:"gcs_credentials_file" env:"GCS_CREDENTIALS_FILE"`
		GCSPublicBaseURL   string `yaml:"gcs_public_base_url" env:"GCS_PUBLIC_BASE_URL"`
		MaxUploadSizeMB    int    `yaml:"max_upload_size_mb" env:"STORAGE_MAX_UPLOAD_SIZE_MB"`
	} `yaml:"storage"`

	Redis struct {
		Enabled         bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr            string `yaml:"addr" env:"REDIS_ADDR"`
		Password        string `yaml:"password" env:"REDIS_PASSWORD"`
		DB              int    `yaml:"db" env:"REDIS_DB"`
		OverallCacheTTL string `yaml:"overall_cache_ttl" env:"REDIS_OVERALL_CACHE_TTL"`
		SyncLockTTL     string `yaml:"sync_lock_ttl" env:"REDIS_SYNC_LOCK_TTL"`
	} `yaml:"redis"`

	Statistics struct {
		SyncSchedule string `yaml:"sync_schedule" env:"STATISTICS_SYNC_SCHEDULE"`
		SyncTimeout  string `yaml:"sync_timeout" env:"STATISTICS_SYNC_TIMEOUT"`
	} `yaml:"statistics"`

	Admin struct {
		Username string `yaml:"username" env:"ADMIN_USERNAME"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"admin"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`
}

// LoadConfig loads configuration from defaults, a YAML file, an optional .env file
// and environment variables, in that order of precedence (last wins).
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Variables already present in the environment take precedence over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.CORSAllowedOrigins = "*"
	config.Server.PublicBaseURL = "http://localhost:8080"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "coursehub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "168h"
	config.JWT.Issuer = "coursehub"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Storage.Driver = StorageDriverLocal
	config.Storage.LocalPath = "uploads"
	config.Storage.MaxUploadSizeMB = 50

	config.Redis.Addr = "localhost:6379"
	config.Redis.OverallCacheTTL = "5m"
	config.Redis.SyncLockTTL = "10m"

	config.Statistics.SyncTimeout = "5m"

	config.Admin.Username = "admin"

	config.Metrics.Enabled = true
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database url or host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"redis overall cache ttl":      config.Redis.OverallCacheTTL,
		"redis sync lock ttl":          config.Redis.SyncLockTTL,
		"statistics sync timeout":      config.Statistics.SyncTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch config.Storage.Driver {
	case StorageDriverLocal:
		if config.Storage.LocalPath == "" {
			return fmt.Errorf("storage local_path is required for the local driver")
		}
	case StorageDriverGCS:
		if config.Storage.GCSBucket == "" {
			return fmt.Errorf("storage gcs_bucket is required for the gcs driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Statistics.SyncSchedule != "" {
		if _, err := cron.ParseStandard(config.Statistics.SyncSchedule); err != nil {
			return fmt.Errorf("invalid statistics sync schedule: %w", err)
		}
	}

	if config.Server.PublicBaseURL != "" {
		if _, err := url.ParseRequestURI(config.Server.PublicBaseURL); err != nil {
			return fmt.Errorf("invalid public base url: %w", err)
		}
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// AllowedOrigins splits the comma-separated CORS origin list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.Server.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// GetPostgresConnectionString returns the DSN, preferring an explicit database url
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}
