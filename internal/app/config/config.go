// Package config loads the application configuration from a YAML file and
// fills in defaults so a missing or partial file still yields a runnable
// setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root of the YAML configuration.
type AppConfig struct {
	Environment string          `yaml:"environment,omitempty"`
	Server      ServerConfig    `yaml:"server,omitempty"`
	Database    DatabaseConfig  `yaml:"database,omitempty"`
	Processor   ProcessorConfig `yaml:"processor,omitempty"`
	Storage     StorageConfig   `yaml:"storage,omitempty"`
	Cache       CacheConfig     `yaml:"cache,omitempty"`
	Speech      SpeechConfig    `yaml:"speech,omitempty"`
	Language    LanguageConfig  `yaml:"language,omitempty"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string `yaml:"host,omitempty"`
	Port            string `yaml:"port,omitempty"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec,omitempty"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec,omitempty"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec,omitempty"`
}

// DatabaseConfig selects and configures the storage driver.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Postgres PostgresConfig `yaml:"postgres,omitempty"`
}

// SQLiteConfig holds SQLite settings.
type SQLiteConfig struct {
	Path string `yaml:"path,omitempty"`
}

// PostgresConfig holds PostgreSQL settings. Password may reference an
// environment variable as ${VAR}.
type PostgresConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	DBName   string `yaml:"dbname,omitempty"`
	SSLMode  string `yaml:"sslmode,omitempty"`
}

// ProcessorConfig holds the background job processor settings.
type ProcessorConfig struct {
	PollIntervalMs       int `yaml:"poll_interval_ms,omitempty"`
	Concurrency          int `yaml:"concurrency,omitempty"`
	StatusPollIntervalMs int `yaml:"status_poll_interval_ms,omitempty"`
}

// StorageConfig selects where audio objects live.
type StorageConfig struct {
	Backend string      `yaml:"backend,omitempty"`
	Root    string      `yaml:"root,omitempty"`
	Minio   MinioConfig `yaml:"minio,omitempty"`
}

// MinioConfig holds MinIO (S3-compatible) settings. AccessKey and SecretKey
// may reference environment variables as ${VAR}.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// CacheConfig holds the Redis result cache settings. Password may reference
// an environment variable as ${VAR}.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	TTLMin   int    `yaml:"ttl_min,omitempty"`
}

// SpeechConfig holds the transcription engine settings.
type SpeechConfig struct {
	Model       string  `yaml:"model,omitempty"`
	Prompt      string  `yaml:"prompt,omitempty"`
	Temperature float32 `yaml:"temperature,omitempty"`
}

// LanguageConfig holds the translation and romanization model settings.
type LanguageConfig struct {
	ChatModel      string `yaml:"chat_model,omitempty"`
	RomanizerModel string `yaml:"romanizer_model,omitempty"`
}

// ReadTimeout returns the server read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the server write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// IdleTimeout returns the server idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSec) * time.Second
}

// PollInterval returns the processor poll interval as a duration.
func (p ProcessorConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMs) * time.Millisecond
}

// StatusPollInterval returns the engine status poll interval as a duration.
func (p ProcessorConfig) StatusPollInterval() time.Duration {
	return time.Duration(p.StatusPollIntervalMs) * time.Millisecond
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMin) * time.Minute
}

// LoadAppConfig loads configuration from a YAML file. A missing file is not
// an error; the defaults are returned instead.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	// Expand environment variables in path
	configPath = os.ExpandEnv(configPath)

	config := &AppConfig{}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	// Expand environment variables in configuration
	config.expandEnvironmentVariables()

	// Set defaults
	config.setDefaults()

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveAppConfig saves configuration to a YAML file.
func SaveAppConfig(config *AppConfig, configPath string) error {
	configPath = os.ExpandEnv(configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandEnv resolves a ${VAR} reference against the environment. Plain
// values pass through untouched.
func expandEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}"))
	}
	return value
}

// expandEnvironmentVariables expands ${VAR} references in the secret fields.
func (c *AppConfig) expandEnvironmentVariables() {
	c.Database.Postgres.Password = expandEnv(c.Database.Postgres.Password)
	c.Storage.Minio.AccessKey = expandEnv(c.Storage.Minio.AccessKey)
	c.Storage.Minio.SecretKey = expandEnv(c.Storage.Minio.SecretKey)
	c.Cache.Password = expandEnv(c.Cache.Password)
}

// setDefaults sets default values for the configuration
func (c *AppConfig) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = 15
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = 15
	}
	if c.Server.IdleTimeoutSec == 0 {
		c.Server.IdleTimeoutSec = 60
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.SQLite.Path == "" {
		c.Database.SQLite.Path = "data/bakbak.db"
	}
	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = 5432
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = "disable"
	}

	if c.Processor.PollIntervalMs == 0 {
		c.Processor.PollIntervalMs = 30000
	}
	if c.Processor.Concurrency == 0 {
		c.Processor.Concurrency = 3
	}
	if c.Processor.StatusPollIntervalMs == 0 {
		c.Processor.StatusPollIntervalMs = 2000
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = "filesystem"
	}
	if c.Storage.Root == "" {
		c.Storage.Root = "data/audio"
	}
	if c.Storage.Minio.Bucket == "" {
		c.Storage.Minio.Bucket = "bakbak"
	}

	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Cache.TTLMin == 0 {
		c.Cache.TTLMin = 1440
	}

	if c.Speech.Model == "" {
		c.Speech.Model = "whisper-1"
	}

	if c.Language.ChatModel == "" {
		c.Language.ChatModel = "gpt-3.5-turbo"
	}
	if c.Language.RomanizerModel == "" {
		c.Language.RomanizerModel = "gemini-2.0-flash"
	}
}

// Validate validates the configuration
func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database driver '%s' (expected sqlite or postgres)", c.Database.Driver)
	}

	if c.Database.Driver == "postgres" {
		if c.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres driver requires database.postgres.host")
		}
		if c.Database.Postgres.DBName == "" {
			return fmt.Errorf("postgres driver requires database.postgres.dbname")
		}
	}

	switch c.Storage.Backend {
	case "filesystem", "minio":
	default:
		return fmt.Errorf("invalid storage backend '%s' (expected filesystem or minio)", c.Storage.Backend)
	}

	if c.Storage.Backend == "minio" {
		if c.Storage.Minio.Endpoint == "" {
			return fmt.Errorf("minio backend requires storage.minio.endpoint")
		}
		if c.Storage.Minio.AccessKey == "" || c.Storage.Minio.SecretKey == "" {
			return fmt.Errorf("minio backend requires storage.minio.access_key and secret_key")
		}
	}

	if c.Processor.PollIntervalMs < 0 || c.Processor.Concurrency < 0 || c.Processor.StatusPollIntervalMs < 0 {
		return fmt.Errorf("processor settings must be positive")
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("BAKBAK_CONFIG_PATH"); path != "" {
		return path
	}

	// Use home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}

	return filepath.Join(home, ".bakbak", "config.yaml")
}

// CreateDefaultConfig creates a configuration with every default filled in,
// suitable for writing a starter config file.
func CreateDefaultConfig() *AppConfig {
	config := &AppConfig{
		Storage: StorageConfig{
			Minio: MinioConfig{
				Endpoint:  "localhost:9000",
				AccessKey: "${MINIO_ACCESS_KEY}",
				SecretKey: "${MINIO_SECRET_KEY}",
			},
		},
	}
	config.setDefaults()
	return config
}
