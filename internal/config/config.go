package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataStorePostgres = "postgres"
	DataStoreMemory   = "memory"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Ledger   LedgerConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	Name             string
	SSLMode          string
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
	LockTimeout      time.Duration
	AutoMigrate      bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	DataStore       string
	ShutdownTimeout time.Duration
}

// StorageConfig holds file store configuration
type StorageConfig struct {
	BasePath      string
	BaseURL       string
	MaxUploadSize int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// JobsConfig drives the background maintenance scheduler
type JobsConfig struct {
	NotificationRetention time.Duration
	PruneInterval         time.Duration
}

// LedgerConfig points at the optional ledger policy file
type LedgerConfig struct {
	PolicyFile string
	Policy     PolicyFile
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	statementTimeout, err := time.ParseDuration(getEnv("DB_STATEMENT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_STATEMENT_TIMEOUT: %w", err)
	}
	lockTimeout, err := time.ParseDuration(getEnv("DB_LOCK_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_LOCK_TIMEOUT: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnv("AUTO_MIGRATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:             getEnv("DB_HOST", "localhost"),
		Port:             dbPort,
		User:             getEnv("DB_USER", "postgres"),
		Password:         getEnv("DB_PASSWORD", ""),
		Name:             getEnv("DB_NAME", "leave_ledger"),
		SSLMode:          getEnv("DB_SSL_MODE", "disable"),
		MaxConns:         int32(maxConns),
		MinConns:         int32(minConns),
		StatementTimeout: statementTimeout,
		LockTimeout:      lockTimeout,
		AutoMigrate:      autoMigrate,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DataStore:       strings.ToLower(getEnv("DATA_STORE", DataStorePostgres)),
		ShutdownTimeout: shutdownTimeout,
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Storage configuration
	maxUpload, err := strconv.ParseInt(getEnv("STORAGE_MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_MAX_UPLOAD_BYTES: %w", err)
	}
	config.Storage = StorageConfig{
		BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:       getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", appPort)),
		MaxUploadSize: maxUpload,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Maintenance jobs
	retention, err := time.ParseDuration(getEnv("NOTIFICATION_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_RETENTION: %w", err)
	}
	pruneInterval, err := time.ParseDuration(getEnv("NOTIFICATION_PRUNE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_PRUNE_INTERVAL: %w", err)
	}
	config.Jobs = JobsConfig{
		NotificationRetention: retention,
		PruneInterval:         pruneInterval,
	}

	// Ledger policy
	config.Ledger = LedgerConfig{
		PolicyFile: getEnv("LEDGER_POLICY_FILE", ""),
		Policy:     DefaultPolicyFile(),
	}
	if config.Ledger.PolicyFile != "" {
		policy, err := LoadPolicyFile(config.Ledger.PolicyFile)
		if err != nil {
			return nil, err
		}
		config.Ledger.Policy = policy
		slog.Info("Loaded ledger policy", "path", config.Ledger.PolicyFile)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.DataStore {
	case DataStorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DataStoreMemory:
	default:
		return fmt.Errorf("DATA_STORE must be %q or %q", DataStorePostgres, DataStoreMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Jobs.NotificationRetention > 0 && c.Jobs.PruneInterval <= 0 {
		return fmt.Errorf("NOTIFICATION_PRUNE_INTERVAL must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return c.Ledger.Policy.Validate()
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
