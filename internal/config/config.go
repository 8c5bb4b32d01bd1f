package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage providers.
const (
	StorageProviderLocal = "local"
	StorageProviderS3    = "s3"
)

// Lock providers.
const (
	LockProviderPostgres = "postgres"
	LockProviderRedis    = "redis"
	LockProviderMemory   = "memory"
)

// Copy revision naming policies. See TransferConfig.CopyRevisionNaming.
const (
	CopyRevisionNewDocument = "new_document"
	CopyRevisionSourceNext  = "source_next"
)

// ErrStorageRootMissing is returned by Load when no storage root is configured.
var ErrStorageRootMissing = errors.New("storage root is not configured (DOCKET_STORAGE_ROOT)")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Storage  StorageConfig
	Lock     LockConfig
	Transfer TransferConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig holds document file storage settings. Root is the directory
// (local) or key prefix (s3) under which the matters/ tree lives.
type StorageConfig struct {
	Provider string   `mapstructure:"provider"`
	Root     string   `mapstructure:"root"`
	S3       S3Config `mapstructure:"s3"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LockConfig selects the per-document lock used by transfers.
type LockConfig struct {
	Provider      string        `mapstructure:"provider"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// TransferConfig holds move/copy settings.
type TransferConfig struct {
	// CopyRevisionNaming picks the revision numeral used in a copied file's
	// destination name: new_document uses the copy's own first revision (1),
	// source_next uses the source's latest revision number + 1.
	CopyRevisionNaming  string        `mapstructure:"copy_revision_naming"`
	ReconcileStaleAfter time.Duration `mapstructure:"reconcile_stale_after"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCKET_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docket")
	v.SetDefault("db.password", "docket_secret")
	v.SetDefault("db.name", "docket_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Storage defaults (root has no default on purpose)
	v.SetDefault("storage.provider", StorageProviderLocal)
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.endpoint", "")

	// Lock defaults
	v.SetDefault("lock.provider", LockProviderPostgres)
	v.SetDefault("lock.redis_addr", "localhost:6379")
	v.SetDefault("lock.redis_password", "")
	v.SetDefault("lock.redis_db", 0)
	v.SetDefault("lock.ttl", "2m")

	// Transfer defaults
	v.SetDefault("transfer.copy_revision_naming", CopyRevisionNewDocument)
	v.SetDefault("transfer.reconcile_stale_after", "10m")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	envBindings := map[string]string{
		"server.port":                    "DOCKET_SERVER_PORT",
		"server.read_timeout":            "DOCKET_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DOCKET_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DOCKET_SERVER_ENVIRONMENT",
		"db.host":                        "DOCKET_DB_HOST",
		"db.port":                        "DOCKET_DB_PORT",
		"db.user":                        "DOCKET_DB_USER",
		"db.password":                    "DOCKET_DB_PASSWORD",
		"db.name":                        "DOCKET_DB_NAME",
		"db.sslmode":                     "DOCKET_DB_SSLMODE",
		"db.max_open":                    "DOCKET_DB_MAX_OPEN",
		"db.max_idle":                    "DOCKET_DB_MAX_IDLE",
		"storage.provider":               "DOCKET_STORAGE_PROVIDER",
		"storage.root":                   "DOCKET_STORAGE_ROOT",
		"storage.s3.region":              "DOCKET_STORAGE_S3_REGION",
		"storage.s3.bucket":              "DOCKET_STORAGE_S3_BUCKET",
		"storage.s3.endpoint":            "DOCKET_STORAGE_S3_ENDPOINT",
		"storage.s3.access_key":          "DOCKET_STORAGE_S3_ACCESS_KEY",
		"storage.s3.secret_key":          "DOCKET_STORAGE_S3_SECRET_KEY",
		"lock.provider":                  "DOCKET_LOCK_PROVIDER",
		"lock.redis_addr":                "DOCKET_LOCK_REDIS_ADDR",
		"lock.redis_password":            "DOCKET_LOCK_REDIS_PASSWORD",
		"lock.redis_db":                  "DOCKET_LOCK_REDIS_DB",
		"lock.ttl":                       "DOCKET_LOCK_TTL",
		"transfer.copy_revision_naming":  "DOCKET_TRANSFER_COPY_REVISION_NAMING",
		"transfer.reconcile_stale_after": "DOCKET_TRANSFER_RECONCILE_STALE_AFTER",
		"log.level":                      "DOCKET_LOG_LEVEL",
		"log.format":                     "DOCKET_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCKET_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{
		Provider: strings.ToLower(v.GetString("storage.provider")),
		Root:     strings.TrimSpace(v.GetString("storage.root")),
		S3: S3Config{
			Region:    v.GetString("storage.s3.region"),
			Bucket:    v.GetString("storage.s3.bucket"),
			Endpoint:  v.GetString("storage.s3.endpoint"),
			AccessKey: v.GetString("storage.s3.access_key"),
			SecretKey: v.GetString("storage.s3.secret_key"),
		},
	}
	cfg.Lock = LockConfig{
		Provider:      strings.ToLower(v.GetString("lock.provider")),
		RedisAddr:     v.GetString("lock.redis_addr"),
		RedisPassword: v.GetString("lock.redis_password"),
		RedisDB:       v.GetInt("lock.redis_db"),
		TTL:           v.GetDuration("lock.ttl"),
	}
	cfg.Transfer = TransferConfig{
		CopyRevisionNaming:  strings.ToLower(v.GetString("transfer.copy_revision_naming")),
		ReconcileStaleAfter: v.GetDuration("transfer.reconcile_stale_after"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Provider {
	case StorageProviderLocal:
		if c.Storage.Root == "" {
			return ErrStorageRootMissing
		}
	case StorageProviderS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage provider s3 requires DOCKET_STORAGE_S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}

	switch c.Lock.Provider {
	case LockProviderPostgres, LockProviderRedis, LockProviderMemory:
	default:
		return fmt.Errorf("unknown lock provider %q", c.Lock.Provider)
	}

	switch c.Transfer.CopyRevisionNaming {
	case CopyRevisionNewDocument, CopyRevisionSourceNext:
	default:
		return fmt.Errorf("unknown copy revision naming %q", c.Transfer.CopyRevisionNaming)
	}
	return nil
}
