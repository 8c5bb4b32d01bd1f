package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/config"
)

func TestLoad_MissingStorageRoot(t *testing.T) {
	t.Setenv("DOCKET_STORAGE_ROOT", "")
	t.Setenv("DOCKET_STORAGE_PROVIDER", "local")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrStorageRootMissing)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOCKET_STORAGE_ROOT", "/var/lib/docket")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/docket", cfg.Storage.Root)
	assert.Equal(t, config.StorageProviderLocal, cfg.Storage.Provider)
	assert.Equal(t, config.LockProviderPostgres, cfg.Lock.Provider)
	assert.Equal(t, config.CopyRevisionNewDocument, cfg.Transfer.CopyRevisionNaming)
	assert.Equal(t, 10*time.Minute, cfg.Transfer.ReconcileStaleAfter)
	assert.Equal(t, 2*time.Minute, cfg.Lock.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCKET_STORAGE_ROOT", "/data")
	t.Setenv("DOCKET_LOCK_PROVIDER", "redis")
	t.Setenv("DOCKET_LOCK_REDIS_ADDR", "redis:6379")
	t.Setenv("DOCKET_TRANSFER_COPY_REVISION_NAMING", "source_next")
	t.Setenv("DOCKET_DB_HOST", "db.internal")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.LockProviderRedis, cfg.Lock.Provider)
	assert.Equal(t, "redis:6379", cfg.Lock.RedisAddr)
	assert.Equal(t, config.CopyRevisionSourceNext, cfg.Transfer.CopyRevisionNaming)
	assert.Equal(t, "db.internal", cfg.DB.Host)
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	t.Setenv("DOCKET_STORAGE_PROVIDER", "s3")
	t.Setenv("DOCKET_STORAGE_S3_BUCKET", "")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestLoad_UnknownCopyNaming(t *testing.T) {
	t.Setenv("DOCKET_STORAGE_ROOT", "/data")
	t.Setenv("DOCKET_TRANSFER_COPY_REVISION_NAMING", "whatever")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}

	assert.Equal(t, "postgres://u:p@localhost:5432/n?sslmode=disable", db.DSN())
}
