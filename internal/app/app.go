// Package app assembles the docket services from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"docket/internal/catalog"
	"docket/internal/config"
	"docket/internal/lock"
	"docket/internal/lock/redis"
	"docket/internal/port"
	"docket/internal/repository/postgres"
	"docket/internal/service"
	"docket/internal/storage"
	"docket/internal/storage/local"
	s3storage "docket/internal/storage/s3"
)

// App holds the wired services and the resources backing them.
type App struct {
	DB *sqlx.DB

	Users      service.UserService
	Matters    service.MatterService
	Documents  service.DocumentService
	Transfers  service.TransferService
	Reconciler service.TransferReconciler
	History    service.HistoryService

	redisClient *goredis.Client
}

// New connects to the database, loads the activity catalog and builds every
// service. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a := &App{DB: db}

	// Initialize repositories
	txm := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepo(db)
	matterRepo := postgres.NewMatterRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	revisionRepo := postgres.NewRevisionRepo(db)
	recordRepo := postgres.NewActivityRecordRepo(db)
	markerRepo := postgres.NewTransferMarkerRepo(db)

	cat, err := catalog.Load(ctx, postgres.NewActivityRepo(db))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load activity catalog: %w", err)
	}

	resolver := storage.NewResolver(cfg.Storage.Root)
	files, err := newFileStore(ctx, cfg, resolver)
	if err != nil {
		a.Close()
		return nil, err
	}
	locker := a.newLocker(cfg)

	// Initialize services
	validator := service.NewResourceValidator(matterRepo, documentRepo, revisionRepo)
	audit := service.NewAuditRecorder(recordRepo)

	a.Users = service.NewUserService(userRepo)
	a.Matters = service.NewMatterService(txm, matterRepo, validator, cat, audit)
	a.Documents = service.NewDocumentService(txm, documentRepo, revisionRepo, validator, cat, audit)
	a.Transfers = service.NewTransferService(
		txm, documentRepo, revisionRepo, markerRepo, validator, cat, audit,
		a.Documents, locker, files, resolver, cfg.Transfer,
	)
	a.Reconciler = service.NewTransferReconciler(markerRepo, locker, files, cfg.Transfer.ReconcileStaleAfter)
	a.History = service.NewHistoryService(recordRepo, validator)

	logrus.WithFields(logrus.Fields{
		"storage_provider": cfg.Storage.Provider,
		"lock_provider":    cfg.Lock.Provider,
		"copy_naming":      cfg.Transfer.CopyRevisionNaming,
	}).Info("docket services initialized")

	return a, nil
}

// Close releases the database pool and any lock backend connection.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.WithError(err).Warn("closing redis client failed")
		}
	}
	if err := a.DB.Close(); err != nil {
		logrus.WithError(err).Warn("closing database failed")
	}
}

func newFileStore(ctx context.Context, cfg *config.Config, resolver *storage.Resolver) (port.FileStore, error) {
	switch cfg.Storage.Provider {
	case config.StorageProviderS3:
		store, err := s3storage.NewS3Store(ctx, &cfg.Storage.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 store: %w", err)
		}
		return store, nil
	default:
		return local.NewFileStore(afero.NewOsFs(), resolver), nil
	}
}

func (a *App) newLocker(cfg *config.Config) port.DocumentLocker {
	switch cfg.Lock.Provider {
	case config.LockProviderRedis:
		a.redisClient = redis.NewClient(&cfg.Lock)
		return redis.NewLocker(a.redisClient, cfg.Lock.TTL)
	case config.LockProviderMemory:
		return lock.NewMemoryLocker()
	default:
		return postgres.NewAdvisoryLocker(a.DB)
	}
}
