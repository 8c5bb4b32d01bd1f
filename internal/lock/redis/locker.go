// Package redis implements a per-document lock on Redis for multi-instance
// deployments.
package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"docket/internal/config"
	"docket/internal/domain"
	"docket/internal/port"
)

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func lockKey(documentID uuid.UUID) string {
	return "docket:lock:document:" + documentID.String()
}

type locker struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewClient creates a Redis client from lock configuration.
func NewClient(cfg *config.LockConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewLocker creates a DocumentLocker using SET NX with a TTL. The TTL bounds
// how long a crashed holder can block a document.
func NewLocker(client goredis.UniversalClient, ttl time.Duration) port.DocumentLocker {
	return &locker{client: client, ttl: ttl}
}

func (l *locker) TryLock(ctx context.Context, documentID uuid.UUID) (port.ReleaseFunc, error) {
	key := lockKey(documentID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrDocumentLocked
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				logrus.WithError(err).WithField("document_id", documentID).Warn("redis locker: release failed")
			}
		})
	}, nil
}
