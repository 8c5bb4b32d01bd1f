// Package lock provides an in-process DocumentLocker for single-instance
// deployments and tests.
package lock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/port"
)

// MemoryLocker serializes transfers per document within one process.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

// NewMemoryLocker creates an empty MemoryLocker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[uuid.UUID]struct{})}
}

// TryLock implements port.DocumentLocker.
func (l *MemoryLocker) TryLock(ctx context.Context, documentID uuid.UUID) (port.ReleaseFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[documentID]; busy {
		return nil, domain.ErrDocumentLocked
	}
	l.held[documentID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, documentID)
			l.mu.Unlock()
		})
	}, nil
}
