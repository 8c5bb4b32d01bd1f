package port

import (
	"context"

	"github.com/google/uuid"
)

// ReleaseFunc releases a held lock. It is safe to call more than once.
type ReleaseFunc func()

// DocumentLocker provides per-document mutual exclusion for transfers.
// TryLock does not wait: it returns domain.ErrDocumentLocked when another
// holder owns the lock.
type DocumentLocker interface {
	TryLock(ctx context.Context, documentID uuid.UUID) (ReleaseFunc, error)
}
