package port

import (
	"context"

	"github.com/google/uuid"
)

// FileStore abstracts the document file tree rooted at the configured storage root.
// Paths are the ones produced by storage.Resolver.
type FileStore interface {
	EnsureDirectory(ctx context.Context, matterID uuid.UUID) error
	// Move and Copy never overwrite: an existing dst fails with
	// domain.ErrDestinationExists.
	Move(ctx context.Context, src, dst string) error
	Copy(ctx context.Context, src, dst string) error
	Exists(ctx context.Context, path string) (bool, error)
	Size(ctx context.Context, path string) (int64, error)
	Remove(ctx context.Context, path string) error
}
