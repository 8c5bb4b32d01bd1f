// Package local implements port.FileStore on an afero filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"docket/internal/domain"
	"docket/internal/port"
	"docket/internal/storage"
)

type fileStore struct {
	fs       afero.Fs
	resolver *storage.Resolver
}

// NewFileStore creates a FileStore over fs. Production passes afero.NewOsFs().
func NewFileStore(fs afero.Fs, resolver *storage.Resolver) port.FileStore {
	return &fileStore{fs: fs, resolver: resolver}
}

func (s *fileStore) EnsureDirectory(ctx context.Context, matterID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.resolver.MatterDir(matterID), 0o755); err != nil {
		return fmt.Errorf("fileStore.EnsureDirectory: %w", err)
	}
	return nil
}

func (s *fileStore) Move(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkDestination(dst); err != nil {
		return fmt.Errorf("fileStore.Move: %w", err)
	}
	if err := s.fs.MkdirAll(path.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("fileStore.Move mkdir: %w", err)
	}
	if err := s.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("fileStore.Move: %w", err)
	}
	return nil
}

func (s *fileStore) Copy(ctx context.Context, src, dst string) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = s.checkDestination(dst); err != nil {
		return fmt.Errorf("fileStore.Copy: %w", err)
	}
	if err = s.fs.MkdirAll(path.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("fileStore.Copy mkdir: %w", err)
	}

	in, err := s.fs.Open(src)
	if err != nil {
		return fmt.Errorf("fileStore.Copy open source: %w", err)
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("fileStore.Copy create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("fileStore.Copy close: %w", cerr)
		}
		if err != nil {
			_ = s.fs.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, &ctxReader{ctx: ctx, r: in}); err != nil {
		return fmt.Errorf("fileStore.Copy: %w", err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("fileStore.Copy sync: %w", err)
	}
	return nil
}

func (s *fileStore) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := afero.Exists(s.fs, p)
	if err != nil {
		return false, fmt.Errorf("fileStore.Exists: %w", err)
	}
	return ok, nil
}

func (s *fileStore) Size(ctx context.Context, p string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		return 0, fmt.Errorf("fileStore.Size: %w", err)
	}
	return info.Size(), nil
}

func (s *fileStore) Remove(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("fileStore.Remove: %w", err)
	}
	return nil
}

func (s *fileStore) checkDestination(dst string) error {
	ok, err := afero.Exists(s.fs, dst)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", domain.ErrDestinationExists, dst)
	}
	return nil
}

// ctxReader stops a long copy once the context is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
