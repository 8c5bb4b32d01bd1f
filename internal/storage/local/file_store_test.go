package local_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
	"docket/internal/port"
	"docket/internal/storage"
	"docket/internal/storage/local"
)

func setupFileStore(t *testing.T) (port.FileStore, afero.Fs, *storage.Resolver) {
	t.Helper()
	fs := afero.NewMemMapFs()
	resolver := storage.NewResolver("/data")
	return local.NewFileStore(fs, resolver), fs, resolver
}

func TestFileStore_EnsureDirectory(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	matterID := uuid.New()

	err := store.EnsureDirectory(context.Background(), matterID)
	require.NoError(t, err)

	ok, err := afero.DirExists(fs, resolver.MatterDir(matterID))
	require.NoError(t, err)
	assert.True(t, ok)

	// repeated calls are harmless
	assert.NoError(t, store.EnsureDirectory(context.Background(), matterID))
}

func TestFileStore_Move(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	ctx := context.Background()
	m1, m2, docID := uuid.New(), uuid.New(), uuid.New()
	src, _ := resolver.Resolve(m1, docID, 1, "pdf")
	dst, _ := resolver.Resolve(m2, docID, 1, "pdf")
	require.NoError(t, afero.WriteFile(fs, src, []byte("contents"), 0o644))

	err := store.Move(ctx, src, dst)
	require.NoError(t, err)

	srcExists, _ := store.Exists(ctx, src)
	dstExists, _ := store.Exists(ctx, dst)
	assert.False(t, srcExists)
	assert.True(t, dstExists)
	data, err := afero.ReadFile(fs, dst)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestFileStore_Move_MissingSource(t *testing.T) {
	store, _, resolver := setupFileStore(t)
	src, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "pdf")
	dst, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "pdf")

	err := store.Move(context.Background(), src, dst)

	assert.Error(t, err)
}

func TestFileStore_Move_RefusesOverwrite(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	docID := uuid.New()
	src, _ := resolver.Resolve(uuid.New(), docID, 1, "pdf")
	dst, _ := resolver.Resolve(uuid.New(), docID, 1, "pdf")
	require.NoError(t, afero.WriteFile(fs, src, []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, dst, []byte("old"), 0o644))

	err := store.Move(context.Background(), src, dst)

	assert.ErrorIs(t, err, domain.ErrDestinationExists)
	data, _ := afero.ReadFile(fs, dst)
	assert.Equal(t, "old", string(data))
}

func TestFileStore_Copy(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	ctx := context.Background()
	src, _ := resolver.Resolve(uuid.New(), uuid.New(), 2, "docx")
	dst, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "docx")
	require.NoError(t, afero.WriteFile(fs, src, []byte("brief"), 0o644))

	err := store.Copy(ctx, src, dst)
	require.NoError(t, err)

	srcData, err := afero.ReadFile(fs, src)
	require.NoError(t, err)
	dstData, err := afero.ReadFile(fs, dst)
	require.NoError(t, err)
	assert.Equal(t, "brief", string(srcData))
	assert.Equal(t, "brief", string(dstData))
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "pdf")
	dst, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "pdf")
	require.NoError(t, afero.WriteFile(fs, src, []byte("x"), 0o644))

	assert.ErrorIs(t, store.Move(ctx, src, dst), context.Canceled)
	assert.ErrorIs(t, store.Copy(ctx, src, dst), context.Canceled)
	assert.ErrorIs(t, store.EnsureDirectory(ctx, uuid.New()), context.Canceled)
	_, err := store.Exists(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)

	ok, _ := afero.Exists(fs, src)
	assert.True(t, ok)
}

func TestFileStore_Remove(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	ctx := context.Background()
	p, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "pdf")
	require.NoError(t, afero.WriteFile(fs, p, []byte("x"), 0o644))

	require.NoError(t, store.Remove(ctx, p))
	ok, _ := store.Exists(ctx, p)
	assert.False(t, ok)

	// removing a missing file is not an error
	assert.NoError(t, store.Remove(ctx, p))
}

func TestFileStore_Size(t *testing.T) {
	store, fs, resolver := setupFileStore(t)
	ctx := context.Background()
	p, _ := resolver.Resolve(uuid.New(), uuid.New(), 1, "pdf")
	require.NoError(t, afero.WriteFile(fs, p, []byte("brief"), 0o644))

	size, err := store.Size(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = store.Size(ctx, p+".missing")
	assert.Error(t, err)
}
