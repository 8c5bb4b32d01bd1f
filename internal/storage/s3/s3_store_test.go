package s3_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
	s3store "docket/internal/storage/s3"
)

type fakeS3 struct {
	objects map[string][]byte
	copyErr error
}

func (f *fakeS3) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	src := aws.ToString(in.CopySource)
	key := src[len(aws.ToString(in.Bucket))+1:]
	data, ok := f.objects[key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey"}
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound"}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func TestS3Store_MoveCopiesThenDeletes(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"matters/a/doc.pdf": []byte("x")}}
	store := s3store.NewS3StoreWithClient(fake, "bucket")
	ctx := context.Background()

	err := store.Move(ctx, "matters/a/doc.pdf", "matters/b/doc.pdf")
	require.NoError(t, err)

	srcOK, err := store.Exists(ctx, "matters/a/doc.pdf")
	require.NoError(t, err)
	dstOK, err := store.Exists(ctx, "matters/b/doc.pdf")
	require.NoError(t, err)
	assert.False(t, srcOK)
	assert.True(t, dstOK)
}

func TestS3Store_CopyFailureKeepsSource(t *testing.T) {
	fake := &fakeS3{
		objects: map[string][]byte{"matters/a/doc.pdf": []byte("x")},
		copyErr: errors.New("throttled"),
	}
	store := s3store.NewS3StoreWithClient(fake, "bucket")

	err := store.Move(context.Background(), "matters/a/doc.pdf", "matters/b/doc.pdf")

	assert.Error(t, err)
	assert.Contains(t, fake.objects, "matters/a/doc.pdf")
}

func TestS3Store_EnsureDirectoryHonorsContext(t *testing.T) {
	store := s3store.NewS3StoreWithClient(&fakeS3{objects: map[string][]byte{}}, "bucket")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.EnsureDirectory(ctx, uuid.New()), context.Canceled)
}

func TestS3Store_CopyRefusesOverwrite(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{
		"matters/a/doc.pdf": []byte("new"),
		"matters/b/doc.pdf": []byte("old"),
	}}
	store := s3store.NewS3StoreWithClient(fake, "bucket")

	err := store.Copy(context.Background(), "matters/a/doc.pdf", "matters/b/doc.pdf")
	assert.ErrorIs(t, err, domain.ErrDestinationExists)
	err = store.Move(context.Background(), "matters/a/doc.pdf", "matters/b/doc.pdf")
	assert.ErrorIs(t, err, domain.ErrDestinationExists)

	assert.Equal(t, []byte("old"), fake.objects["matters/b/doc.pdf"])
	assert.Contains(t, fake.objects, "matters/a/doc.pdf")
}

func TestS3Store_Size(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"matters/a/doc.pdf": []byte("12345")}}
	store := s3store.NewS3StoreWithClient(fake, "bucket")
	ctx := context.Background()

	size, err := store.Size(ctx, "matters/a/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = store.Size(ctx, "matters/missing.pdf")
	assert.Error(t, err)
}
